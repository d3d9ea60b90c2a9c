package sheet

//go:generate mockgen -source=interface.go -destination=mock_sheet.go -package=sheet

// Workbook is a source of pages. Implementations must allow concurrent reads
// of different rows of the same page.
type Workbook interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page returns the page at index i, counted from 0.
	Page(i int) (Page, error)

	// Close releases the underlying file.
	Close() error
}

// Page is one sheet of a workbook. Rows and columns are counted from 0.
type Page interface {
	// Name returns the sheet name.
	Name() string

	// MergedRegions returns the merged cell ranges of the sheet.
	MergedRegions() ([]Region, error)

	// Row returns the cell text of row i in column order. Rows past the last
	// populated one are empty.
	Row(i int) ([]string, error)

	// LastRow returns the index of the last populated row, or -1 for an empty page.
	LastRow() int
}

// Region is a rectangle of merged cells, bounds inclusive.
type Region struct {
	FirstRow int
	LastRow  int
	FirstCol int
	LastCol  int
}
