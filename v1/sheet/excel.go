package sheet

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ExcelWorkbook reads xlsx workbooks through excelize. Each page loads its
// rows once, on first access.
type ExcelWorkbook struct {
	file  *excelize.File
	names []string
	pages []*excelPage
}

// OpenExcel reads an xlsx workbook from r.
func OpenExcel(r io.Reader) (*ExcelWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return newExcelWorkbook(f), nil
}

// OpenExcelFile opens the xlsx workbook at path.
func OpenExcelFile(path string) (*ExcelWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return newExcelWorkbook(f), nil
}

// OpenExcelBytes reads an xlsx workbook held in memory.
func OpenExcelBytes(data []byte) (*ExcelWorkbook, error) {
	return OpenExcel(bytes.NewReader(data))
}

func newExcelWorkbook(f *excelize.File) *ExcelWorkbook {
	names := f.GetSheetList()
	wb := &ExcelWorkbook{file: f, names: names, pages: make([]*excelPage, len(names))}
	for i, name := range names {
		wb.pages[i] = &excelPage{file: f, name: name}
	}
	return wb
}

// PageCount returns the number of sheets.
func (w *ExcelWorkbook) PageCount() int {
	return len(w.names)
}

// Page returns sheet i in workbook order.
func (w *ExcelWorkbook) Page(i int) (Page, error) {
	if i < 0 || i >= len(w.pages) {
		return nil, &IndexOutOfRangeError{Requested: i, PageCount: len(w.pages)}
	}
	return w.pages[i], nil
}

// Close closes the workbook and removes excelize temporary files.
func (w *ExcelWorkbook) Close() error {
	return w.file.Close()
}

type excelPage struct {
	file *excelize.File
	name string

	once sync.Once
	rows [][]string
	err  error
}

func (p *excelPage) Name() string {
	return p.name
}

func (p *excelPage) MergedRegions() ([]Region, error) {
	cells, err := p.file.GetMergeCells(p.name)
	if err != nil {
		return nil, err
	}
	regions := make([]Region, 0, len(cells))
	for _, mc := range cells {
		firstCol, firstRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, err
		}
		lastCol, lastRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		regions = append(regions, Region{
			FirstRow: firstRow - 1,
			LastRow:  lastRow - 1,
			FirstCol: firstCol - 1,
			LastCol:  lastCol - 1,
		})
	}
	return regions, nil
}

func (p *excelPage) load() ([][]string, error) {
	p.once.Do(func() {
		p.rows, p.err = p.file.GetRows(p.name)
	})
	return p.rows, p.err
}

func (p *excelPage) Row(i int) ([]string, error) {
	rows, err := p.load()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(rows) {
		return nil, nil
	}
	return rows[i], nil
}

func (p *excelPage) LastRow() int {
	rows, err := p.load()
	if err != nil {
		return -1
	}
	return len(rows) - 1
}
