package sheet

import (
	"fmt"
	"strings"
)

// PageAt returns page i of wb, or an *IndexOutOfRangeError when i is negative
// or not below the page count.
func PageAt(wb Workbook, i int) (Page, error) {
	if n := wb.PageCount(); i < 0 || i >= n {
		return nil, &IndexOutOfRangeError{Requested: i, PageCount: n}
	}
	return wb.Page(i)
}

// HeaderRow returns the index of the header row of p. A page without merged
// regions has its header in row 0. A single merged region anchored at row 0 is
// a title block and the header follows it. Any other arrangement is an
// *UnsupportedLayoutError.
func HeaderRow(p Page) (int, error) {
	regions, err := p.MergedRegions()
	if err != nil {
		return 0, fmt.Errorf("page %q: merged regions: %w", p.Name(), err)
	}

	switch {
	case len(regions) == 0:
		return 0, nil
	case len(regions) > 1:
		return 0, &UnsupportedLayoutError{Page: p.Name(), Regions: regions, Reason: "more than one merged region"}
	case regions[0].FirstRow != 0:
		return 0, &UnsupportedLayoutError{
			Page:    p.Name(),
			Regions: regions,
			Reason:  fmt.Sprintf("merged region starts at row %d instead of 0", regions[0].FirstRow),
		}
	}
	return regions[0].LastRow + 1, nil
}

// Header locates the header row of p and returns its index and cell text.
// A header without any non-blank cell returns ErrEmptyHeader.
func Header(p Page) (int, []string, error) {
	idx, err := HeaderRow(p)
	if err != nil {
		return 0, nil, err
	}
	cells, err := p.Row(idx)
	if err != nil {
		return 0, nil, fmt.Errorf("page %q: header row %d: %w", p.Name(), idx, err)
	}
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return idx, cells, nil
		}
	}
	return 0, nil, fmt.Errorf("page %q row %d: %w", p.Name(), idx, ErrEmptyHeader)
}
