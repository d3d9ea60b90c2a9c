package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Table is an in-memory workbook. It backs CSV input and tests.
type Table struct {
	pages []*TablePage
}

// TablePage is one page of a Table.
type TablePage struct {
	name    string
	rows    [][]string
	regions []Region
}

// NewTable returns a workbook of the given pages.
func NewTable(pages ...*TablePage) *Table {
	return &Table{pages: pages}
}

// NewPage returns a page named name holding rows.
func NewPage(name string, rows [][]string) *TablePage {
	return &TablePage{name: name, rows: rows}
}

// WithMerged adds merged regions to the page.
func (p *TablePage) WithMerged(regions ...Region) *TablePage {
	p.regions = append(p.regions, regions...)
	return p
}

// OpenCSV reads a comma separated document into a single page table.
// Records may have differing field counts.
func OpenCSV(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv %s: %w", name, err)
		}
		rows = append(rows, rec)
	}
	return NewTable(NewPage(name, rows)), nil
}

func (t *Table) PageCount() int {
	return len(t.pages)
}

func (t *Table) Page(i int) (Page, error) {
	if i < 0 || i >= len(t.pages) {
		return nil, &IndexOutOfRangeError{Requested: i, PageCount: len(t.pages)}
	}
	return t.pages[i], nil
}

func (t *Table) Close() error {
	return nil
}

func (p *TablePage) Name() string {
	return p.name
}

func (p *TablePage) MergedRegions() ([]Region, error) {
	return p.regions, nil
}

func (p *TablePage) Row(i int) ([]string, error) {
	if i < 0 || i >= len(p.rows) {
		return nil, nil
	}
	return p.rows[i], nil
}

func (p *TablePage) LastRow() int {
	return len(p.rows) - 1
}
