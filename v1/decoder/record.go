package decoder

// Record is one decoded row.
type Record struct {
	// Row is the 0-based row index in the page.
	Row int

	// SchemaID is the schema the row was decoded with, empty for pass-through rows.
	SchemaID string

	// Value is a pointer to the backing type for typed schemas and a *Row otherwise.
	Value any

	// Errors lists the fields that could not be converted.
	Errors []*FieldError
}

// Generic returns the row of a generic record.
func (r Record) Generic() (*Row, bool) {
	row, ok := r.Value.(*Row)
	return row, ok
}

// As returns the typed value of rec.
func As[T any](rec Record) (*T, bool) {
	v, ok := rec.Value.(*T)
	return v, ok
}

// PageResult is the outcome of decoding one page.
type PageResult struct {
	// Index and Name identify the page.
	Index int
	Name  string

	SchemaID  string
	HeaderRow int
	Headers   []string

	// Records holds the decoded rows in row order. Blank rows are skipped.
	Records []Record

	// RowErrors lists rows that were lost, in row order.
	RowErrors []*RowError
}

// FieldErrors returns the field errors of every record.
func (p *PageResult) FieldErrors() []*FieldError {
	var out []*FieldError
	for _, rec := range p.Records {
		out = append(out, rec.Errors...)
	}
	return out
}

// Collect returns the values of type *T from results, in page and row order.
func Collect[T any](results ...*PageResult) []*T {
	var out []*T
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, rec := range res.Records {
			if v, ok := As[T](rec); ok {
				out = append(out, v)
			}
		}
	}
	return out
}
