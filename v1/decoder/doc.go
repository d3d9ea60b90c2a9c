// Package decoder turns spreadsheet rows into records.
//
// A page is decoded in three steps. The sheet adapter locates the header row
// and rejects unsupported merged layouts. The schema registry picks the schema
// whose fields cover the header, unless the caller names one. Every data row
// is then decoded, in parallel, into a fresh record of the schema's backing
// type, or into a generic Row when the schema has none.
//
// Conversion:
//
// Each cell is converted by the strategy of its field. A bound transform or
// converter runs on the raw text. Text fields take the text as is. Anything
// else goes through the conversion registry by target type; an empty cell
// leaves the zero value.
//
// Failures stay as small as possible. A field that cannot be converted is
// logged, left at its zero value and listed in Record.Errors. A row whose
// conversion code panics is dropped and listed in PageResult.RowErrors. Only
// layout problems fail a whole page.
//
// Basic Usage:
//
//	dec := decoder.NewDecoder(reg, nil).WithLogger(log)
//	res, err := dec.DecodePage(ctx, wb, 0, decoder.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, p := range decoder.Collect[Person](res) {
//	    fmt.Println(p.Name, p.Age)
//	}
package decoder
