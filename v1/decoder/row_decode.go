package decoder

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"

	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/schema"
	"github.com/Aleph-Alpha/sheetmap/v1/schema_registry"
)

// DecodeRow decodes one row of cells, indexed like headers, with s. A schema
// with a backing type yields a fresh *T; a generic schema, or a nil s, yields
// a *Row keyed by field name, falling back to the header text for columns no
// field claims.
//
// Field failures are recorded on the record and do not fail the row. The
// returned error is a *RowError and only reports a panic in conversion code.
func (d *Decoder) DecodeRow(ctx context.Context, s *schema.Schema, headers, cells []string) (Record, error) {
	return d.decodeRow(ctx, s, headers, cells, 0)
}

func (d *Decoder) decodeRow(ctx context.Context, s *schema.Schema, headers, cells []string, row int) (rec Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = Record{}
			err = &RowError{Row: row, Err: fmt.Errorf("%w: %v\n%s", ErrRowPanic, r, debug.Stack())}
		}
	}()

	rec = Record{Row: row}
	if s != nil {
		rec.SchemaID = s.ID
	}
	if s == nil || s.IsGeneric() {
		rec.Value = d.decodeGeneric(ctx, s, headers, cells, &rec)
		return rec, nil
	}

	target := reflect.New(s.BackingType)
	d.decodeTyped(ctx, s, target.Elem(), headers, cells, &rec)
	rec.Value = target.Interface()
	return rec, nil
}

func (d *Decoder) decodeTyped(ctx context.Context, s *schema.Schema, target reflect.Value, headers, cells []string, rec *Record) {
	external := d.cfg.MatchBy == schema_registry.MatchExternal
	for i, h := range headers {
		column := strings.TrimSpace(h)
		if column == "" {
			continue
		}
		path, ok := s.Lookup(column, external)
		if !ok {
			continue
		}

		parent := target
		for _, f := range path[:len(path)-1] {
			parent = schema.FieldByIndexAlloc(parent, f.Index)
		}
		leaf := path.Leaf()
		dst := schema.FieldByIndexAlloc(parent, leaf.Index)

		v, err := d.convert(leaf, cell(cells, i))
		if err == nil {
			err = convert.Assign(dst, v)
		}
		if err != nil {
			d.fieldFailed(ctx, rec, column, leaf.Name, err)
		}
	}
}

func (d *Decoder) decodeGeneric(ctx context.Context, s *schema.Schema, headers, cells []string, rec *Record) *Row {
	external := d.cfg.MatchBy == schema_registry.MatchExternal
	out := NewRow(len(headers))
	for i, h := range headers {
		column := strings.TrimSpace(h)
		if column == "" {
			continue
		}
		raw := cell(cells, i)

		var f *schema.Field
		if s != nil {
			if path, ok := s.Lookup(column, external); ok {
				f = path.Leaf()
			}
		}
		if f == nil {
			out.Set(column, raw)
			continue
		}

		v, err := d.convert(f, raw)
		if err != nil {
			d.fieldFailed(ctx, rec, column, f.Name, err)
			v = nil
		}
		out.Set(f.Name, v)
	}
	return out
}

// convert turns raw into the value for f. A bound transform or converter
// always runs; otherwise text targets get the raw text and an empty cell
// leaves the zero value.
func (d *Decoder) convert(f *schema.Field, raw string) (any, error) {
	switch f.Strategy {
	case schema.StrategyTransform:
		if f.TransformFunc == nil {
			return nil, &convert.MissingMethodError{Method: f.Transform, Container: "<unbound>"}
		}
		return f.TransformFunc(raw)
	case schema.StrategyConverter:
		if f.Operator != nil {
			return f.Operator.Convert(raw, f.TargetType)
		}
	}

	if f.IsText() {
		return raw, nil
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	fn, err := d.conversions.Lookup(schema.Indirect(f.TargetType))
	if err != nil {
		return nil, err
	}
	return fn(strings.TrimSpace(raw))
}

func (d *Decoder) fieldFailed(ctx context.Context, rec *Record, column, field string, err error) {
	fe := &FieldError{Row: rec.Row, Column: column, Field: field, Err: err}
	rec.Errors = append(rec.Errors, fe)
	d.logWarn(ctx, "field could not be converted", err, map[string]interface{}{
		"schema_id": rec.SchemaID,
		"row":       rec.Row,
		"column":    column,
		"field":     field,
	})
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
