package decoder

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/sheetmap/v1/schema"
	"github.com/Aleph-Alpha/sheetmap/v1/sheet"
)

// DecodePage decodes page index of wb. The header row is located first and a
// layout the adapter rejects fails the page before any data row is read. The
// schema is opts.SchemaID when set, otherwise the registry's match for the
// header; without either the rows pass through as generic rows keyed by
// header text.
//
// Rows are decoded in parallel and returned in row order. Rows whose cells
// are all blank are skipped. A failing row is reported in RowErrors and does
// not affect its siblings.
func (d *Decoder) DecodePage(ctx context.Context, wb sheet.Workbook, index int, opts Options) (res *PageResult, err error) {
	start := time.Now()
	pageName := ""
	if d.tracer != nil {
		var span trace.Span
		ctx, span = d.tracer.StartSpan(ctx, "sheetmap.decode_page")
		defer func() {
			attrs := map[string]interface{}{"page.index": index, "page.name": pageName}
			if res != nil {
				attrs["schema.id"] = res.SchemaID
				attrs["records"] = len(res.Records)
				attrs["row_errors"] = len(res.RowErrors)
			}
			d.tracer.SetAttributes(span, attrs)
			if err != nil {
				d.tracer.RecordErrorOnSpan(span, err)
			}
			span.End()
		}()
	}
	defer func() {
		size := int64(0)
		schemaID := ""
		if res != nil {
			size = int64(len(res.Records))
			schemaID = res.SchemaID
		}
		d.observeOperation("decode_page", schemaID, pageName, time.Since(start), err, size)
	}()

	page, err := sheet.PageAt(wb, index)
	if err != nil {
		return nil, err
	}
	pageName = page.Name()

	headerRow, headers, err := sheet.Header(page)
	if err != nil {
		return nil, err
	}

	s := d.schemaFor(ctx, headers, opts)
	res = &PageResult{Index: index, Name: pageName, HeaderRow: headerRow, Headers: headers}
	if s != nil {
		res.SchemaID = s.ID
	}

	if err := d.decodeRows(ctx, page, s, headerRow, headers, res); err != nil {
		return nil, err
	}

	d.logInfo(ctx, "page decoded", map[string]interface{}{
		"page":       pageName,
		"schema_id":  res.SchemaID,
		"records":    len(res.Records),
		"row_errors": len(res.RowErrors),
	})
	return res, nil
}

func (d *Decoder) schemaFor(ctx context.Context, headers []string, opts Options) *schema.Schema {
	id := opts.SchemaID
	if id == "" {
		matched, ok := d.registry.Match(ctx, headers, d.cfg.MatchBy)
		if !ok {
			return nil
		}
		id = matched
	}
	s, ok := d.registry.Resolve(ctx, id)
	if !ok {
		d.logWarn(ctx, "schema not found, decoding generic rows", nil, map[string]interface{}{"schema_id": id})
		return nil
	}
	return s
}

func (d *Decoder) decodeRows(ctx context.Context, page sheet.Page, s *schema.Schema, headerRow int, headers []string, res *PageResult) error {
	first, last := headerRow+1, page.LastRow()
	if last < first {
		return nil
	}

	n := last - first + 1
	records := make([]*Record, n)
	rowErrs := make([]*RowError, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		row := first + i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cells, err := page.Row(row)
			if err != nil {
				rowErrs[i] = &RowError{Row: row, Err: err}
				return nil
			}
			if blank(cells) {
				return nil
			}
			rec, err := d.decodeRow(ctx, s, headers, cells, row)
			if err != nil {
				var re *RowError
				if !errors.As(err, &re) {
					re = &RowError{Row: row, Err: err}
				}
				rowErrs[i] = re
				d.logWarn(ctx, "row could not be decoded", err, map[string]interface{}{"page": page.Name(), "row": row})
				return nil
			}
			records[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i := range records {
		if records[i] != nil {
			res.Records = append(res.Records, *records[i])
		}
		if rowErrs[i] != nil {
			res.RowErrors = append(res.RowErrors, rowErrs[i])
		}
	}
	return nil
}

// DecodeWorkbook decodes the first page, or every page with AutoPaging. With
// AutoPaging and no opts.SchemaID each page is matched on its own header.
// Pages that fail are left out of the results and their errors are returned
// joined.
func (d *Decoder) DecodeWorkbook(ctx context.Context, wb sheet.Workbook, opts Options) ([]*PageResult, error) {
	count := 1
	if d.cfg.AutoPaging {
		count = wb.PageCount()
	}

	var (
		results []*PageResult
		errs    []error
	)
	for i := 0; i < count; i++ {
		res, err := d.DecodePage(ctx, wb, i, opts)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return results, ctxErr
			}
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
