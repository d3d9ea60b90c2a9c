package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/sheetmap/v1/decoder"
	"github.com/Aleph-Alpha/sheetmap/v1/schema_registry"
	"github.com/Aleph-Alpha/sheetmap/v1/sheet"
)

const (
	rejectedFilesMetric = "sheetmap_files_rejected_total"
	rejectedFilesHelp   = "Files refused by the upload filter"
)

type decodeFlags struct {
	object   string
	schemaID string
	matchBy  string
	allPages bool
	workers  int
	filter   sheet.FilterConfig
}

// line is one record of the output stream.
type line struct {
	Page   string   `json:"page"`
	Row    int      `json:"row"`
	Schema string   `json:"schema,omitempty"`
	Record any      `json:"record,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func newDecodeCmd(v *viper.Viper) *cobra.Command {
	var f decodeFlags
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a workbook and print its rows as JSON lines",
		Long: `Decode a workbook and print its rows as JSON lines.

The schema of each page is matched against its header unless --schema names
one. Rows that no schema covers are printed keyed by their header text.

The command line tool carries no transform methods: configuration entries
using "label$$method" are skipped with a missing method warning naming the
"sheetmap-cli" container. Embed the decoder package to supply your own.

Examples:
  # Decode the first page of a local file
  sheetmap decode people.xlsx --config-dir ./conf

  # Decode every page, naming fields by internal name
  sheetmap decode book.xlsx --all-pages --match-by internal

  # Decode a workbook stored in object storage
  sheetmap decode --object uploads/book.xlsx --minio-endpoint localhost:9000 --minio-bucket sheets`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && f.object == "" {
				return fmt.Errorf("a file argument or --object is required")
			}
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			by, err := schema_registry.ParseMatchBy(f.matchBy)
			if err != nil {
				return err
			}
			filter, err := sheet.NewFilter(f.filter)
			if err != nil {
				return err
			}
			decCfg := decoder.Config{Workers: f.workers, AutoPaging: f.allPages, MatchBy: by}

			return withServices(cmd.Context(), s, decCfg, func(ctx context.Context, svc services) error {
				wb, err := openWorkbook(ctx, svc, args, f.object, filter)
				if err != nil {
					countRejection(svc, err)
					return err
				}
				defer func() { _ = wb.Close() }()

				results, decodeErr := svc.Decoder.DecodeWorkbook(ctx, wb, decoder.Options{SchemaID: f.schemaID})
				if err := writeResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results); err != nil {
					return err
				}
				return decodeErr
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.object, "object", "", "decode this object storage key instead of a local file")
	fl.StringVar(&f.schemaID, "schema", "", "decode with this schema id instead of matching the header")
	fl.StringVar(&f.matchBy, "match-by", "external", "header names are external (display) or internal field names")
	fl.BoolVar(&f.allPages, "all-pages", false, "decode every page, matching a schema per page")
	fl.IntVar(&f.workers, "workers", 0, "rows decoded in parallel (default: number of CPUs)")
	fl.StringVar(&f.filter.NamePattern, "name-pattern", "", "reject files whose name does not match this regular expression")
	fl.StringSliceVar(&f.filter.Extensions, "accept", sheet.DefaultExtensions, "accepted file extensions")
	fl.Int64Var(&f.filter.MaxSize, "max-size", 0, "reject files of this many bytes or more")
	return cmd
}

func openWorkbook(ctx context.Context, svc services, args []string, object string, filter *sheet.Filter) (sheet.Workbook, error) {
	if object != "" {
		if svc.Store == nil {
			return nil, fmt.Errorf("--object needs --minio-endpoint")
		}
		return sheet.OpenObject(ctx, svc.Store, object, filter)
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := filter.Check(path, info.Size()); err != nil {
		return nil, err
	}
	return sheet.OpenFile(path)
}

// countRejection records a filter rejection when metrics are served.
func countRejection(svc services, err error) {
	rule := sheet.RejectionRule(err)
	if rule == "" || svc.Metrics == nil {
		return
	}
	svc.Metrics.CreateCounter(rejectedFilesMetric, rejectedFilesHelp, []string{"rule"}).
		WithLabelValues(rule).Inc()
}

func writeResults(out, errOut io.Writer, results []*decoder.PageResult) error {
	enc := json.NewEncoder(out)
	for _, res := range results {
		for _, rec := range res.Records {
			l := line{Page: res.Name, Row: rec.Row, Schema: rec.SchemaID, Record: rec.Value}
			for _, fe := range rec.Errors {
				l.Errors = append(l.Errors, fe.Error())
			}
			if err := enc.Encode(l); err != nil {
				return err
			}
		}
		for _, re := range res.RowErrors {
			fmt.Fprintf(errOut, "page %s: %v\n", res.Name, re)
		}
	}
	return nil
}
