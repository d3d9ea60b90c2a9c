package decoder

import (
	"context"
	"runtime"

	"github.com/Aleph-Alpha/sheetmap/v1/schema_registry"
)

// Config defines how pages are decoded.
type Config struct {
	// Workers bounds the rows of one page decoded in parallel.
	// Default: runtime.NumCPU().
	Workers int `yaml:"workers" envconfig:"SHEETMAP_DECODE_WORKERS"`

	// AutoPaging makes DecodeWorkbook decode every page, matching a schema per
	// page. Without it only the first page is decoded.
	AutoPaging bool `yaml:"auto_paging" envconfig:"SHEETMAP_AUTO_PAGING"`

	// MatchBy selects whether headers name fields by external (display) or
	// internal name.
	MatchBy schema_registry.MatchBy `yaml:"match_by" envconfig:"SHEETMAP_MATCH_BY"`
}

// DefaultConfig returns a configuration decoding the first page with one
// worker per CPU and external names.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		MatchBy: schema_registry.MatchExternal,
	}
}

// Options narrows one decode call.
type Options struct {
	// SchemaID selects the schema instead of matching the header row. An id
	// the registry does not know decodes into generic rows.
	SchemaID string
}

// Logger is the context-aware logging contract of the decoder.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
