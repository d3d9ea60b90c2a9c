package decoder

import (
	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/observability"
	"github.com/Aleph-Alpha/sheetmap/v1/schema_registry"
	"github.com/Aleph-Alpha/sheetmap/v1/tracer"
)

// Decoder turns rows of cell text into records using the schemas of a
// registry. It holds no per-call state and is safe for concurrent use.
type Decoder struct {
	cfg         Config
	registry    schema_registry.SchemaRegistry
	conversions *convert.Registry

	logger   Logger
	observer observability.Observer
	tracer   tracer.Client
}

// NewDecoder returns a decoder over reg. A nil conv uses
// convert.NewDefaultRegistry.
//
// Example:
//
//	dec := decoder.NewDecoder(reg, nil).
//	    WithConfig(decoder.Config{Workers: 4, AutoPaging: true}).
//	    WithLogger(log).
//	    WithObserver(metricsClient)
//	results, err := dec.DecodeWorkbook(ctx, wb, decoder.Options{})
func NewDecoder(reg schema_registry.SchemaRegistry, conv *convert.Registry) *Decoder {
	if conv == nil {
		conv = convert.NewDefaultRegistry()
	}
	return &Decoder{
		cfg:         DefaultConfig(),
		registry:    reg,
		conversions: conv,
	}
}

// WithConfig replaces the configuration. Workers below 1 fall back to the default.
func (d *Decoder) WithConfig(cfg Config) *Decoder {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	d.cfg = cfg
	return d
}

// WithLogger attaches a logger for per-field warnings and page summaries.
func (d *Decoder) WithLogger(logger Logger) *Decoder {
	d.logger = logger
	return d
}

// WithObserver attaches an observer notified once per decoded page.
func (d *Decoder) WithObserver(observer observability.Observer) *Decoder {
	d.observer = observer
	return d
}

// WithTracer opens one span per decoded page.
func (d *Decoder) WithTracer(t tracer.Client) *Decoder {
	d.tracer = t
	return d
}

// Config returns the active configuration.
func (d *Decoder) Config() Config {
	return d.cfg
}
