package decoder

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/observability"
	"github.com/Aleph-Alpha/sheetmap/v1/schema_registry"
	"github.com/Aleph-Alpha/sheetmap/v1/tracer"
)

// FXModule provides the decoder to an Fx application. It needs a
// schema_registry.SchemaRegistry and a Config; conversions, logger, observer
// and tracer are picked up when present.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    schema_registry.FXModule,
//	    decoder.FXModule,
//	    fx.Provide(schema_registry.DefaultConfig, decoder.DefaultConfig),
//	    fx.Invoke(func(dec *decoder.Decoder) { ... }),
//	)
var FXModule = fx.Module("decoder",
	fx.Provide(NewDecoderWithDI),
)

// DecoderParams groups the dependencies of the decoder.
type DecoderParams struct {
	fx.In

	Config      Config
	Registry    schema_registry.SchemaRegistry
	Conversions *convert.Registry      `optional:"true"`
	Logger      Logger                 `optional:"true"`
	Observer    observability.Observer `optional:"true"`
	Tracer      tracer.Client          `optional:"true"`
}

// NewDecoderWithDI creates a decoder from injected dependencies.
func NewDecoderWithDI(p DecoderParams) *Decoder {
	return NewDecoder(p.Registry, p.Conversions).
		WithConfig(p.Config).
		WithLogger(p.Logger).
		WithObserver(p.Observer).
		WithTracer(p.Tracer)
}
