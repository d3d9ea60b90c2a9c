package schema_registry

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/sheetmap/v1/configsource"
	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/observability"
	"github.com/Aleph-Alpha/sheetmap/v1/schema"
)

// DescriptorGroup is the Fx value group declared record types are collected from.
const DescriptorGroup = "sheetmap_schemas"

// FXModule provides the schema registry to an Fx application. Record types are
// contributed with Declare from any module; the registry is built once every
// provider has run.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    configsource.FXModule,
//	    schema_registry.FXModule,
//	    schema_registry.Declare(schema.Describe[Person]("person")),
//	    fx.Provide(schema_registry.DefaultConfig),
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewRegistryWithDI,
		func(r *Registry) SchemaRegistry { return r },
	),
)

// Declare contributes descriptors to the registry built by FXModule.
func Declare(ds ...*schema.Descriptor) fx.Option {
	opts := make([]fx.Option, 0, len(ds))
	for _, d := range ds {
		opts = append(opts, fx.Provide(fx.Annotate(
			func() *schema.Descriptor { return d },
			fx.ResultTags(`group:"`+DescriptorGroup+`"`),
		)))
	}
	return fx.Options(opts...)
}

// RegistryParams groups the dependencies needed to build a registry.
type RegistryParams struct {
	fx.In

	Config      Config
	Descriptors []*schema.Descriptor   `group:"sheetmap_schemas"`
	Transforms  convert.Container      `optional:"true"`
	Source      configsource.Source    `optional:"true"`
	Logger      Logger                 `optional:"true"`
	Observer    observability.Observer `optional:"true"`
}

// NewRegistryWithDI registers every declared descriptor and builds the
// registry. Consumers receive it only after Build has returned.
func NewRegistryWithDI(p RegistryParams) (*Registry, error) {
	b := NewBuilder(p.Config).
		WithTransforms(p.Transforms).
		WithSource(p.Source).
		WithObserver(p.Observer)
	if p.Logger != nil {
		b.WithLogger(p.Logger)
	}
	for _, d := range p.Descriptors {
		if err := b.Register(d); err != nil {
			return nil, err
		}
	}

	return b.Build(context.Background())
}
