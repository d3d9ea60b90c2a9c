package main

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/sheetmap/v1/configsource"
	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/decoder"
	"github.com/Aleph-Alpha/sheetmap/v1/logger"
	"github.com/Aleph-Alpha/sheetmap/v1/metrics"
	"github.com/Aleph-Alpha/sheetmap/v1/minio"
	"github.com/Aleph-Alpha/sheetmap/v1/schema_registry"
	"github.com/Aleph-Alpha/sheetmap/v1/tracer"
)

// cliTransformsName names the transform container of the command line tool.
const cliTransformsName = "sheetmap-cli"

// newCLITransforms returns the empty transform container the registry resolves
// "label$$method" entries against.
func newCLITransforms() convert.Container {
	return convert.NewMethodSet(cliTransformsName)
}

// services are the components a command works with once the app has started.
type services struct {
	fx.In

	Logger   logger.Logger
	Registry schema_registry.SchemaRegistry
	Decoder  *decoder.Decoder
	Store    minio.Client             `optional:"true"`
	Metrics  metrics.MetricsCollector `optional:"true"`
}

// buildApp assembles the Fx application for s. Optional parts (metrics,
// tracing, object storage) are only wired when configured.
func buildApp(s settings, decCfg decoder.Config, out *services) *fx.App {
	opts := []fx.Option{
		fx.NopLogger,
		logger.FXModule,
		fx.Supply(logger.Config{Level: s.LogLevel, Encoding: s.LogFormat, ServiceName: logger.DefaultServiceName}),
		fx.Provide(
			func(l logger.Logger) schema_registry.Logger { return l },
			func(l logger.Logger) decoder.Logger { return l },
			func(l logger.Logger) configsource.Logger { return l },
			func(l logger.Logger) minio.Logger { return l },
		),

		schema_registry.FXModule,
		fx.Provide(newCLITransforms),
		fx.Supply(schema_registry.Config{HotReload: s.HotReload, MatchWorkers: schema_registry.DefaultMatchWorkers}),

		decoder.FXModule,
		fx.Supply(decCfg),

		fx.Populate(out),
	}

	if s.MetricsAddr != "" {
		opts = append(opts,
			metrics.FXModule,
			fx.Supply(metrics.Config{Address: s.MetricsAddr, ServiceName: logger.DefaultServiceName}),
		)
	}
	if s.TraceExport {
		opts = append(opts,
			tracer.FXModule,
			fx.Supply(tracer.Config{ServiceName: logger.DefaultServiceName, EnableExport: true}),
		)
	}
	if s.Minio.Endpoint != "" {
		opts = append(opts,
			minio.FXModule,
			fx.Supply(minio.Config{Connection: s.Minio}),
		)
	}

	if s.ConfigObject != "" {
		opts = append(opts, fx.Provide(func(c minio.Client) configsource.Source {
			return configsource.NewObjectSource(c, s.ConfigObject)
		}))
	} else {
		opts = append(opts,
			configsource.FXModule,
			fx.Supply(configsource.Config{FileName: s.ConfigFile, Dir: s.ConfigDir, Watch: s.HotReload}),
		)
	}

	return fx.New(opts...)
}

// withServices starts the app, runs fn and stops the app again.
func withServices(ctx context.Context, s settings, decCfg decoder.Config, fn func(context.Context, services) error) error {
	var svc services
	app := buildApp(s, decCfg, &svc)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	runErr := fn(ctx, svc)
	if err := app.Stop(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
