package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/sheetmap/v1/logger"
)

// FXModule provides the tracer to an Fx application and flushes it on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{ServiceName: "sheetmap", AppEnv: "production"}
//	    }),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		newFromParams,
		func(t *Tracer) Client { return t },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies needed to create the tracer.
type TracerParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

func newFromParams(p TracerParams) (*Tracer, error) {
	var log Logger
	if p.Logger != nil {
		log = p.Logger
	}
	return NewClient(p.Config, log)
}

// RegisterTracerLifecycle registers an OnStop hook that flushes pending spans
// and shuts the provider down.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer.logger != nil {
				tracer.logger.Info("shutting down tracer", nil)
			}
			return tracer.Shutdown(ctx)
		},
	})
}
