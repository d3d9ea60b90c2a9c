package configsource

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the file backed configuration source. The file watcher is
// closed when the application stops.
//
// Usage:
//
//	app := fx.New(
//	    configsource.FXModule,
//	    fx.Provide(func() configsource.Config { return configsource.Config{Watch: true} }),
//	)
var FXModule = fx.Module("configsource",
	fx.Provide(
		NewFileSourceWithDI,
		func(s *FileSource) Source { return s },
	),
	fx.Invoke(RegisterFileSourceLifecycle),
)

// FileSourceParams groups the dependencies of NewFileSourceWithDI.
type FileSourceParams struct {
	fx.In

	Config Config
	Logger Logger `optional:"true"`
}

// NewFileSourceWithDI creates the file source with the injected logger.
func NewFileSourceWithDI(p FileSourceParams) (*FileSource, error) {
	src, err := NewFileSource(p.Config)
	if err != nil {
		return nil, err
	}
	if p.Logger != nil {
		src.WithLogger(p.Logger)
	}
	return src, nil
}

// RegisterFileSourceLifecycle stops the file watcher on shutdown.
func RegisterFileSourceLifecycle(lc fx.Lifecycle, src *FileSource) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return src.Close()
		},
	})
}
