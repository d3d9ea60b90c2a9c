package minio

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/sheetmap/v1/observability"
)

// FXModule provides the MinIO client to an Fx application.
//
// Usage:
//
//	app := fx.New(
//	    minio.FXModule,
//	    fx.Provide(func() minio.Config { return cfg }),
//	)
var FXModule = fx.Module("minio",
	fx.Provide(
		NewClientWithDI,
		func(c *MinioClient) Client { return c },
	),
)

// MinioParams groups the dependencies needed to create a MinIO client.
type MinioParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a MinIO client with the injected logger and observer.
func NewClientWithDI(params MinioParams) (*MinioClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	return client.WithLogger(params.Logger).WithObserver(params.Observer), nil
}
