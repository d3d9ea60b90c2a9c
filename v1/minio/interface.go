package minio

import (
	"context"
	"io"
)

// Client provides the object storage operations sheetmap uses.
//
// This interface is implemented by the concrete *MinioClient type.
type Client interface {
	// Put uploads an object to the configured bucket.
	Put(ctx context.Context, objectKey string, reader io.Reader, size int64) (int64, error)

	// Get retrieves an object and returns its contents.
	Get(ctx context.Context, objectKey string) ([]byte, error)

	// Stat returns object metadata.
	Stat(ctx context.Context, objectKey string) (ObjectInfo, error)

	// Delete removes an object.
	Delete(ctx context.Context, objectKey string) error
}
