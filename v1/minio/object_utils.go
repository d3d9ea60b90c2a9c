package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

// ObjectInfo is the metadata of a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Put uploads an object to the configured bucket. A size of 0 or less streams
// the reader with unknown length.
func (m *MinioClient) Put(ctx context.Context, objectKey string, reader io.Reader, size int64) (int64, error) {
	start := time.Now()
	if size <= 0 {
		size = unknownSize
	}

	info, err := m.client.PutObject(ctx, m.Bucket(), objectKey, reader, size, minio.PutObjectOptions{})
	err = translateError(err)
	m.observeOperation("put", objectKey, time.Since(start), err, info.Size)
	if err != nil {
		return 0, fmt.Errorf("failed to put object %s: %w", objectKey, err)
	}
	return info.Size, nil
}

// Get downloads an object and returns its contents. A missing object returns
// an error matching ErrObjectNotFound.
func (m *MinioClient) Get(ctx context.Context, objectKey string) ([]byte, error) {
	start := time.Now()
	data, err := m.get(ctx, objectKey)
	m.observeOperation("get", objectKey, time.Since(start), err, int64(len(data)))
	return data, err
}

func (m *MinioClient) get(ctx context.Context, objectKey string) ([]byte, error) {
	reader, err := m.client.GetObject(ctx, m.Bucket(), objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", objectKey, translateError(err))
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			m.logWarn(ctx, "failed to close object reader", cerr, map[string]interface{}{"key": objectKey})
		}
	}()

	// GetObject is lazy; Stat surfaces NoSuchKey before any bytes are read.
	info, err := reader.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", objectKey, translateError(err))
	}

	data := make([]byte, info.Size)
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", objectKey, translateError(err))
	}
	return data, nil
}

// Stat returns the metadata of an object.
func (m *MinioClient) Stat(ctx context.Context, objectKey string) (ObjectInfo, error) {
	start := time.Now()
	info, err := m.client.StatObject(ctx, m.Bucket(), objectKey, minio.StatObjectOptions{})
	err = translateError(err)
	m.observeOperation("stat", objectKey, time.Since(start), err, info.Size)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("failed to stat object %s: %w", objectKey, err)
	}
	return ObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// Delete removes an object from the configured bucket.
func (m *MinioClient) Delete(ctx context.Context, objectKey string) error {
	start := time.Now()
	err := translateError(m.client.RemoveObject(ctx, m.Bucket(), objectKey, minio.RemoveObjectOptions{}))
	m.observeOperation("delete", objectKey, time.Since(start), err, 0)
	return err
}
