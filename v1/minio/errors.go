package minio

import (
	"errors"
	"net/http"

	"github.com/minio/minio-go/v7"
)

var (
	// ErrObjectNotFound is returned when the requested object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist
	// and may not be created.
	ErrBucketNotFound = errors.New("bucket does not exist")

	// ErrEmptyEndpoint is returned by NewClient for an empty endpoint.
	ErrEmptyEndpoint = errors.New("minio endpoint cannot be empty")
)

// IsObjectNotFound reports whether err means the object does not exist.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// translateError maps MinIO error responses onto the package sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey", resp.StatusCode == http.StatusNotFound && resp.Code != "NoSuchBucket":
		return errors.Join(ErrObjectNotFound, err)
	case resp.Code == "NoSuchBucket":
		return errors.Join(ErrBucketNotFound, err)
	}
	return err
}
