package configsource

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/sheetmap/v1/minio"
)

// ObjectGetter is the part of the MinIO client ObjectSource needs.
type ObjectGetter interface {
	Get(ctx context.Context, objectKey string) ([]byte, error)
}

// ObjectSource loads the document from object storage.
type ObjectSource struct {
	client ObjectGetter
	key    string
}

// NewObjectSource returns a source reading key through client.
func NewObjectSource(client ObjectGetter, key string) *ObjectSource {
	if key == "" {
		key = DefaultFileName
	}
	return &ObjectSource{client: client, key: key}
}

// Load fetches the object. A missing object returns ErrNotFound.
func (s *ObjectSource) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key)
	if minio.IsObjectNotFound(err) {
		return nil, fmt.Errorf("%w: object %s", ErrNotFound, s.key)
	}
	return data, err
}

// Name returns "object:<key>".
func (s *ObjectSource) Name() string {
	return "object:" + s.key
}
