package configsource

import "context"

// Source loads the raw configuration document.
type Source interface {
	// Load returns the document bytes, or an error matching ErrNotFound when no
	// document exists.
	Load(ctx context.Context) ([]byte, error)

	// Name identifies the document in logs and error messages.
	Name() string
}
