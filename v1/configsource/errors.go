package configsource

import "errors"

// ErrNotFound means no configuration document exists at the source.
var ErrNotFound = errors.New("configuration document not found")

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
