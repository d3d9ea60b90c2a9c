package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDescriptor is returned when a record type declaration cannot be
	// turned into a schema: empty id, non-struct type, unknown field override or
	// a field that names both a transform and a converter.
	ErrInvalidDescriptor = errors.New("invalid schema descriptor")

	// ErrCyclicSchema is returned when nested record types reference each other
	// in a cycle.
	ErrCyclicSchema = errors.New("cyclic nested schema")

	// ErrDuplicateField is returned when two fields of one schema share an
	// internal name.
	ErrDuplicateField = errors.New("duplicate field in schema")
)

// CycleError reports the chain of schema ids that forms a cycle.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicSchema, strings.Join(e.Path, " -> "))
}

// Is makes errors.Is(err, ErrCyclicSchema) report true.
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicSchema
}

// IsCyclicSchema reports whether err is, or wraps, a cycle error.
func IsCyclicSchema(err error) bool {
	return errors.Is(err, ErrCyclicSchema)
}

// IsInvalidDescriptor reports whether err is, or wraps, ErrInvalidDescriptor.
func IsInvalidDescriptor(err error) bool {
	return errors.Is(err, ErrInvalidDescriptor)
}

func invalid(id, format string, args ...interface{}) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidDescriptor, id, fmt.Sprintf(format, args...))
}
