package schema_registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSchemaID is returned when two sources register the same id.
	ErrDuplicateSchemaID = errors.New("duplicate schema id")

	// ErrUnknownType is returned when a configuration entry names a className
	// that is not in the type table.
	ErrUnknownType = errors.New("unknown backing type")

	// ErrNoSuchField is returned when a configuration entry declares a field
	// its backing type does not have.
	ErrNoSuchField = errors.New("no such field on backing type")

	// ErrUnknownConverter is returned when field metadata names a converter that
	// was never registered.
	ErrUnknownConverter = errors.New("unknown converter")

	// ErrComplexConfig is returned for configuration entries with nested
	// mappings. Nested configuration schemas are not supported; the entry is
	// skipped.
	ErrComplexConfig = errors.New("nested configuration entries are not supported")

	// ErrMalformedConfig is returned when the configuration document cannot be
	// parsed. The previously loaded schemas stay in place.
	ErrMalformedConfig = errors.New("malformed configuration document")

	// ErrBuilderClosed is returned when a builder is used after Build.
	ErrBuilderClosed = errors.New("schema registry builder already built")
)

// DuplicateSchemaIDError names the id and both sources that declared it.
type DuplicateSchemaIDError struct {
	ID       string
	Existing string
	Incoming string
}

func (e *DuplicateSchemaIDError) Error() string {
	return fmt.Sprintf("%s %q: declared by %s and %s", ErrDuplicateSchemaID, e.ID, e.Existing, e.Incoming)
}

// Is makes errors.Is(err, ErrDuplicateSchemaID) report true.
func (e *DuplicateSchemaIDError) Is(target error) bool {
	return target == ErrDuplicateSchemaID
}

// EntryError reports a configuration entry that was skipped.
type EntryError struct {
	ID  string
	Err error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("configuration entry %q: %v", e.ID, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// IsDuplicateSchemaID reports whether err is, or wraps, ErrDuplicateSchemaID.
func IsDuplicateSchemaID(err error) bool {
	return errors.Is(err, ErrDuplicateSchemaID)
}

// IsComplexConfig reports whether err is, or wraps, ErrComplexConfig.
func IsComplexConfig(err error) bool {
	return errors.Is(err, ErrComplexConfig)
}

// IsMalformedConfig reports whether err is, or wraps, ErrMalformedConfig.
func IsMalformedConfig(err error) bool {
	return errors.Is(err, ErrMalformedConfig)
}
