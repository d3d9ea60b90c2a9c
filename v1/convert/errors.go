package convert

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNoSuchConversion is returned when no conversion is registered for a
	// target type.
	ErrNoSuchConversion = errors.New("no such conversion")

	// ErrMissingMethod is returned when a transform container lacks a method.
	ErrMissingMethod = errors.New("missing transform method")

	// ErrNotOperator is returned when a converter type does not implement Operator.
	ErrNotOperator = errors.New("converter type does not implement Operator")

	// ErrNotAssignable is returned when a converted value cannot be stored in
	// the target field.
	ErrNotAssignable = errors.New("value not assignable")
)

// NoSuchConversionError names both registry keys that were tried.
type NoSuchConversionError struct {
	Type         reflect.Type
	ShortKey     string
	QualifiedKey string
}

func (e *NoSuchConversionError) Error() string {
	return fmt.Sprintf("%s for %v: tried %q and %q", ErrNoSuchConversion, e.Type, e.ShortKey, e.QualifiedKey)
}

// Is makes errors.Is(err, ErrNoSuchConversion) report true.
func (e *NoSuchConversionError) Is(target error) bool {
	return target == ErrNoSuchConversion
}

// MissingMethodError names the method and the container it was looked up on.
type MissingMethodError struct {
	Method    string
	Container string
}

func (e *MissingMethodError) Error() string {
	return fmt.Sprintf("%s %q on %s", ErrMissingMethod, e.Method, e.Container)
}

// Is makes errors.Is(err, ErrMissingMethod) report true.
func (e *MissingMethodError) Is(target error) bool {
	return target == ErrMissingMethod
}

// IsNoSuchConversion reports whether err is, or wraps, ErrNoSuchConversion.
func IsNoSuchConversion(err error) bool {
	return errors.Is(err, ErrNoSuchConversion)
}

// IsMissingMethod reports whether err is, or wraps, ErrMissingMethod.
func IsMissingMethod(err error) bool {
	return errors.Is(err, ErrMissingMethod)
}
