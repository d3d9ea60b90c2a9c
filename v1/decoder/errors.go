package decoder

import (
	"errors"
	"fmt"
)

// ErrRowPanic marks a row whose conversion code panicked.
var ErrRowPanic = errors.New("panic while decoding row")

// FieldError is a failure confined to one field of one row. The field keeps
// its zero value and the rest of the row is decoded.
type FieldError struct {
	Row    int
	Column string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d column %q field %s: %v", e.Row, e.Column, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// RowError is a failure that lost a whole row. Sibling rows are unaffected.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// IsRowPanic reports whether err is, or wraps, ErrRowPanic.
func IsRowPanic(err error) bool {
	return errors.Is(err, ErrRowPanic)
}
