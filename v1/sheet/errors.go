package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLayout is returned when the merged regions of a page do
	// not allow locating the header row.
	ErrUnsupportedLayout = errors.New("unsupported sheet layout")

	// ErrIndexOutOfRange is returned when a page beyond the page count is requested.
	ErrIndexOutOfRange = errors.New("page index out of range")

	// ErrEmptyHeader is returned when the header row has no text.
	ErrEmptyHeader = errors.New("header row is empty")

	// ErrRejected is returned by Filter.Check for files that do not pass.
	ErrRejected = errors.New("file rejected by filter")
)

// UnsupportedLayoutError describes why the header row of a page could not be found.
type UnsupportedLayoutError struct {
	Page    string
	Regions []Region
	Reason  string
}

func (e *UnsupportedLayoutError) Error() string {
	return fmt.Sprintf("%s: page %q: %s (%d merged regions)", ErrUnsupportedLayout, e.Page, e.Reason, len(e.Regions))
}

func (e *UnsupportedLayoutError) Is(target error) bool {
	return target == ErrUnsupportedLayout
}

// IndexOutOfRangeError names the requested page and the page count.
type IndexOutOfRangeError struct {
	Requested int
	PageCount int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: page %d requested, workbook has %d", ErrIndexOutOfRange, e.Requested, e.PageCount)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Filter rules named by RejectedError.Rule.
const (
	RuleName  = "name"
	RuleType  = "type"
	RuleSize  = "size"
	RuleCheck = "check"
)

// RejectedError names the file and the filter rule it failed.
type RejectedError struct {
	File   string
	Rule   string
	Detail string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrRejected, e.File, e.Detail)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// RejectionRule returns the rule a rejected file failed, or "" when err is
// not a rejection.
func RejectionRule(err error) string {
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Rule
	}
	return ""
}

// IsUnsupportedLayout reports whether err is, or wraps, ErrUnsupportedLayout.
func IsUnsupportedLayout(err error) bool {
	return errors.Is(err, ErrUnsupportedLayout)
}

// IsIndexOutOfRange reports whether err is, or wraps, ErrIndexOutOfRange.
func IsIndexOutOfRange(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}
