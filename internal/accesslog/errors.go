package accesslog

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is returned when the input log file does not exist.
var ErrFileNotFound = errors.New("access log file not found")

// Reasons a line can fail extraction. They are wrapped by ParseError.
var (
	// ErrNoTimestamp is returned when no closing timestamp bracket exists at or after the anchor offset.
	ErrNoTimestamp = errors.New("no timestamp bracket after anchor offset")

	// ErrNoRequestFields is returned when the request, status, bytes and User-Agent fields cannot be matched.
	ErrNoRequestFields = errors.New("request fields do not match the combined log format")

	// ErrNumberOutOfRange is returned when the status code or byte count does not fit its integer type.
	ErrNumberOutOfRange = errors.New("numeric field out of range")
)

// ParseError reports a log line that could not be turned into a record.
//
// Design decision: The raw line is kept verbatim so the diagnostic shows
// exactly what was read. Line is 1-based and zero when the caller did not
// track line numbers.
type ParseError struct {
	// Line is the 1-based line number in the input, or 0 if unknown.
	Line int

	// Text is the raw line content without the line terminator.
	Text string

	// Err is the reason extraction failed.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: cannot parse access log line (%v): %q", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("cannot parse access log line (%v): %q", e.Err, e.Text)
}

// Unwrap returns the reason so callers can use errors.Is on it.
func (e *ParseError) Unwrap() error {
	return e.Err
}
