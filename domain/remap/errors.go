package remap

import (
	"errors"
	"fmt"
)

// Parse errors.
var (
	// ErrParse is matched by every error returned while decoding input.
	ErrParse = errors.New("parse error")

	// ErrFieldCount indicates an interval line without exactly three fields.
	ErrFieldCount = errors.New("expected three fields: destination, source, length")

	// ErrZeroLength indicates an interval line with a length of zero.
	ErrZeroLength = errors.New("interval length must be positive")

	// ErrOverflow indicates an interval whose source or destination end
	// does not fit in 64 bits.
	ErrOverflow = errors.New("interval end overflows uint64")
)

// ParseError reports the input that could not be decoded.
type ParseError struct {
	Input string
	Err   error
}

// NewParseError creates a ParseError for input caused by err.
func NewParseError(input string, err error) *ParseError {
	return &ParseError{Input: input, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
}

// Unwrap exposes both ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
