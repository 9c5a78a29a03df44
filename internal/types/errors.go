package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for coarse classification with errors.Is. Each structured
// error type below wraps the matching sentinel, so callers can branch on the
// class without caring about the specific field or offset.
var (
	// ErrTruncated indicates a declared length field would read past the end
	// of the available bytes.
	ErrTruncated = errors.New("buffer truncated")

	// ErrUnsupportedVersion indicates a version tag is not the single
	// currently-known value.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrMalformedScalar indicates a scalar payload length does not match
	// its declared type.
	ErrMalformedScalar = errors.New("malformed scalar")

	// ErrLengthMismatch indicates the ABI timestamp and value arrays differ
	// in length.
	ErrLengthMismatch = errors.New("array length mismatch")

	// ErrEncoding indicates the value formatter rejected a native argument
	// during encode.
	ErrEncoding = errors.New("argument encoding failed")
)

// TruncatedError reports a read that would overrun the buffer. Field names
// what was being read (e.g. "row count", "column 2 of row 0") and Offset is
// the byte position the read started at, enough to reproduce the failure
// from a hex dump.
type TruncatedError struct {
	Field  string
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("buffer too short for %s at offset %d: need %d bytes, have %d", e.Field, e.Offset, e.Need, e.Have)
}

func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// VersionError reports an unknown version tag in a type descriptor or
// encoded-value envelope.
type VersionError struct {
	Field string
	Got   uint16
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported %s version %d", e.Field, e.Got)
}

func (e *VersionError) Unwrap() error { return ErrUnsupportedVersion }

// ScalarError reports a scalar payload whose length is invalid for its type
// tag (e.g. an int8 tag with anything other than 8 bytes).
type ScalarError struct {
	Tag string
	Len int
}

func (e *ScalarError) Error() string {
	return fmt.Sprintf("malformed %s scalar: invalid payload length %d", e.Tag, e.Len)
}

func (e *ScalarError) Unwrap() error { return ErrMalformedScalar }

// LengthMismatchError reports ABI datapoint arrays of differing lengths.
type LengthMismatchError struct {
	Timestamps int
	Values     int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("datapoint array length mismatch: %d timestamps vs %d values", e.Timestamps, e.Values)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// FormatError reports a value the formatter could not encode. Index is the
// position in the argument list; Err is the formatter's underlying error.
type FormatError struct {
	Index int
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot encode argument %d: %v", e.Index, e.Err)
}

// Unwrap exposes both the class sentinel and the underlying cause.
func (e *FormatError) Unwrap() []error { return []error{ErrEncoding, e.Err} }
