package wakefile

import (
	"errors"
	"fmt"
)

// Kind identifies why a wakeup line was rejected.
type Kind int

const (
	// Empty means the line had no fields.
	Empty Kind = iota + 1
	// InvalidHardwareAddress means field 1 was not an EUI-48 address.
	InvalidHardwareAddress
	// InvalidPort means a port field was not a number in 0-65535.
	InvalidPort
	// InvalidSecureOn means a SecureON field was not an EUI-48 literal.
	InvalidSecureOn
	// TooManyFields means the line had more than four fields.
	TooManyFields
)

// MaxFields is the largest number of fields a wakeup line may have.
const MaxFields = 4

// ParseError describes why a single wakeup line could not be parsed.
// Field numbers are 1-based positions in the line.
type ParseError struct {
	Kind  Kind
	Field int   // offending field, 0 for Empty and TooManyFields
	Count int   // number of fields, set for TooManyFields
	Err   error // underlying address or number error, if any
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case Empty:
		return "line empty"
	case InvalidHardwareAddress:
		return fmt.Sprintf("field %d: invalid hardware address: %v", e.Field, e.Err)
	case InvalidPort:
		return fmt.Sprintf("field %d: invalid port number: %v", e.Field, e.Err)
	case InvalidSecureOn:
		return fmt.Sprintf("field %d: invalid SecureON token: %v", e.Field, e.Err)
	case TooManyFields:
		return fmt.Sprintf("expected at most %d fields, got %d", MaxFields, e.Count)
	default:
		return fmt.Sprintf("unknown parse error kind %d", int(e.Kind))
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLineError attaches a 1-based line number to a ParseError.
type ParseLineError struct {
	Line int
	Err  *ParseError
}

func (e *ParseLineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseLineError) Unwrap() error {
	return e.Err
}

// ErrInvalidEncoding is wrapped by ReadError for lines that are not valid UTF-8.
var ErrInvalidEncoding = errors.New("line is not valid UTF-8")

// ReadError reports a failure to read a line, as opposed to a failure to
// parse one. Line is the 1-based number of the line being read.
type ReadError struct {
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("line %d: read failed: %v", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
