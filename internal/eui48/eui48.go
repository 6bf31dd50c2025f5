// Package eui48 parses and formats 48-bit hardware address literals.
//
// The accepted syntax is six two-digit hexadecimal groups joined by a
// single separator, either '-' or ':'. The separator between the first
// and second group fixes the separator for the rest of the address.
package eui48

import (
	"errors"
	"fmt"
	"strings"
)

// Len is the number of bytes in an EUI-48 address.
const Len = 6

// textLen is the length of a formatted address, e.g. "12:13:14:15:16:17".
const textLen = Len*3 - 1

// Kind identifies why an address literal was rejected.
type Kind int

const (
	// InvalidByteLiteral means a group was not exactly two hex digits.
	InvalidByteLiteral Kind = iota + 1
	// InvalidSeparator means a separator was missing or differed from the first one.
	InvalidSeparator
	// TrailingBytes means input continued after the sixth group.
	TrailingBytes
)

// Sentinel errors matching each Kind via errors.Is.
var (
	ErrInvalidByteLiteral = errors.New("invalid byte literal")
	ErrInvalidSeparator   = errors.New("invalid separator")
	ErrTrailingBytes      = errors.New("trailing bytes")
)

func (k Kind) String() string {
	switch k {
	case InvalidByteLiteral:
		return ErrInvalidByteLiteral.Error()
	case InvalidSeparator:
		return ErrInvalidSeparator.Error()
	case TrailingBytes:
		return ErrTrailingBytes.Error()
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case InvalidByteLiteral:
		return ErrInvalidByteLiteral
	case InvalidSeparator:
		return ErrInvalidSeparator
	case TrailingBytes:
		return ErrTrailingBytes
	default:
		return nil
	}
}

// ParseError describes where and why an address literal failed to parse.
type ParseError struct {
	Kind   Kind
	Offset int // byte offset into Input
	Input  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Kind, e.Offset, e.Input)
}

// Is reports whether target is the sentinel error for e's Kind.
func (e *ParseError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Parse parses s as an EUI-48 address. The whole input must be consumed.
func Parse(s string) ([Len]byte, error) {
	addr, n, err := ParsePrefix(s)
	if err != nil {
		return [Len]byte{}, err
	}
	if n != len(s) {
		return [Len]byte{}, &ParseError{Kind: TrailingBytes, Offset: n, Input: s}
	}
	return addr, nil
}

// ParsePrefix parses an EUI-48 address at the start of s and returns the
// number of bytes consumed. Input after the sixth group is left alone.
func ParsePrefix(s string) ([Len]byte, int, error) {
	var addr [Len]byte
	var sep byte
	off := 0

	for i := 0; i < Len; i++ {
		if i > 0 {
			if off >= len(s) {
				return [Len]byte{}, 0, &ParseError{Kind: InvalidSeparator, Offset: off, Input: s}
			}
			c := s[off]
			if i == 1 && (c == '-' || c == ':') {
				sep = c
			}
			if sep == 0 || c != sep {
				return [Len]byte{}, 0, &ParseError{Kind: InvalidSeparator, Offset: off, Input: s}
			}
			off++
		}

		if off+2 > len(s) {
			return [Len]byte{}, 0, &ParseError{Kind: InvalidByteLiteral, Offset: off, Input: s}
		}
		hi, okHi := fromHex(s[off])
		lo, okLo := fromHex(s[off+1])
		if !okHi || !okLo {
			return [Len]byte{}, 0, &ParseError{Kind: InvalidByteLiteral, Offset: off, Input: s}
		}
		addr[i] = hi<<4 | lo
		off += 2
	}

	return addr, off, nil
}

// Format renders addr as lowercase hex groups joined by sep.
func Format(addr [Len]byte, sep byte) string {
	const digits = "0123456789abcdef"

	var b strings.Builder
	b.Grow(textLen)
	for i, octet := range addr {
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteByte(digits[octet>>4])
		b.WriteByte(digits[octet&0x0f])
	}
	return b.String()
}

func fromHex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
