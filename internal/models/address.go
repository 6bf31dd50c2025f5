package models

import (
	"bytes"
	"net"

	"github.com/fgeck/homelab-wol/internal/eui48"
)

// MacAddress is the hardware address of the machine to wake.
type MacAddress [eui48.Len]byte

// ParseMacAddress parses an EUI-48 literal such as "12:13:14:15:16:17".
func ParseMacAddress(s string) (MacAddress, error) {
	b, err := eui48.Parse(s)
	if err != nil {
		return MacAddress{}, err
	}
	return MacAddress(b), nil
}

// String formats the address with ':' separators.
func (m MacAddress) String() string {
	return eui48.Format(m, ':')
}

// Format formats the address with the given separator, usually ':' or '-'.
func (m MacAddress) Format(sep byte) string {
	return eui48.Format(m, sep)
}

// Bytes returns a copy of the raw address bytes.
func (m MacAddress) Bytes() []byte {
	return append([]byte(nil), m[:]...)
}

// HardwareAddr converts the address for use with package net.
func (m MacAddress) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(m.Bytes())
}

// Compare orders addresses by their raw bytes.
func (m MacAddress) Compare(other MacAddress) int {
	return bytes.Compare(m[:], other[:])
}

// SecureOn is the SecureON password appended to a magic packet. It shares
// the textual syntax of MacAddress but is a separate type.
type SecureOn [eui48.Len]byte

// ParseSecureOn parses a SecureON password written like a hardware address.
func ParseSecureOn(s string) (SecureOn, error) {
	b, err := eui48.Parse(s)
	if err != nil {
		return SecureOn{}, err
	}
	return SecureOn(b), nil
}

func (s SecureOn) String() string {
	return eui48.Format(s, ':')
}

// Format formats the password with the given separator.
func (s SecureOn) Format(sep byte) string {
	return eui48.Format(s, sep)
}

// Bytes returns a copy of the raw password bytes.
func (s SecureOn) Bytes() []byte {
	return append([]byte(nil), s[:]...)
}
