// Package packet encodes and decodes Wake-on-LAN magic packets.
//
// A magic packet is six 0xFF synchronization bytes followed by sixteen
// repetitions of the target hardware address, optionally followed by a
// six byte SecureON password.
package packet

import (
	"io"

	"github.com/fgeck/homelab-wol/internal/models"
)

const (
	syncLen     = 6
	repetitions = 16
	addrLen     = 6

	// Size is the length of a magic packet without SecureON.
	Size = syncLen + repetitions*addrLen
	// SizeSecureOn is the length of a magic packet with SecureON.
	SizeSecureOn = Size + addrLen
)

var syncStream = [syncLen]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// Fill writes the magic packet for mac into buf.
func Fill(buf *[Size]byte, mac models.MacAddress) {
	copy(buf[:syncLen], syncStream[:])
	for i := 0; i < repetitions; i++ {
		off := syncLen + i*addrLen
		copy(buf[off:off+addrLen], mac[:])
	}
}

// FillSecureOn writes the magic packet for mac followed by secureOn into buf.
func FillSecureOn(buf *[SizeSecureOn]byte, mac models.MacAddress, secureOn models.SecureOn) {
	Fill((*[Size]byte)(buf[:Size]), mac)
	copy(buf[Size:], secureOn[:])
}

// Write streams the magic packet for mac to w, followed by secureOn if it
// is non-nil. The output is identical to Fill and FillSecureOn.
func Write(w io.Writer, mac models.MacAddress, secureOn *models.SecureOn) error {
	if err := writeFull(w, syncStream[:]); err != nil {
		return err
	}
	for i := 0; i < repetitions; i++ {
		if err := writeFull(w, mac[:]); err != nil {
			return err
		}
	}
	if secureOn != nil {
		return writeFull(w, secureOn[:])
	}
	return nil
}

// Bytes returns a freshly allocated magic packet.
func Bytes(mac models.MacAddress, secureOn *models.SecureOn) []byte {
	if secureOn != nil {
		var buf [SizeSecureOn]byte
		FillSecureOn(&buf, mac, *secureOn)
		return buf[:]
	}
	var buf [Size]byte
	Fill(&buf, mac)
	return buf[:]
}

// ForTarget builds the packet for a parsed wakeup target.
func ForTarget(target models.WakeupTarget) []byte {
	if so, ok := target.SecureOn(); ok {
		return Bytes(target.HardwareAddress(), &so)
	}
	return Bytes(target.HardwareAddress(), nil)
}

func writeFull(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}
