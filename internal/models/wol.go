package models

import (
	"net/netip"
	"time"
)

// WakeResult holds the result of waking a single target.
type WakeResult struct {
	Target     WakeupTarget
	Address    netip.AddrPort // resolved packet destination
	PacketSent bool
	BytesSent  int
	Duration   time.Duration
	Error      error
}
