// Package models contains the data structures used throughout homelab-wol.
package models

import "time"

// Defaults used when neither a wakeup line nor the configuration names a
// destination or port.
const (
	DefaultHost     = "255.255.255.255"
	DefaultHostIPv6 = "ff02::1"
	DefaultPort     = 40000
)

// WakeConfig holds the run-level settings for waking targets.
type WakeConfig struct {
	Host        string        // default destination for targets without one
	PreferIPv6  bool          // resolve DNS destinations to IPv6 addresses only
	Port        uint16        // default port for targets without one
	Wait        time.Duration // pause between consecutive packets
	File        string        // optional wakeup file, "-" for stdin
	MetricsFile string        // optional node-exporter textfile path
}
