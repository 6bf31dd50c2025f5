package models

import "net/netip"

// Destination is where a magic packet is sent: either a DNS name that
// still needs resolving or a literal IP address. It is usually a
// broadcast or multicast address rather than the sleeping host itself.
type Destination struct {
	name string
	ip   netip.Addr
}

// DNSDestination returns a destination for an unresolved host name.
// The name is not validated.
func DNSDestination(name string) Destination {
	return Destination{name: name}
}

// IPDestination returns a destination for a literal address.
func IPDestination(ip netip.Addr) Destination {
	return Destination{ip: ip}
}

// ParseDestination treats s as an IPv4 literal, then an IPv6 literal, and
// falls back to a DNS name. It never fails.
func ParseDestination(s string) Destination {
	if ip, err := netip.ParseAddr(s); err == nil {
		return IPDestination(ip)
	}
	return DNSDestination(s)
}

// IsIP reports whether the destination is a literal address.
func (d Destination) IsIP() bool {
	return d.ip.IsValid()
}

// IP returns the literal address, or the zero Addr for DNS destinations.
func (d Destination) IP() netip.Addr {
	return d.ip
}

// Name returns the host name, or "" for IP destinations.
func (d Destination) Name() string {
	return d.name
}

// Equal reports whether both destinations name the same host or address.
func (d Destination) Equal(other Destination) bool {
	return d == other
}

func (d Destination) String() string {
	if d.IsIP() {
		return d.ip.String()
	}
	return d.name
}

// WakeupTarget is one machine to wake, as read from a wakeup file line or
// the command line. Only the hardware address is mandatory; unset
// optional fields are left for the caller to default.
type WakeupTarget struct {
	hardwareAddress MacAddress
	destination     *Destination
	port            *uint16
	secureOn        *SecureOn
}

// NewWakeupTarget returns a target with only a hardware address.
func NewWakeupTarget(mac MacAddress) WakeupTarget {
	return WakeupTarget{hardwareAddress: mac}
}

// HardwareAddress returns the address of the machine to wake.
func (t WakeupTarget) HardwareAddress() MacAddress {
	return t.hardwareAddress
}

// Destination returns where to send the packet, if set.
func (t WakeupTarget) Destination() (Destination, bool) {
	if t.destination == nil {
		return Destination{}, false
	}
	return *t.destination, true
}

// Port returns the UDP port, if set.
func (t WakeupTarget) Port() (uint16, bool) {
	if t.port == nil {
		return 0, false
	}
	return *t.port, true
}

// SecureOn returns the SecureON password, if set.
func (t WakeupTarget) SecureOn() (SecureOn, bool) {
	if t.secureOn == nil {
		return SecureOn{}, false
	}
	return *t.secureOn, true
}

// Equal reports whether both targets carry the same fields.
func (t WakeupTarget) Equal(other WakeupTarget) bool {
	if t.hardwareAddress != other.hardwareAddress {
		return false
	}
	d1, ok1 := t.Destination()
	d2, ok2 := other.Destination()
	if ok1 != ok2 || !d1.Equal(d2) {
		return false
	}
	p1, ok1 := t.Port()
	p2, ok2 := other.Port()
	if ok1 != ok2 || p1 != p2 {
		return false
	}
	s1, ok1 := t.SecureOn()
	s2, ok2 := other.SecureOn()
	return ok1 == ok2 && s1 == s2
}

// WithDestination returns a copy of t with the destination set.
func (t WakeupTarget) WithDestination(d Destination) WakeupTarget {
	t.destination = &d
	return t
}

// WithPort returns a copy of t with the port set.
func (t WakeupTarget) WithPort(port uint16) WakeupTarget {
	t.port = &port
	return t
}

// WithSecureOn returns a copy of t with the SecureON password set.
func (t WakeupTarget) WithSecureOn(s SecureOn) WakeupTarget {
	t.secureOn = &s
	return t
}
