// Package wol provides Wake-on-LAN operations.
package wol

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/fgeck/homelab-wol/internal/models"
	"github.com/fgeck/homelab-wol/internal/packet"
	"github.com/rs/zerolog"
)

// ErrShortWrite is returned when the network accepted only part of a magic
// packet. A truncated packet cannot be resumed, so callers must abort
// rather than retry.
var ErrShortWrite = errors.New("short write of magic packet")

// Service defines the interface for Wake-on-LAN operations.
type Service interface {
	Wake(ctx context.Context, target models.WakeupTarget, cfg models.WakeConfig) (*models.WakeResult, error)
}

// Client sends a single UDP datagram.
type Client interface {
	Send(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error)
}

// Resolver looks up the addresses of a host name.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// DefaultClient sends datagrams from an ephemeral UDP socket.
type DefaultClient struct{}

// Send writes payload to addr in a single datagram and returns the number
// of bytes the socket accepted.
func (c *DefaultClient) Send(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error) {
	addr = netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port())
	network := "udp4"
	if addr.Addr().Is6() {
		network = "udp6"
	}

	conn, err := net.ListenUDP(network, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to open UDP socket: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}

	n, err := conn.WriteToUDPAddrPort(payload, addr)
	if err != nil {
		return n, fmt.Errorf("failed to send magic packet: %w", err)
	}
	return n, nil
}

// Impl implements the WOL Service interface.
type Impl struct {
	client   Client
	resolver Resolver
	logger   zerolog.Logger
}

// New creates a new WOL service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		client:   &DefaultClient{},
		resolver: net.DefaultResolver,
		logger:   logger,
	}
}

// NewWithClients creates a new WOL service with custom clients (for testing).
func NewWithClients(logger zerolog.Logger, client Client, resolver Resolver) *Impl {
	return &Impl{
		client:   client,
		resolver: resolver,
		logger:   logger,
	}
}

// Wake sends a magic packet for target. Fields the target leaves unset
// are taken from cfg. Resolution and send failures are reported in the
// result; the returned error is reserved for ErrShortWrite.
func (s *Impl) Wake(ctx context.Context, target models.WakeupTarget, cfg models.WakeConfig) (*models.WakeResult, error) {
	result := &models.WakeResult{Target: target}
	start := time.Now()

	dest, ok := target.Destination()
	if !ok {
		dest = models.ParseDestination(cfg.Host)
	}
	port, ok := target.Port()
	if !ok {
		port = cfg.Port
	}

	s.logger.Info().
		Str("mac", target.HardwareAddress().String()).
		Msg("waking up")

	ip, err := s.resolve(ctx, dest, cfg.PreferIPv6)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result, nil
	}
	result.Address = netip.AddrPortFrom(ip, port)

	payload := packet.ForTarget(target)

	s.logger.Debug().
		Str("mac", target.HardwareAddress().String()).
		Str("destination", dest.String()).
		Str("address", result.Address.String()).
		Bool("secure_on", len(payload) == packet.SizeSecureOn).
		Msg("sending magic packet")

	n, err := s.client.Send(ctx, result.Address, payload)
	result.BytesSent = n
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}
	if n != len(payload) {
		return result, fmt.Errorf("%w: %d of %d bytes to %s", ErrShortWrite, n, len(payload), result.Address)
	}

	result.PacketSent = true
	s.logger.Debug().Int("bytes", n).Msg("magic packet sent")

	return result, nil
}

func (s *Impl) resolve(ctx context.Context, dest models.Destination, preferIPv6 bool) (netip.Addr, error) {
	if dest.IsIP() {
		return dest.IP(), nil
	}

	addrs, err := s.resolver.LookupNetIP(ctx, "ip", dest.Name())
	if err != nil {
		return netip.Addr{}, fmt.Errorf("failed to resolve %s: %w", dest.Name(), err)
	}

	for _, addr := range addrs {
		addr = addr.Unmap()
		if !preferIPv6 || addr.Is6() {
			return addr, nil
		}
	}
	return netip.Addr{}, fmt.Errorf("host %s not reachable", dest.Name())
}
