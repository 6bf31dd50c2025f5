package wol

import (
	"context"
	"errors"
	"io"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/fgeck/homelab-wol/internal/models"
	"github.com/fgeck/homelab-wol/internal/packet"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	sendFunc func(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error)
}

func (m *mockClient) Send(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error) {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, addr, payload)
	}
	return len(payload), nil
}

type mockResolver struct {
	lookupFunc func(ctx context.Context, network, host string) ([]netip.Addr, error)
}

func (m *mockResolver) LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error) {
	if m.lookupFunc != nil {
		return m.lookupFunc(ctx, network, host)
	}
	return nil, errors.New("no such host")
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func defaultConfig() models.WakeConfig {
	return models.WakeConfig{
		Host: models.DefaultHost,
		Port: models.DefaultPort,
	}
}

var testMAC = models.MacAddress{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}

func TestWake_Success_Defaults(t *testing.T) {
	var capturedAddr netip.AddrPort
	var capturedPayload []byte

	client := &mockClient{
		sendFunc: func(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error) {
			capturedAddr = addr
			capturedPayload = payload
			return len(payload), nil
		},
	}

	svc := NewWithClients(testLogger(), client, &mockResolver{})

	result, err := svc.Wake(context.Background(), models.NewWakeupTarget(testMAC), defaultConfig())

	require.NoError(t, err)
	assert.True(t, result.PacketSent)
	assert.Nil(t, result.Error)
	assert.Equal(t, packet.Size, result.BytesSent)
	assert.Equal(t, netip.MustParseAddrPort("255.255.255.255:40000"), capturedAddr)
	assert.Equal(t, capturedAddr, result.Address)
	assert.Equal(t, packet.Bytes(testMAC, nil), capturedPayload)
}

func TestWake_TargetOverridesDefaults(t *testing.T) {
	var capturedAddr netip.AddrPort
	var capturedPayload []byte

	client := &mockClient{
		sendFunc: func(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error) {
			capturedAddr = addr
			capturedPayload = payload
			return len(payload), nil
		},
	}

	svc := NewWithClients(testLogger(), client, &mockResolver{})

	so := models.SecureOn{1, 2, 3, 4, 5, 6}
	target := models.NewWakeupTarget(testMAC).
		WithDestination(models.IPDestination(netip.MustParseAddr("192.0.2.255"))).
		WithPort(9).
		WithSecureOn(so)

	result, err := svc.Wake(context.Background(), target, defaultConfig())

	require.NoError(t, err)
	assert.True(t, result.PacketSent)
	assert.Equal(t, netip.MustParseAddrPort("192.0.2.255:9"), capturedAddr)
	assert.Equal(t, packet.Bytes(testMAC, &so), capturedPayload)
	assert.Equal(t, packet.SizeSecureOn, result.BytesSent)
}

func TestWake_ResolvesDNS(t *testing.T) {
	var capturedHost string
	resolver := &mockResolver{
		lookupFunc: func(ctx context.Context, network, host string) ([]netip.Addr, error) {
			capturedHost = host
			return []netip.Addr{
				netip.MustParseAddr("::ffff:192.0.2.7"),
				netip.MustParseAddr("2001:db8::7"),
			}, nil
		},
	}

	svc := NewWithClients(testLogger(), &mockClient{}, resolver)
	target := models.NewWakeupTarget(testMAC).WithDestination(models.DNSDestination("nas.example.com"))

	result, err := svc.Wake(context.Background(), target, defaultConfig())

	require.NoError(t, err)
	assert.Equal(t, "nas.example.com", capturedHost)
	assert.Equal(t, netip.MustParseAddrPort("192.0.2.7:40000"), result.Address)
}

func TestWake_PreferIPv6(t *testing.T) {
	resolver := &mockResolver{
		lookupFunc: func(ctx context.Context, network, host string) ([]netip.Addr, error) {
			return []netip.Addr{
				netip.MustParseAddr("192.0.2.7"),
				netip.MustParseAddr("2001:db8::7"),
			}, nil
		},
	}

	svc := NewWithClients(testLogger(), &mockClient{}, resolver)
	target := models.NewWakeupTarget(testMAC).WithDestination(models.DNSDestination("nas.example.com"))

	cfg := defaultConfig()
	cfg.PreferIPv6 = true
	result, err := svc.Wake(context.Background(), target, cfg)

	require.NoError(t, err)
	assert.True(t, result.PacketSent)
	assert.Equal(t, netip.MustParseAddrPort("[2001:db8::7]:40000"), result.Address)
}

func TestWake_PreferIPv6_NoIPv6Address(t *testing.T) {
	resolver := &mockResolver{
		lookupFunc: func(ctx context.Context, network, host string) ([]netip.Addr, error) {
			return []netip.Addr{netip.MustParseAddr("192.0.2.7")}, nil
		},
	}

	sent := false
	client := &mockClient{
		sendFunc: func(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error) {
			sent = true
			return len(payload), nil
		},
	}

	svc := NewWithClients(testLogger(), client, resolver)
	target := models.NewWakeupTarget(testMAC).WithDestination(models.DNSDestination("nas.example.com"))

	cfg := defaultConfig()
	cfg.PreferIPv6 = true
	result, err := svc.Wake(context.Background(), target, cfg)

	require.NoError(t, err)
	assert.False(t, sent)
	assert.False(t, result.PacketSent)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "not reachable")
}

func TestWake_ResolveFailed(t *testing.T) {
	svc := NewWithClients(testLogger(), &mockClient{}, &mockResolver{})
	target := models.NewWakeupTarget(testMAC).WithDestination(models.DNSDestination("nowhere.invalid"))

	result, err := svc.Wake(context.Background(), target, defaultConfig())

	require.NoError(t, err)
	assert.False(t, result.PacketSent)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "failed to resolve nowhere.invalid")
}

func TestWake_SendFailed(t *testing.T) {
	client := &mockClient{
		sendFunc: func(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error) {
			return 0, errors.New("network unreachable")
		},
	}

	svc := NewWithClients(testLogger(), client, &mockResolver{})

	result, err := svc.Wake(context.Background(), models.NewWakeupTarget(testMAC), defaultConfig())

	require.NoError(t, err)
	assert.False(t, result.PacketSent)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "network unreachable")
}

func TestWake_ShortWriteIsFatal(t *testing.T) {
	client := &mockClient{
		sendFunc: func(ctx context.Context, addr netip.AddrPort, payload []byte) (int, error) {
			return len(payload) - 6, nil
		},
	}

	svc := NewWithClients(testLogger(), client, &mockResolver{})

	result, err := svc.Wake(context.Background(), models.NewWakeupTarget(testMAC), defaultConfig())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShortWrite)
	assert.Contains(t, err.Error(), "96 of 102 bytes")
	require.NotNil(t, result)
	assert.False(t, result.PacketSent)
}

func TestDefaultClient_Send(t *testing.T) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	addr := conn.LocalAddr().(*net.UDPAddr).AddrPort()
	payload := packet.Bytes(testMAC, nil)

	n, err := (&DefaultClient{}).Send(context.Background(), addr, payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 512)
	read, _, err := conn.ReadFromUDPAddrPort(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, buf[:read])
}
