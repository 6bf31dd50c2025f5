package packet

import (
	"errors"
	"fmt"

	"github.com/fgeck/homelab-wol/internal/models"
	"github.com/mdlayher/wol"
)

// ErrInvalidLength is returned for packets that are neither Size nor
// SizeSecureOn bytes long.
var ErrInvalidLength = errors.New("invalid magic packet length")

// Decode checks that b is a well-formed magic packet and returns the
// hardware address and, for 108 byte packets, the SecureON password.
func Decode(b []byte) (models.MacAddress, *models.SecureOn, error) {
	if len(b) != Size && len(b) != SizeSecureOn {
		return models.MacAddress{}, nil, fmt.Errorf("%w: %d bytes", ErrInvalidLength, len(b))
	}

	var p wol.MagicPacket
	if err := p.UnmarshalBinary(b); err != nil {
		return models.MacAddress{}, nil, fmt.Errorf("decoding magic packet: %w", err)
	}

	var mac models.MacAddress
	copy(mac[:], p.Target)

	for i := 0; i < repetitions; i++ {
		off := syncLen + i*addrLen
		if models.MacAddress(b[off:off+addrLen]) != mac {
			return models.MacAddress{}, nil, fmt.Errorf("decoding magic packet: repetition %d does not match %s", i+1, mac)
		}
	}

	if len(p.Password) == 0 {
		return mac, nil, nil
	}
	var so models.SecureOn
	copy(so[:], p.Password)
	return mac, &so, nil
}
