// Package chain provides chain identifiers and the fixed-point amount
// helpers shared by the validation, display and encoding layers.
package chain

import (
	"strconv"
	"strings"
)

// ID is a numeric EVM chain identifier (EIP-155).
type ID uint64

// Known chain identifiers.
const (
	NibiruMainnet ID = 6900
	NibiruTestnet ID = 6911
)

// String returns the decimal chain identifier.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Name returns a human-readable network name, or an empty string for
// identifiers this package does not know about.
func (id ID) Name() string {
	switch id {
	case NibiruMainnet:
		return "nibiru-mainnet"
	case NibiruTestnet:
		return "nibiru-testnet"
	default:
		return ""
	}
}

// IsKnown returns true if the chain has built-in defaults.
func (id ID) IsKnown() bool {
	return id.Name() != ""
}

// ParseChainID parses a chain identifier given as a decimal number
// ("6900"), a 0x-prefixed hex quantity ("0x1af4") or a known network name.
// Zero is never a valid chain identifier.
func ParseChainID(s string) (ID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	for _, known := range KnownChains() {
		if strings.EqualFold(s, known.Name()) {
			return known, true
		}
	}

	var (
		v   uint64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 64)
	} else {
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil || v == 0 {
		return 0, false
	}
	return ID(v), true
}

// KnownChains returns the chain identifiers with built-in defaults.
func KnownChains() []ID {
	return []ID{NibiruMainnet, NibiruTestnet}
}
