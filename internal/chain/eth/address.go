package eth

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// addressLength is "0x" plus 20 bytes of hex.
const addressLength = 2 + 2*common.AddressLength

// IsValidAddress checks the address shape: "0x" followed by 40 hex characters.
// The checksum is not inspected.
func IsValidAddress(address string) bool {
	if len(address) != addressLength || !strings.HasPrefix(address, "0x") {
		return false
	}
	for i := 2; i < len(address); i++ {
		if !isHexChar(address[i]) {
			return false
		}
	}
	return true
}

// ToChecksumAddress converts an address to its EIP-55 mixed-case form.
// Input that fails IsValidAddress is returned unchanged.
func ToChecksumAddress(address string) string {
	if !IsValidAddress(address) {
		return address
	}

	lower := strings.ToLower(address[2:])
	hasher := sha3.NewLegacyKeccak256()
	_, _ = hasher.Write([]byte(lower))
	hash := hex.EncodeToString(hasher.Sum(nil))

	result := make([]byte, addressLength)
	copy(result, "0x")
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if hash[i] >= '8' && c >= 'a' && c <= 'f' {
			c -= 'a' - 'A'
		}
		result[i+2] = c
	}
	return string(result)
}

// IsChecksummedAddress reports whether address is well formed and already in
// its canonical EIP-55 form. A single-case spelling only passes when the
// checksum itself happens to be single-case.
func IsChecksummedAddress(address string) bool {
	return IsValidAddress(address) && ToChecksumAddress(address) == address
}

// ValidateChecksumAddress is the lenient check used when loading configuration.
// All-lowercase and all-uppercase addresses carry no checksum and are accepted;
// mixed-case addresses must match their EIP-55 form.
func ValidateChecksumAddress(address string) error {
	if !IsValidAddress(address) {
		return invalidAddress(address)
	}

	body := address[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}

	if expected := ToChecksumAddress(address); address != expected {
		return stakeerr.WithDetails(stakeerr.ErrInvalidChecksum, map[string]string{
			"expected": expected,
			"actual":   address,
		})
	}
	return nil
}

// NormalizeAddress validates the shape and returns the EIP-55 form.
func NormalizeAddress(address string) (string, error) {
	if !IsValidAddress(address) {
		return "", invalidAddress(address)
	}
	return ToChecksumAddress(address), nil
}

// ParseAddress converts a validated address string for ABI packing.
func ParseAddress(address string) (common.Address, error) {
	if !IsValidAddress(address) {
		return common.Address{}, invalidAddress(address)
	}
	return common.HexToAddress(address), nil
}

func invalidAddress(address string) error {
	return stakeerr.WithDetails(stakeerr.ErrInvalidAddress, map[string]string{
		"address": address,
	})
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
