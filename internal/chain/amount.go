package chain

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// DefaultTruncateLength is the rendered length above which TruncateDecimal
// abbreviates the fractional tail.
const DefaultTruncateLength = 12

// truncationMarker replaces the dropped fractional digits.
const truncationMarker = "…"

// ToBaseUnits parses a decimal amount string to big.Int with the given decimal places.
// For example, "1.5" with 18 decimals returns 1500000000000000000.
//
// The conversion is exact. Fractional digits beyond decimalPlaces are only
// accepted when they are all zero; anything else would lose precision and
// returns ErrTooManyDecimals.
func ToBaseUnits(amount string, decimalPlaces int) (*big.Int, error) {
	if decimalPlaces < 0 {
		return nil, stakeerr.WithDetails(stakeerr.ErrInvalidDecimals, map[string]string{
			"decimals": strconv.Itoa(decimalPlaces),
		})
	}

	d, err := ParseDecimal(amount)
	if err != nil {
		return nil, err
	}

	decPart := d.Fraction
	if len(decPart) > decimalPlaces {
		if strings.Trim(decPart[decimalPlaces:], "0") != "" {
			return nil, stakeerr.WithDetails(stakeerr.ErrTooManyDecimals, map[string]string{
				"amount":   amount,
				"decimals": strconv.Itoa(decimalPlaces),
			})
		}
		decPart = decPart[:decimalPlaces]
	}

	intPart := d.Integer
	if intPart == "" {
		intPart = "0"
	}
	intVal, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, invalidAmount(amount)
	}

	// Scale integer part
	multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimalPlaces)), nil)
	result := new(big.Int).Mul(intVal, multiplier)

	// Pad the fractional part to the full scale and add it
	if decPart != "" {
		decPart += strings.Repeat("0", decimalPlaces-len(decPart))
		decVal, ok := new(big.Int).SetString(decPart, 10)
		if !ok {
			return nil, invalidAmount(amount)
		}
		result.Add(result, decVal)
	}

	if d.Negative {
		result.Neg(result)
	}
	return result, nil
}

// ParseBaseUnits parses an integer amount already expressed in base units.
// Decimal ("1500", "-3") and 0x-prefixed hex ("0x05dc", as returned by
// eth_call) are accepted. Leading zeros are allowed in both forms.
func ParseBaseUnits(value string) (*big.Int, error) {
	s := value
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	if s == "" {
		return nil, invalidAmount(value)
	}
	if (base == 10 && !isDigits(s)) || (base == 16 && !isHexDigits(s)) {
		return nil, invalidAmount(value)
	}

	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, invalidAmount(value)
	}
	if negative {
		v.Neg(v)
	}
	return v, nil
}

// FormatUnits converts a base-unit integer string to a decimal string with
// the given decimal places, stripping trailing fractional zeros.
func FormatUnits(value string, decimalPlaces int) (string, error) {
	if decimalPlaces < 0 {
		return "", stakeerr.WithDetails(stakeerr.ErrInvalidDecimals, map[string]string{
			"decimals": strconv.Itoa(decimalPlaces),
		})
	}
	v, err := ParseBaseUnits(value)
	if err != nil {
		return "", err
	}
	return FormatBaseUnits(v, decimalPlaces), nil
}

// FromBaseUnits is FormatUnits for display paths: a malformed value yields
// an empty string instead of an error.
func FromBaseUnits(value string, decimalPlaces int) string {
	s, err := FormatUnits(value, decimalPlaces)
	if err != nil {
		return ""
	}
	return s
}

// FormatBaseUnits converts a big.Int to a human-readable string with the given decimal places.
// Trailing zeros after the decimal point are removed, and so is the point
// itself when nothing follows it: 1500000 with 6 decimals is "1.5" and
// 2000000 is "2". Negative values keep their sign.
func FormatBaseUnits(amount *big.Int, decimalPlaces int) string {
	if amount == nil {
		return "0"
	}
	if amount.Sign() < 0 {
		return "-" + FormatBaseUnits(new(big.Int).Abs(amount), decimalPlaces)
	}

	str := amount.String()
	if decimalPlaces <= 0 {
		return str
	}

	// Pad with leading zeros so there is at least one integer digit
	if len(str) <= decimalPlaces {
		str = strings.Repeat("0", decimalPlaces-len(str)+1) + str
	}

	decimalPos := len(str) - decimalPlaces
	intPart := str[:decimalPos]
	fracPart := strings.TrimRight(str[decimalPos:], "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

// TruncateDecimal shortens a decimal string for display. When s is longer
// than maxLen characters the integer part is kept whole and the fractional
// tail is cut and marked with "…". A non-positive maxLen selects
// DefaultTruncateLength.
//
// The result is cosmetic and must never be parsed back into an amount.
func TruncateDecimal(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultTruncateLength
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	intPart, fracPart, found := strings.Cut(s, ".")
	if !found {
		return s
	}

	// Room left after the integer part, the point and the marker, in runes
	keep := maxLen - utf8.RuneCountInString(intPart) - 2
	if keep < 1 {
		keep = 1
	}
	frac := []rune(fracPart)
	if keep >= len(frac) {
		return s
	}
	return intPart + "." + string(frac[:keep]) + truncationMarker
}
