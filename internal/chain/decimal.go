package chain

import (
	"math/big"
	"strings"

	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// Decimal is a parsed decimal string in conventional notation.
// Integer and Fraction hold ASCII digits only; either may be empty but not both.
type Decimal struct {
	Negative     bool
	ExplicitPlus bool
	Integer      string
	Fraction     string
}

// ParseDecimal splits a decimal string into sign, integer digits and
// fractional digits. Accepted forms: optional single "+" or "-", digits,
// at most one ".", and at least one digit overall ("1.", ".5", "-0.25").
// Whitespace, exponents and thousands separators are rejected.
func ParseDecimal(s string) (Decimal, error) {
	var d Decimal
	if s == "" {
		return d, stakeerr.ErrInvalidAmount
	}

	orig := s
	switch s[0] {
	case '-':
		d.Negative = true
		s = s[1:]
	case '+':
		d.ExplicitPlus = true
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if !isDigits(intPart) || !isDigits(fracPart) || intPart+fracPart == "" {
		return Decimal{}, invalidAmount(orig)
	}

	d.Integer = intPart
	d.Fraction = fracPart
	return d, nil
}

// IsDecimal reports whether s is a syntactically valid decimal string.
func IsDecimal(s string) bool {
	_, err := ParseDecimal(s)
	return err == nil
}

// FractionDigits returns the number of digits after the decimal separator,
// or 0 when s has no separator.
func FractionDigits(s string) int {
	_, frac, found := strings.Cut(s, ".")
	if !found {
		return 0
	}
	return len(frac)
}

// IsZero returns true if every digit is zero.
func (d Decimal) IsZero() bool {
	return strings.Trim(d.Integer+d.Fraction, "0") == ""
}

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int {
	switch {
	case d.IsZero():
		return 0
	case d.Negative:
		return -1
	default:
		return 1
	}
}

// Scaled returns the signed integer formed by all digits, i.e. the value
// multiplied by 10^len(Fraction).
func (d Decimal) Scaled() *big.Int {
	digits := d.Integer + d.Fraction
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		// Digits were validated at parse time; only a zero value gets here.
		return new(big.Int)
	}
	if d.Negative {
		v.Neg(v)
	}
	return v
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func invalidAmount(amount string) error {
	return stakeerr.WithDetails(stakeerr.ErrInvalidAmount, map[string]string{
		"amount": amount,
	})
}
