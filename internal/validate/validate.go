// Package validate holds the user-facing amount and address rules.
//
// Every rule returns a *Failure describing the first problem found, or nil
// when the input is acceptable. Rules never panic and never return errors:
// bad input is an expected condition, surfaced next to the form field that
// produced it.
package validate

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/chain/eth"
)

// Rule identifies which check produced a Failure.
type Rule string

// Rules in the order Amount evaluates them.
const (
	RuleNumber      Rule = "number"
	RulePositive    Rule = "positive"
	RuleGranularity Rule = "granularity"
	RuleBalance     Rule = "balance"
	RuleDecimals    Rule = "decimals"
	RuleAddress     Rule = "address"
)

// User-facing messages.
const (
	MsgNotNumber       = "The value must be a number"
	MsgNotPositive     = "The value must be greater than 0"
	MsgNoDecimals      = "Should not have decimals"
	MsgAddressFormat   = "Invalid address format"
	MsgAddressChecksum = "Invalid address checksum"
)

// Failure is a validation outcome that did not pass.
type Failure struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

func (f *Failure) String() string {
	if f == nil {
		return ""
	}
	return f.Message
}

func fail(rule Rule, format string, args ...any) *Failure {
	return &Failure{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// CheckNumber fails when s is not a plain decimal string.
func CheckNumber(s string) *Failure {
	if !chain.IsDecimal(s) {
		return fail(RuleNumber, MsgNotNumber)
	}
	return nil
}

// CheckPositive fails when s is not a number or is not greater than zero.
// With allowZero, zero passes but negative values still fail.
func CheckPositive(s string, allowZero bool) *Failure {
	d, err := chain.ParseDecimal(s)
	if err != nil {
		return fail(RuleNumber, MsgNotNumber)
	}
	switch sign := d.Sign(); {
	case sign < 0, sign == 0 && !allowZero:
		return fail(RulePositive, MsgNotPositive)
	}
	return nil
}

// CheckWithinBalance fails when s, converted to base units, exceeds max.
// The comparison is exact even when s has more fractional digits than the
// token supports. A nil max disables the rule.
func CheckWithinBalance(s string, decimals int, maxBaseUnits *big.Int) *Failure {
	d, err := chain.ParseDecimal(s)
	if err != nil {
		return fail(RuleNumber, MsgNotNumber)
	}
	if maxBaseUnits == nil || decimals < 0 {
		return nil
	}

	// value = Scaled / 10^len(Fraction), limit = max / 10^decimals.
	// Cross-multiply to stay in integers.
	lhs := new(big.Int).Mul(d.Scaled(), pow10(decimals))
	rhs := new(big.Int).Mul(maxBaseUnits, pow10(len(d.Fraction)))
	if lhs.Cmp(rhs) > 0 {
		return fail(RuleBalance, "Maximum value is %s", chain.FormatBaseUnits(maxBaseUnits, decimals))
	}
	return nil
}

// ValidateLimitedAmount checks that s is positive and, when max is set, that
// it does not exceed max. max is a base-unit integer string (decimal or 0x
// hex); an empty or unparseable max leaves the amount unbounded.
func ValidateLimitedAmount(s string, decimals int, maxBaseUnits string) *Failure {
	if f := CheckPositive(s, false); f != nil {
		return f
	}
	if maxBaseUnits == "" {
		return nil
	}
	limit, err := chain.ParseBaseUnits(maxBaseUnits)
	if err != nil {
		return nil
	}
	return CheckWithinBalance(s, decimals, limit)
}

// CheckDecimalPlaces is CheckDecimalPlacesRange with a minimum of one digit.
func CheckDecimalPlaces(s string, maxDecimals int) *Failure {
	return CheckDecimalPlacesRange(s, 1, maxDecimals)
}

// CheckDecimalPlacesRange fails when s has a decimal separator and the number
// of digits after it falls outside [minDecimals, maxDecimals]. Strings without
// a separator always pass. When maxDecimals is zero any separator fails.
func CheckDecimalPlacesRange(s string, minDecimals, maxDecimals int) *Failure {
	if !strings.Contains(s, ".") {
		return nil
	}
	if maxDecimals <= 0 {
		return fail(RuleDecimals, MsgNoDecimals)
	}
	n := chain.FractionDigits(s)
	if n < minDecimals || n > maxDecimals {
		return fail(RuleDecimals, "Should have %d to %d decimals", minDecimals, maxDecimals)
	}
	return nil
}

// CheckGranularity fails when s, in base units, is below minGranularity or is
// not an exact multiple of it. A nil or zero minGranularity disables the rule.
func CheckGranularity(s string, decimals int, minGranularity *big.Int) *Failure {
	if !chain.IsDecimal(s) {
		return fail(RuleNumber, MsgNotNumber)
	}
	if minGranularity == nil || minGranularity.Sign() <= 0 {
		return nil
	}

	human := chain.FormatBaseUnits(minGranularity, decimals)
	v, err := chain.ToBaseUnits(s, decimals)
	if err != nil {
		// More precision than the token has: cannot be a whole number of steps.
		return fail(RuleGranularity, "Amount must be in multiples of %s", human)
	}
	if v.Cmp(minGranularity) < 0 {
		return fail(RuleGranularity, "Minimum amount is %s", human)
	}
	if new(big.Int).Rem(v, minGranularity).Sign() != 0 {
		return fail(RuleGranularity, "Amount must be in multiples of %s", human)
	}
	return nil
}

// CheckAddress fails when s is not a hex address or is not in its EIP-55
// checksummed form.
func CheckAddress(s string) *Failure {
	if !eth.IsValidAddress(s) {
		return fail(RuleAddress, MsgAddressFormat)
	}
	if !eth.IsChecksummedAddress(s) {
		return fail(RuleAddress, MsgAddressChecksum)
	}
	return nil
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
