package validate

import "math/big"

// Check is a deferred rule evaluation.
type Check func() *Failure

// First runs checks in order and returns the first failure.
// Later checks are not evaluated once one fails.
func First(checks ...Check) *Failure {
	for _, check := range checks {
		if f := check(); f != nil {
			return f
		}
	}
	return nil
}

// AmountRules parameterizes Amount for one token of one deployment.
type AmountRules struct {
	// Decimals is the token's decimal count.
	Decimals int

	// MinGranularity is the smallest permitted step in base units.
	// Nil disables the granularity rule.
	MinGranularity *big.Int

	// Max is the balance ceiling in base units. Nil disables it.
	Max *big.Int

	// MaxDecimals bounds the typed fractional digits. Zero selects Decimals.
	MaxDecimals int
}

// Amount runs the full rule chain for a typed amount:
// format, positivity, granularity, balance ceiling, decimal places.
func Amount(s string, rules AmountRules) *Failure {
	maxDecimals := rules.MaxDecimals
	if maxDecimals <= 0 {
		maxDecimals = rules.Decimals
	}

	return First(
		func() *Failure { return CheckNumber(s) },
		func() *Failure { return CheckPositive(s, false) },
		func() *Failure { return CheckGranularity(s, rules.Decimals, rules.MinGranularity) },
		func() *Failure { return CheckWithinBalance(s, rules.Decimals, rules.Max) },
		func() *Failure { return CheckDecimalPlaces(s, maxDecimals) },
	)
}
