package validate

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst(t *testing.T) {
	t.Parallel()

	calls := 0
	counted := func(f *Failure) Check {
		return func() *Failure {
			calls++
			return f
		}
	}

	boom := &Failure{Rule: RuleNumber, Message: "boom"}
	got := First(counted(nil), counted(boom), counted(&Failure{Rule: RuleBalance}))
	assert.Same(t, boom, got)
	assert.Equal(t, 2, calls, "checks after the first failure must not run")

	assert.Nil(t, First())
	assert.Nil(t, First(counted(nil), counted(nil)))
}

func TestAmount(t *testing.T) {
	t.Parallel()

	rules := AmountRules{
		Decimals:       18,
		MinGranularity: big.NewInt(1_000_000_000_000),
		Max:            nibi(t, "200"),
		MaxDecimals:    6,
	}

	tests := []struct {
		name    string
		input   string
		rule    Rule
		message string
	}{
		{"valid", "12.5", "", ""},
		{"valid at balance", "200", "", ""},
		{"format first", "12,5", RuleNumber, MsgNotNumber},
		{"positivity before granularity", "0", RulePositive, MsgNotPositive},
		{"granularity before ceiling", "300.0000001", RuleGranularity, "Amount must be in multiples of 0.000001"},
		{"below minimum", "0.0000001", RuleGranularity, "Minimum amount is 0.000001"},
		{"ceiling before decimals", "300.1234560", RuleBalance, "Maximum value is 200"},
		{"decimals last", "100.1234560", RuleDecimals, "Should have 1 to 6 decimals"},
		{"ceiling", "300", RuleBalance, "Maximum value is 200"},
		{"trailing separator", "5.", RuleDecimals, "Should have 1 to 6 decimals"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Amount(tc.input, rules)
			if tc.rule == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.rule, got.Rule)
			assert.Equal(t, tc.message, got.Message)
		})
	}
}

func TestAmount_DecimalBoundDefaultsToTokenDecimals(t *testing.T) {
	t.Parallel()

	rules := AmountRules{Decimals: 6}

	assert.Nil(t, Amount("1.123456", rules))

	got := Amount("1.1234567", rules)
	require.NotNil(t, got)
	assert.Equal(t, RuleDecimals, got.Rule)
	assert.Equal(t, "Should have 1 to 6 decimals", got.Message)
}
