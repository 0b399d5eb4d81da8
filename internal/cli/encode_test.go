package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/stakeflow/internal/config"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

const testOwner = "0x1234567890123456789012345678901234567890"

type callJSON struct {
	ChainID  uint64 `json:"chain_id"`
	Method   string `json:"method"`
	Selector string `json:"selector"`
	To       string `json:"to"`
	Value    string `json:"value"`
	Data     string `json:"data"`
}

func runCall(t *testing.T, args ...string) callJSON {
	t.Helper()
	return runCallIn(t, t.TempDir(), args...)
}

func runCallIn(t *testing.T, home string, args ...string) callJSON {
	t.Helper()
	out, err := runIn(t, home, append([]string{"encode"}, args...)...)
	require.NoError(t, err)

	var call callJSON
	require.NoError(t, json.Unmarshal([]byte(out), &call))
	return call
}

func TestEncodeStake(t *testing.T) {
	call := runCall(t, "stake", "420")

	assert.Equal(t, uint64(6900), call.ChainID)
	assert.Equal(t, "liquidStake", call.Method)
	assert.Equal(t, config.NibiruStakingContract, call.To)
	assert.Equal(t, "420000000000000000000", call.Value)
	assert.True(t, strings.HasPrefix(call.Data, "0x5c764266"))
	assert.Len(t, call.Data, 2+8+64)
	assert.Equal(t, "0x5c764266", call.Selector)
}

func TestEncodeStake_Text(t *testing.T) {
	out, err := run(t, "encode", "stake", "1.5", "--chain", "nibiru-testnet", "-o", "text")
	require.NoError(t, err)

	want := "chain:  6911\n" +
		"method: liquidStake (0x5c764266)\n" +
		"to:     " + config.NibiruStakingContract + "\n" +
		"value:  1500000000000000000\n" +
		"data:   0x5c764266" + strings.Repeat("0", 48) + "14d1120d7b160000\n"
	assert.Equal(t, want, out)
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  error
		wantExit int
	}{
		{"unsupported chain", []string{"stake", "420", "--chain", "1"}, stakeerr.ErrUnsupportedChain, stakeerr.ExitNotFound},
		{"zero amount", []string{"stake", "0"}, stakeerr.ErrNonPositiveAmount, stakeerr.ExitInput},
		{"bad amount", []string{"unstake", "ten"}, stakeerr.ErrInvalidAmount, stakeerr.ExitInput},
		{"native token call", []string{"balance", testOwner, "--token", "principal"}, stakeerr.ErrNotSupported, stakeerr.ExitInput},
		{"bad token", []string{"balance", testOwner, "--token", "gov"}, stakeerr.ErrInvalidInput, stakeerr.ExitInput},
		{"bad owner", []string{"balance", "0x1234"}, stakeerr.ErrInvalidAddress, stakeerr.ExitInput},
		{"unknown operation", []string{"stak", "1"}, stakeerr.ErrUnknownOperation, stakeerr.ExitInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, append([]string{"encode"}, tc.args...)...)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantExit, ExitCode(err))
		})
	}
}

func TestEncode_UnknownOperationSuggestion(t *testing.T) {
	_, err := run(t, "encode", "stak")

	var se *stakeerr.StakeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, `did you mean "stakeflow encode stake"?`, se.Suggestion)
	assert.Equal(t, "stak", se.Details["operation"])

	_, err = run(t, "encode", "zzzzzzzzzz")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "run 'stakeflow encode --help' to list operations", se.Suggestion)
}

func TestEncodeViewAndTokenCalls(t *testing.T) {
	owner := strings.Repeat("0", 24) + strings.ToLower(testOwner[2:])
	staking := strings.Repeat("0", 24) + strings.ToLower(config.NibiruStakingContract[2:])

	tests := []struct {
		name   string
		args   []string
		to     string
		method string
		data   string
	}{
		{"unstake", []string{"unstake", "1.5"}, config.NibiruStakingContract, "unstake", "0x2e17de78" + strings.Repeat("0", 48) + "14d1120d7b160000"},
		{"redeem", []string{"redeem"}, config.NibiruStakingContract, "redeem", "0xbe040fb0"},
		{"exchange rate", []string{"exchange-rate"}, config.NibiruStakingContract, "getExchangeRate", "0xe6aa216c"},
		{"balance", []string{"balance", testOwner}, config.NibiruStNIBIToken, "balanceOf", "0x70a08231" + owner},
		{"allowance default spender", []string{"allowance", testOwner}, config.NibiruStNIBIToken, "allowance", "0xdd62ed3e" + owner + staking},
		{"approve default spender", []string{"approve", "200"}, config.NibiruStNIBIToken, "approve", "0x095ea7b3" + staking + strings.Repeat("0", 47) + "ad78ebc5ac6200000"},
		{"transfer", []string{"transfer", testOwner, "200"}, config.NibiruStNIBIToken, "transfer", "0xa9059cbb" + owner + strings.Repeat("0", 47) + "ad78ebc5ac6200000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			call := runCall(t, tc.args...)
			assert.Equal(t, tc.to, call.To)
			assert.Equal(t, tc.method, call.Method)
			assert.Equal(t, "0", call.Value)
			assert.Equal(t, tc.data, call.Data)
			assert.Equal(t, tc.data[:10], call.Selector)
		})
	}
}

func TestDecodeExchangeRate(t *testing.T) {
	out, err := run(t, "decode", "exchange-rate", "0x"+strings.Repeat("0", 49)+"e92596fd6290000", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "1.05\n", out)

	_, err = run(t, "decode", "exchange-rate", "0xzz")
	require.ErrorIs(t, err, stakeerr.ErrInvalidInput)

	_, err = run(t, "decode", "exchange-rate", "0x01")
	require.ErrorIs(t, err, stakeerr.ErrEncodingFailed)
}
