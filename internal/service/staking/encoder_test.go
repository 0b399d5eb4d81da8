package staking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/chain/eth"
	"github.com/mrz1836/stakeflow/internal/config"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

func word(hexValue string) string {
	return strings.Repeat("0", 64-len(hexValue)) + hexValue
}

func TestEncodeStake_NativeValue(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	call, err := s.EncodeStake(chain.NibiruMainnet, "420")
	require.NoError(t, err)

	assert.Equal(t, config.NibiruStakingContract, call.To)
	assert.Equal(t, "420000000000000000000", call.Value)
	assert.Equal(t, "0x5c764266"+word("16c4abbebea0100000"), call.Data.String())
}

func TestEncodeStake_TokenPrincipal(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	call, err := s.EncodeStake(localChain, "1.5")
	require.NoError(t, err)

	assert.Equal(t, config.NibiruStakingContract, call.To)
	assert.Equal(t, "0", call.Value)
	assert.Equal(t, "0x5c764266"+word("16e360"), call.Data.String())
}

func TestEncodeStake_PerChainContract(t *testing.T) {
	t.Parallel()

	other := config.Defaults().Deployments[1]
	other.StakingContract = ownerAddress
	reg, err := config.NewRegistry([]config.Deployment{config.Defaults().Deployments[0], other})
	require.NoError(t, err)
	s := NewService(reg)

	a, err := s.EncodeStake(chain.NibiruMainnet, "420")
	require.NoError(t, err)
	b, err := s.EncodeStake(chain.NibiruTestnet, "420")
	require.NoError(t, err)

	assert.Equal(t, config.NibiruStakingContract, a.To)
	assert.Equal(t, ownerAddress, b.To)
	assert.Equal(t, a.Data, b.Data)
}

func TestEncodeStake_Errors(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	tests := []struct {
		name    string
		chainID chain.ID
		amount  string
		wantErr error
	}{
		{"unsupported chain", chain.ID(1), "420", stakeerr.ErrUnsupportedChain},
		{"zero", chain.NibiruMainnet, "0", stakeerr.ErrNonPositiveAmount},
		{"zero with fraction", chain.NibiruMainnet, "0.000", stakeerr.ErrNonPositiveAmount},
		{"negative", chain.NibiruMainnet, "-1", stakeerr.ErrNonPositiveAmount},
		{"not a number", chain.NibiruMainnet, "abc", stakeerr.ErrInvalidAmount},
		{"empty", chain.NibiruMainnet, "", stakeerr.ErrInvalidAmount},
		{"too many decimals", localChain, "1.0000001", stakeerr.ErrTooManyDecimals},
		{"overflow", chain.NibiruMainnet, "1" + strings.Repeat("0", 60), stakeerr.ErrAmountOverflow},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			call, err := s.EncodeStake(tc.chainID, tc.amount)
			require.Error(t, err)
			assert.Nil(t, call)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestEncodeUnstake(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	call, err := s.EncodeUnstake(chain.NibiruTestnet, "1.5")
	require.NoError(t, err)
	assert.Equal(t, config.NibiruStakingContract, call.To)
	assert.Equal(t, "0", call.Value)
	assert.Equal(t, "0x2e17de78"+word("14d1120d7b160000"), call.Data.String())

	_, err = s.EncodeUnstake(chain.NibiruTestnet, "0")
	assert.ErrorIs(t, err, stakeerr.ErrNonPositiveAmount)

	_, err = s.EncodeUnstake(chain.ID(7000), "1")
	assert.ErrorIs(t, err, stakeerr.ErrUnsupportedChain)
}

func TestEncodeNoArgumentCalls(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	redeem, err := s.EncodeRedeem(chain.NibiruMainnet)
	require.NoError(t, err)
	assert.Equal(t, "0xbe040fb0", redeem.Data.String())
	assert.Equal(t, config.NibiruStakingContract, redeem.To)
	assert.Equal(t, "0", redeem.Value)

	rate, err := s.EncodeExchangeRate(chain.NibiruMainnet)
	require.NoError(t, err)
	assert.Equal(t, "0xe6aa216c", rate.Data.String())
	assert.Equal(t, config.NibiruStakingContract, rate.To)

	_, err = s.EncodeRedeem(chain.ID(1))
	assert.ErrorIs(t, err, stakeerr.ErrUnsupportedChain)
	_, err = s.EncodeExchangeRate(chain.ID(1))
	assert.ErrorIs(t, err, stakeerr.ErrUnsupportedChain)
}

func TestEncodeTokenCalls(t *testing.T) {
	t.Parallel()
	s := newTestService(t)
	owner := word(strings.ToLower(ownerAddress[2:]))

	balance, err := s.EncodeBalanceOf(chain.NibiruMainnet, TokenReceipt, ownerAddress)
	require.NoError(t, err)
	assert.Equal(t, config.NibiruStNIBIToken, balance.To)
	assert.Equal(t, "0x70a08231"+owner, balance.Data.String())

	allowance, err := s.EncodeAllowance(localChain, TokenPrincipal, ownerAddress, config.NibiruStakingContract)
	require.NoError(t, err)
	assert.Equal(t, wethAddress, allowance.To)
	assert.Equal(t, "0xdd62ed3e"+owner+word(strings.ToLower(config.NibiruStakingContract[2:])), allowance.Data.String())

	approve, err := s.EncodeApprove(localChain, TokenPrincipal, config.NibiruStakingContract, "1.5")
	require.NoError(t, err)
	assert.Equal(t, wethAddress, approve.To)
	assert.Equal(t, "0", approve.Value)
	assert.True(t, strings.HasPrefix(approve.Data.String(), "0x095ea7b3"))
	assert.True(t, strings.HasSuffix(approve.Data.String(), word("16e360")))

	transfer, err := s.EncodeTransfer(chain.NibiruMainnet, TokenReceipt, ownerAddress, "200")
	require.NoError(t, err)
	assert.Equal(t, config.NibiruStNIBIToken, transfer.To)
	assert.Equal(t, "0xa9059cbb"+owner+word("ad78ebc5ac6200000"), transfer.Data.String())
}

func TestEncodeTokenCalls_Errors(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	tests := []struct {
		name    string
		encode  func() (*EncodedCall, error)
		wantErr error
	}{
		{"native balanceOf", func() (*EncodedCall, error) {
			return s.EncodeBalanceOf(chain.NibiruMainnet, TokenPrincipal, ownerAddress)
		}, stakeerr.ErrNotSupported},
		{"native approve", func() (*EncodedCall, error) {
			return s.EncodeApprove(chain.NibiruMainnet, TokenPrincipal, ownerAddress, "1")
		}, stakeerr.ErrNotSupported},
		{"unknown token", func() (*EncodedCall, error) {
			return s.EncodeAllowance(chain.NibiruMainnet, Token("gov"), ownerAddress, ownerAddress)
		}, stakeerr.ErrInvalidInput},
		{"unsupported chain", func() (*EncodedCall, error) {
			return s.EncodeTransfer(chain.ID(1), TokenReceipt, ownerAddress, "1")
		}, stakeerr.ErrUnsupportedChain},
		{"bad owner", func() (*EncodedCall, error) {
			return s.EncodeBalanceOf(chain.NibiruMainnet, TokenReceipt, "0x1234")
		}, stakeerr.ErrInvalidAddress},
		{"bad recipient", func() (*EncodedCall, error) {
			return s.EncodeTransfer(chain.NibiruMainnet, TokenReceipt, "not-an-address", "1")
		}, stakeerr.ErrInvalidAddress},
		{"zero transfer", func() (*EncodedCall, error) {
			return s.EncodeTransfer(chain.NibiruMainnet, TokenReceipt, ownerAddress, "0")
		}, stakeerr.ErrNonPositiveAmount},
		{"approve excess precision", func() (*EncodedCall, error) {
			return s.EncodeApprove(localChain, TokenPrincipal, ownerAddress, "0.0000001")
		}, stakeerr.ErrTooManyDecimals},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			call, err := tc.encode()
			require.Error(t, err)
			assert.Nil(t, call)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestEncode_LogsOneDebugLine(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	s := newTestService(t, WithLogger(zap.New(core)))

	_, err := s.EncodeStake(chain.NibiruMainnet, "420")
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "encoded call", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, eth.MethodLiquidStake, fields["method"])
	assert.Equal(t, uint64(6900), fields["chain_id"])
	assert.Equal(t, "420000000000000000000", fields["value"])

	// Rejected input is returned, not logged.
	_, err = s.EncodeStake(chain.NibiruMainnet, "-1")
	require.Error(t, err)
	assert.Equal(t, 1, logs.Len())
}
