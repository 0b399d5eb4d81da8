package staking

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/chain/eth"
	"github.com/mrz1836/stakeflow/internal/config"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

const zeroValue = "0"

// EncodeStake builds the liquidStake call for amount, a decimal string in
// principal units. When the deployment stakes the native asset the same
// base-unit amount is attached as the call value.
func (s *Service) EncodeStake(chainID chain.ID, amount string) (*EncodedCall, error) {
	d, err := s.deployments.Lookup(chainID)
	if err != nil {
		return nil, err
	}

	v, err := positiveBaseUnits(amount, d.Principal.Decimals)
	if err != nil {
		return nil, err
	}

	data, err := eth.PackLiquidStake(v)
	if err != nil {
		return nil, err
	}

	value := zeroValue
	if d.NativeValue {
		value = v.String()
	}
	return s.encoded(chainID, eth.MethodLiquidStake, d.StakingContract, value, data), nil
}

// EncodeUnstake builds the unstake call for stAmount, a decimal string in
// receipt token units.
func (s *Service) EncodeUnstake(chainID chain.ID, stAmount string) (*EncodedCall, error) {
	d, err := s.deployments.Lookup(chainID)
	if err != nil {
		return nil, err
	}

	v, err := positiveBaseUnits(stAmount, d.Receipt.Decimals)
	if err != nil {
		return nil, err
	}

	data, err := eth.PackUnstake(v)
	if err != nil {
		return nil, err
	}
	return s.encoded(chainID, eth.MethodUnstake, d.StakingContract, zeroValue, data), nil
}

// EncodeRedeem builds the redeem call that claims matured unstake requests.
func (s *Service) EncodeRedeem(chainID chain.ID) (*EncodedCall, error) {
	d, err := s.deployments.Lookup(chainID)
	if err != nil {
		return nil, err
	}

	data, err := eth.PackRedeem()
	if err != nil {
		return nil, err
	}
	return s.encoded(chainID, eth.MethodRedeem, d.StakingContract, zeroValue, data), nil
}

// EncodeExchangeRate builds the getExchangeRate view call.
func (s *Service) EncodeExchangeRate(chainID chain.ID) (*EncodedCall, error) {
	d, err := s.deployments.Lookup(chainID)
	if err != nil {
		return nil, err
	}

	data, err := eth.PackExchangeRate()
	if err != nil {
		return nil, err
	}
	return s.encoded(chainID, eth.MethodGetExchangeRate, d.StakingContract, zeroValue, data), nil
}

// EncodeBalanceOf builds the balanceOf view call on the token contract.
func (s *Service) EncodeBalanceOf(chainID chain.ID, token Token, owner string) (*EncodedCall, error) {
	t, err := s.erc20(chainID, token)
	if err != nil {
		return nil, err
	}

	data, err := eth.PackBalanceOf(owner)
	if err != nil {
		return nil, err
	}
	return s.encoded(chainID, eth.MethodBalanceOf, t.Address, zeroValue, data), nil
}

// EncodeAllowance builds the allowance view call on the token contract.
func (s *Service) EncodeAllowance(chainID chain.ID, token Token, owner, spender string) (*EncodedCall, error) {
	t, err := s.erc20(chainID, token)
	if err != nil {
		return nil, err
	}

	data, err := eth.PackAllowance(owner, spender)
	if err != nil {
		return nil, err
	}
	return s.encoded(chainID, eth.MethodAllowance, t.Address, zeroValue, data), nil
}

// EncodeApprove builds an approve call granting spender amount token units.
func (s *Service) EncodeApprove(chainID chain.ID, token Token, spender, amount string) (*EncodedCall, error) {
	t, err := s.erc20(chainID, token)
	if err != nil {
		return nil, err
	}

	v, err := positiveBaseUnits(amount, t.Decimals)
	if err != nil {
		return nil, err
	}

	data, err := eth.PackApprove(spender, v)
	if err != nil {
		return nil, err
	}
	return s.encoded(chainID, eth.MethodApprove, t.Address, zeroValue, data), nil
}

// EncodeTransfer builds a transfer call sending amount token units to recipient.
func (s *Service) EncodeTransfer(chainID chain.ID, token Token, recipient, amount string) (*EncodedCall, error) {
	t, err := s.erc20(chainID, token)
	if err != nil {
		return nil, err
	}

	v, err := positiveBaseUnits(amount, t.Decimals)
	if err != nil {
		return nil, err
	}

	data, err := eth.PackTransfer(recipient, v)
	if err != nil {
		return nil, err
	}
	return s.encoded(chainID, eth.MethodTransfer, t.Address, zeroValue, data), nil
}

// erc20 resolves a token that has a contract. The native principal has none.
func (s *Service) erc20(chainID chain.ID, token Token) (config.TokenConfig, error) {
	_, t, err := s.token(chainID, token)
	if err != nil {
		return config.TokenConfig{}, err
	}
	if t.IsNative() {
		return config.TokenConfig{}, stakeerr.WithSuggestion(
			stakeerr.WithDetails(stakeerr.ErrNotSupported, map[string]string{
				"token":  t.Symbol,
				"reason": "native asset has no token contract",
			}),
			"use the native balance of the account instead",
		)
	}
	return t, nil
}

func (s *Service) encoded(chainID chain.ID, method, to, value string, data []byte) *EncodedCall {
	s.logger.Debug("encoded call",
		zap.Uint64("chain_id", uint64(chainID)),
		zap.String("method", method),
		zap.String("to", to),
		zap.String("value", value),
		zap.Int("data_len", len(data)),
	)
	return &EncodedCall{To: to, Value: value, Data: data}
}

// positiveBaseUnits converts a decimal amount exactly and rejects zero and
// negative results.
func positiveBaseUnits(amount string, decimals int) (*big.Int, error) {
	v, err := chain.ToBaseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}
	if v.Sign() <= 0 {
		return nil, stakeerr.WithDetails(stakeerr.ErrNonPositiveAmount, map[string]string{
			"amount": amount,
		})
	}
	return v, nil
}
