package staking

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/chain/eth"
	"github.com/mrz1836/stakeflow/internal/config"
	"github.com/mrz1836/stakeflow/internal/validate"
)

// ExchangeRateDecimals is the fixed-point scale of getExchangeRate:
// principal per receipt token, scaled by 10^18.
const ExchangeRateDecimals = 18

// ValidateStake checks a typed stake amount against the principal token
// rules and the spendable balance (base units, decimal or 0x hex). An
// empty or malformed balance leaves the amount unbounded.
//
// The returned error is only for deployment lookup; a rejected amount is
// reported through the Failure.
func (s *Service) ValidateStake(chainID chain.ID, input, balance string) (*validate.Failure, error) {
	return s.validateAmount(chainID, TokenPrincipal, input, balance)
}

// ValidateUnstake is ValidateStake for the receipt token.
func (s *Service) ValidateUnstake(chainID chain.ID, input, balance string) (*validate.Failure, error) {
	return s.validateAmount(chainID, TokenReceipt, input, balance)
}

func (s *Service) validateAmount(chainID chain.ID, token Token, input, balance string) (*validate.Failure, error) {
	_, t, err := s.token(chainID, token)
	if err != nil {
		return nil, err
	}

	return validate.Amount(input, Rules(t, s.ceiling(balance))), nil
}

// Rules derives the amount rules for a token with an optional ceiling.
func Rules(t config.TokenConfig, ceiling *big.Int) validate.AmountRules {
	return validate.AmountRules{
		Decimals:       t.Decimals,
		MinGranularity: t.Granularity(),
		Max:            ceiling,
	}
}

func (s *Service) ceiling(balance string) *big.Int {
	if balance == "" {
		return nil
	}
	v, err := chain.ParseBaseUnits(balance)
	if err != nil {
		s.logger.Warn("ignoring malformed balance ceiling", zap.String("balance", balance), zap.Error(err))
		return nil
	}
	return v
}

// FormatBalance renders a base-unit balance of token for display, such as
// "1,234.56" or "767.343M". A conversion failure is logged and yields "".
func (s *Service) FormatBalance(chainID chain.ID, token Token, baseUnits string) (string, error) {
	_, t, err := s.token(chainID, token)
	if err != nil {
		return "", err
	}

	human, convErr := chain.FormatUnits(baseUnits, t.Decimals)
	if convErr != nil {
		s.logger.Warn("cannot format balance",
			zap.Uint64("chain_id", uint64(chainID)),
			zap.String("token", t.Symbol),
			zap.String("value", baseUnits),
			zap.Error(convErr),
		)
		return "", nil
	}
	return s.formatter.FormatAmount(human), nil
}

// MaxAmount returns the exact decimal string of a base-unit balance, the
// value a "Max" control puts in the amount field. A malformed balance
// yields "".
func (s *Service) MaxAmount(chainID chain.ID, token Token, baseUnits string) (string, error) {
	_, t, err := s.token(chainID, token)
	if err != nil {
		return "", err
	}
	return chain.FromBaseUnits(baseUnits, t.Decimals), nil
}

// ExchangeRate decodes a getExchangeRate result into an exact decimal
// string of principal per receipt token.
func (s *Service) ExchangeRate(chainID chain.ID, result []byte) (string, error) {
	if _, err := s.deployments.Lookup(chainID); err != nil {
		return "", err
	}

	rate, err := eth.UnpackUint256(eth.MethodGetExchangeRate, result)
	if err != nil {
		return "", err
	}
	return chain.FormatBaseUnits(rate, ExchangeRateDecimals), nil
}
