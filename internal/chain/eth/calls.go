package eth

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/holiman/uint256"

	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// PackLiquidStake encodes liquidStake(uint256).
func PackLiquidStake(amount *big.Int) ([]byte, error) {
	if err := checkUint256(amount); err != nil {
		return nil, err
	}
	return pack(stakingABI, MethodLiquidStake, amount)
}

// PackUnstake encodes unstake(uint256). The amount is in receipt token base units.
func PackUnstake(stAmount *big.Int) ([]byte, error) {
	if err := checkUint256(stAmount); err != nil {
		return nil, err
	}
	return pack(stakingABI, MethodUnstake, stAmount)
}

// PackRedeem encodes redeem().
func PackRedeem() ([]byte, error) {
	return pack(stakingABI, MethodRedeem)
}

// PackExchangeRate encodes the getExchangeRate() view call.
func PackExchangeRate() ([]byte, error) {
	return pack(stakingABI, MethodGetExchangeRate)
}

// PackBalanceOf encodes balanceOf(address).
func PackBalanceOf(owner string) ([]byte, error) {
	ownerAddr, err := ParseAddress(owner)
	if err != nil {
		return nil, err
	}
	return pack(erc20ABI, MethodBalanceOf, ownerAddr)
}

// PackAllowance encodes allowance(address,address).
func PackAllowance(owner, spender string) ([]byte, error) {
	ownerAddr, err := ParseAddress(owner)
	if err != nil {
		return nil, err
	}
	spenderAddr, err := ParseAddress(spender)
	if err != nil {
		return nil, err
	}
	return pack(erc20ABI, MethodAllowance, ownerAddr, spenderAddr)
}

// PackApprove encodes approve(address,uint256).
func PackApprove(spender string, amount *big.Int) ([]byte, error) {
	spenderAddr, err := ParseAddress(spender)
	if err != nil {
		return nil, err
	}
	if err = checkUint256(amount); err != nil {
		return nil, err
	}
	return pack(erc20ABI, MethodApprove, spenderAddr, amount)
}

// PackTransfer encodes transfer(address,uint256).
func PackTransfer(recipient string, amount *big.Int) ([]byte, error) {
	recipientAddr, err := ParseAddress(recipient)
	if err != nil {
		return nil, err
	}
	if err = checkUint256(amount); err != nil {
		return nil, err
	}
	return pack(erc20ABI, MethodTransfer, recipientAddr, amount)
}

// UnpackUint256 decodes the single uint256 returned by a view call such as
// balanceOf or getExchangeRate.
func UnpackUint256(method string, data []byte) (*big.Int, error) {
	contract := erc20ABI
	if _, ok := stakingABI.Methods[method]; ok {
		contract = stakingABI
	}

	out, err := contract.Unpack(method, data)
	if err != nil {
		return nil, stakeerr.Wrap(stakeerr.ErrEncodingFailed, "unpack %s: %v", method, err)
	}
	if len(out) != 1 {
		return nil, stakeerr.WithDetails(stakeerr.ErrEncodingFailed, map[string]string{
			"method": method,
		})
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, stakeerr.WithDetails(stakeerr.ErrEncodingFailed, map[string]string{
			"method": method,
		})
	}
	return v, nil
}

// checkUint256 rejects values that cannot be represented as a uint256
// argument. Whether zero is allowed is the caller's decision.
func checkUint256(v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return stakeerr.WithDetails(stakeerr.ErrInvalidAmount, map[string]string{
			"amount": bigString(v),
		})
	}
	if _, overflow := uint256.FromBig(v); overflow {
		return stakeerr.WithDetails(stakeerr.ErrAmountOverflow, map[string]string{
			"amount": v.String(),
		})
	}
	return nil
}

func pack(contract abi.ABI, method string, args ...any) ([]byte, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, stakeerr.Wrap(stakeerr.ErrEncodingFailed, "pack %s: %v", method, err)
	}
	return data, nil
}

func bigString(v *big.Int) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}
