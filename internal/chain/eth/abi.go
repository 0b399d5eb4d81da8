package eth

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Method names as they appear in the contract ABIs.
const (
	MethodLiquidStake     = "liquidStake"
	MethodUnstake         = "unstake"
	MethodRedeem          = "redeem"
	MethodGetExchangeRate = "getExchangeRate"

	MethodBalanceOf = "balanceOf"
	MethodAllowance = "allowance"
	MethodApprove   = "approve"
	MethodTransfer  = "transfer"
)

// stakingABIJSON is the subset of the liquid-staking vault interface the
// pipeline encodes calls for.
const stakingABIJSON = `[
	{"type":"function","name":"liquidStake","stateMutability":"payable",
	 "inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"unstake","stateMutability":"nonpayable",
	 "inputs":[{"name":"stAmount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"redeem","stateMutability":"nonpayable",
	 "inputs":[],"outputs":[]},
	{"type":"function","name":"getExchangeRate","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const erc20ABIJSON = `[
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"allowance","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable",
	 "inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`

//nolint:gochecknoglobals // Parsed once, read-only afterwards
var (
	stakingABI = mustParseABI("staking", stakingABIJSON)
	erc20ABI   = mustParseABI("erc20", erc20ABIJSON)
)

func mustParseABI(name, raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("eth: parse %s ABI: %v", name, err))
	}
	return parsed
}

// Selector returns the 4-byte selector of a staking or ERC-20 method.
func Selector(method string) ([]byte, bool) {
	if m, ok := stakingABI.Methods[method]; ok {
		return m.ID, true
	}
	if m, ok := erc20ABI.Methods[method]; ok {
		return m.ID, true
	}
	return nil, false
}
