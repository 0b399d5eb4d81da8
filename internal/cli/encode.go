package cli

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/chain/eth"
	"github.com/mrz1836/stakeflow/internal/service/staking"
)

// encodeCmd is the parent command for contract call encoding.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode staking and token contract calls",
	Long: `Build contract calls for an external wallet to sign and submit. Each call
is printed as a target address, a native value in base units, and ABI-encoded
call data. Nothing is sent to the network.

Amounts are decimal strings in token units and are converted exactly.`,
	Args: cobra.ArbitraryArgs,
	RunE: runGroup,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeStakeCmd = &cobra.Command{
	Use:   "stake <amount>",
	Short: "Encode liquidStake(uint256) for a principal amount",
	Long: `Encode a liquid stake of the principal token. When the deployment stakes the
native asset, the amount is also attached as the call value.`,
	Example: `  stakeflow encode stake 420
  stakeflow encode stake 1.5 --chain nibiru-testnet -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return printCall(eth.MethodLiquidStake, func(id chain.ID) (*staking.EncodedCall, error) {
			return service.EncodeStake(id, args[0])
		})
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeUnstakeCmd = &cobra.Command{
	Use:   "unstake <amount>",
	Short: "Encode unstake(uint256) for a receipt token amount",
	Long:  `Encode an unstake request for an amount of the receipt token.`,
	Example: `  stakeflow encode unstake 100
  stakeflow encode unstake 0.5 --chain 6911`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return printCall(eth.MethodUnstake, func(id chain.ID) (*staking.EncodedCall, error) {
			return service.EncodeUnstake(id, args[0])
		})
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeRedeemCmd = &cobra.Command{
	Use:     "redeem",
	Short:   "Encode redeem() to claim matured unstake requests",
	Long:    `Encode the call that claims principal from unstake requests that have matured.`,
	Example: `  stakeflow encode redeem`,
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return printCall(eth.MethodRedeem, service.EncodeRedeem)
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeExchangeRateCmd = &cobra.Command{
	Use:   "exchange-rate",
	Short: "Encode the getExchangeRate() view call",
	Long: `Encode the view call returning principal per receipt token scaled by 10^18.
Decode the eth_call result with "stakeflow decode exchange-rate".`,
	Example: `  stakeflow encode exchange-rate -o json`,
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return printCall(eth.MethodGetExchangeRate, service.EncodeExchangeRate)
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeBalanceCmd = &cobra.Command{
	Use:   "balance <owner>",
	Short: "Encode balanceOf(address) on a token contract",
	Long: `Encode the ERC-20 balance query for owner. The native principal has no
token contract and is rejected.`,
	Example: `  stakeflow encode balance 0x1234567890123456789012345678901234567890
  stakeflow encode balance 0x1234567890123456789012345678901234567890 --token principal`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return printTokenCall(eth.MethodBalanceOf, func(id chain.ID, token staking.Token) (*staking.EncodedCall, error) {
			return service.EncodeBalanceOf(id, token, args[0])
		})
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeAllowanceCmd = &cobra.Command{
	Use:   "allowance <owner> [spender]",
	Short: "Encode allowance(address,address) on a token contract",
	Long:  `Encode the ERC-20 allowance query. The spender defaults to the staking contract.`,
	Example: `  stakeflow encode allowance 0x1234567890123456789012345678901234567890 --token receipt
  stakeflow encode allowance 0x1234567890123456789012345678901234567890 0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		return printTokenCall(eth.MethodAllowance, func(id chain.ID, token staking.Token) (*staking.EncodedCall, error) {
			spender, err := spenderOrStaking(id, args[1:])
			if err != nil {
				return nil, err
			}
			return service.EncodeAllowance(id, token, args[0], spender)
		})
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeApproveCmd = &cobra.Command{
	Use:   "approve <amount> [spender]",
	Short: "Encode approve(address,uint256) on a token contract",
	Long:  `Encode an ERC-20 approval of amount token units. The spender defaults to the staking contract.`,
	Example: `  stakeflow encode approve 100 --token receipt
  stakeflow encode approve 100 0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2 --token receipt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		return printTokenCall(eth.MethodApprove, func(id chain.ID, token staking.Token) (*staking.EncodedCall, error) {
			spender, err := spenderOrStaking(id, args[1:])
			if err != nil {
				return nil, err
			}
			return service.EncodeApprove(id, token, spender, args[0])
		})
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeTransferCmd = &cobra.Command{
	Use:     "transfer <recipient> <amount>",
	Short:   "Encode transfer(address,uint256) on a token contract",
	Long:    `Encode an ERC-20 transfer of amount token units to recipient.`,
	Example: `  stakeflow encode transfer 0x1234567890123456789012345678901234567890 2.5`,
	Args:    cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return printTokenCall(eth.MethodTransfer, func(id chain.ID, token staking.Token) (*staking.EncodedCall, error) {
			return service.EncodeTransfer(id, token, args[0], args[1])
		})
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var encodeToken string

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.GroupID = "calls"
	encodeCmd.AddCommand(
		encodeStakeCmd, encodeUnstakeCmd, encodeRedeemCmd, encodeExchangeRateCmd,
		encodeBalanceCmd, encodeAllowanceCmd, encodeApproveCmd, encodeTransferCmd,
	)

	for _, cmd := range []*cobra.Command{encodeBalanceCmd, encodeAllowanceCmd, encodeApproveCmd, encodeTransferCmd} {
		cmd.Flags().StringVarP(&encodeToken, "token", "t", string(staking.TokenReceipt), "token contract: principal or receipt")
	}
}

// callResult is an encoded call with the context it was built for.
type callResult struct {
	ChainID  uint64 `json:"chain_id"`
	Method   string `json:"method"`
	Selector string `json:"selector"`
	staking.EncodedCall
}

func (r callResult) Text() string {
	var sb strings.Builder
	sb.WriteString("chain:  " + chain.ID(r.ChainID).String() + "\n")
	sb.WriteString("method: " + r.Method + " (" + r.Selector + ")\n")
	sb.WriteString("to:     " + r.To + "\n")
	sb.WriteString("value:  " + r.Value + "\n")
	sb.WriteString("data:   " + r.Data.String())
	return sb.String()
}

func printCall(method string, encode func(chain.ID) (*staking.EncodedCall, error)) error {
	id, err := selectedChain()
	if err != nil {
		return err
	}
	call, err := encode(id)
	if err != nil {
		return err
	}

	result := callResult{ChainID: uint64(id), Method: method, EncodedCall: *call}
	if sel, ok := eth.Selector(method); ok {
		result.Selector = hexutil.Encode(sel)
	}
	return formatter.Print(result)
}

func printTokenCall(method string, encode func(chain.ID, staking.Token) (*staking.EncodedCall, error)) error {
	token, err := staking.ParseToken(encodeToken)
	if err != nil {
		return err
	}
	return printCall(method, func(id chain.ID) (*staking.EncodedCall, error) {
		return encode(id, token)
	})
}

// spenderOrStaking returns the explicit spender or the chain's staking contract.
func spenderOrStaking(id chain.ID, rest []string) (string, error) {
	if len(rest) > 0 {
		return rest[0], nil
	}
	d, err := service.Deployment(id)
	if err != nil {
		return "", err
	}
	return d.StakingContract, nil
}
