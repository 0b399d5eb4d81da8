package cli

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode view call results",
	Long:  `Decode the hex result of an eth_call made with an encoded view call.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runGroup,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var decodeExchangeRateCmd = &cobra.Command{
	Use:   "exchange-rate <result>",
	Short: "Decode a getExchangeRate() result",
	Long: `Decode the 32-byte getExchangeRate() result into the exact number of
principal tokens per receipt token.`,
	Example: `  stakeflow decode exchange-rate 0x0000000000000000000000000000000000000000000000000e92596fd6290000`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDecodeExchangeRate,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.GroupID = "calls"
	decodeCmd.AddCommand(decodeExchangeRateCmd)
}

type rateResult struct {
	ChainID uint64 `json:"chain_id"`
	Rate    string `json:"rate"`
}

func (r rateResult) Text() string { return r.Rate }

func runDecodeExchangeRate(_ *cobra.Command, args []string) error {
	id, err := selectedChain()
	if err != nil {
		return err
	}

	data, err := hexutil.Decode(args[0])
	if err != nil {
		return stakeerr.WithDetails(stakeerr.ErrInvalidInput, map[string]string{
			"result": args[0],
			"reason": err.Error(),
		})
	}

	rate, err := service.ExchangeRate(id, data)
	if err != nil {
		return err
	}
	return formatter.Print(rateResult{ChainID: uint64(id), Rate: rate})
}
