package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeflow/internal/chain/eth"
	"github.com/mrz1836/stakeflow/internal/validate"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Check EVM addresses",
	Long:  `Inspect EVM addresses and their EIP-55 mixed-case checksum.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runGroup,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressCheckCmd = &cobra.Command{
	Use:   "check <address>",
	Short: "Verify an address and its EIP-55 checksum",
	Long: `Check that an address is 0x followed by 40 hex digits and that its letter
casing matches the EIP-55 checksum. The checksummed form is always printed.
A failing address exits with status 2.`,
	Example: `  stakeflow address check 0x38039867f99B18bf2b14C592A5cb4791403C2C12
  stakeflow address check 0x38039867f99b18bf2b14c592a5cb4791403c2c12 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runAddressCheck,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(addressCmd)
	addressCmd.GroupID = "amounts"
	addressCmd.AddCommand(addressCheckCmd)
}

type addressResult struct {
	Address     string `json:"address"`
	Valid       bool   `json:"valid"`
	Checksummed bool   `json:"checksummed"`
	Checksum    string `json:"checksum,omitempty"`
}

func runAddressCheck(_ *cobra.Command, args []string) error {
	addr := args[0]
	result := addressResult{
		Address:     addr,
		Valid:       eth.IsValidAddress(addr),
		Checksummed: eth.IsChecksummedAddress(addr),
	}
	if result.Valid {
		result.Checksum = eth.ToChecksumAddress(addr)
	}

	if formatter.IsJSON() {
		if err := formatter.Print(result); err != nil {
			return err
		}
	} else if result.Checksum != "" {
		out(formatter.Writer(), "checksum: %s\n", result.Checksum)
	}

	if f := validate.CheckAddress(addr); f != nil {
		return validationError(f, addr)
	}
	if formatter.IsJSON() {
		return nil
	}
	return formatter.Status(true, "valid checksummed address")
}
