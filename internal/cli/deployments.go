package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeflow/internal/config"
	"github.com/mrz1836/stakeflow/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var deploymentsCmd = &cobra.Command{
	Use:   "deployments",
	Short: "List configured staking deployments",
	Long: `List every chain with a configured liquid-staking deployment: the staking
contract, the principal and receipt tokens, and whether stakes carry native value.`,
	Example: `  stakeflow deployments
  stakeflow deployments -o json`,
	Args: cobra.NoArgs,
	RunE: runDeployments,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(deploymentsCmd)
	deploymentsCmd.GroupID = "config"
}

type deploymentJSON struct {
	ChainID         uint64             `json:"chain_id"`
	Name            string             `json:"name"`
	Default         bool               `json:"default"`
	StakingContract string             `json:"staking_contract"`
	NativeValue     bool               `json:"native_value"`
	Principal       config.TokenConfig `json:"principal"`
	Receipt         config.TokenConfig `json:"receipt"`
}

func runDeployments(_ *cobra.Command, _ []string) error {
	defaultID := cfg.DefaultChain()
	deployments := registry.Deployments()

	if formatter.IsJSON() {
		list := make([]deploymentJSON, 0, len(deployments))
		for _, d := range deployments {
			list = append(list, deploymentJSON{
				ChainID:         d.ChainID,
				Name:            d.Name,
				Default:         d.ID() == defaultID,
				StakingContract: d.StakingContract,
				NativeValue:     d.NativeValue,
				Principal:       d.Principal,
				Receipt:         d.Receipt,
			})
		}
		return formatter.Print(list)
	}

	table := output.NewTable("CHAIN", "NAME", "STAKING CONTRACT", "PRINCIPAL", "RECEIPT", "NATIVE")
	for _, d := range deployments {
		chainCell := d.ID().String()
		if d.ID() == defaultID {
			chainCell += "*"
		}
		table.AddRow(
			chainCell,
			d.Name,
			d.StakingContract,
			tokenCell(d.Principal),
			tokenCell(d.Receipt),
			strconv.FormatBool(d.NativeValue),
		)
	}
	return table.Render(formatter.Writer())
}

func tokenCell(t config.TokenConfig) string {
	return t.Symbol + " (" + strconv.Itoa(t.Decimals) + ")"
}
