package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/service/staking"
	"github.com/mrz1836/stakeflow/internal/validate"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// amountCmd is the parent command for amount operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var amountCmd = &cobra.Command{
	Use:   "amount",
	Short: "Normalize, validate, convert and format amounts",
	Long: `Work with token amounts the way a staking form does: clean up typed input,
check it against the token rules, convert exactly between decimal and base
units, and render balances for display.

Token rules (decimals and minimum granularity) come from the deployment of the
selected chain.`,
	Args: cobra.ArbitraryArgs,
	RunE: runGroup,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var amountNormalizeCmd = &cobra.Command{
	Use:   "normalize <input>",
	Short: "Clean up typed amount input",
	Long: `Normalize free-form input into a decimal string: commas become a dot, only
the first separator is kept, other characters and leading zeros are dropped.`,
	Example: `  stakeflow amount normalize "1,5"
  stakeflow amount normalize " 007.50 "`,
	Args: cobra.ExactArgs(1),
	RunE: runAmountNormalize,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var amountValidateCmd = &cobra.Command{
	Use:   "validate <amount>",
	Short: "Check an amount against the token rules",
	Long: `Validate a typed amount against the rules of the principal (stake) or
receipt (unstake) token: number format, positivity, minimum granularity, the
optional balance ceiling, and decimal places. The first failing rule is
reported and the command exits with status 2.`,
	Example: `  stakeflow amount validate 420
  stakeflow amount validate 300 --balance 200000000000000000000
  stakeflow amount validate 1.5 --token receipt --chain nibiru-testnet`,
	Args: cobra.ExactArgs(1),
	RunE: runAmountValidate,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var amountToUnitsCmd = &cobra.Command{
	Use:   "to-units <amount>",
	Short: "Convert a decimal amount to base units",
	Long: `Convert a decimal amount to integer base units exactly. Fractional digits
beyond the token decimals are rejected unless they are zeros.`,
	Example: `  stakeflow amount to-units 1.5
  stakeflow amount to-units 2.25 --decimals 6`,
	Args: cobra.ExactArgs(1),
	RunE: runAmountToUnits,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var amountFromUnitsCmd = &cobra.Command{
	Use:   "from-units <base-units>",
	Short: "Convert base units to a decimal amount",
	Long: `Convert integer base units (decimal or 0x hex) to the exact decimal amount.
Text output also shows the value shortened to display.truncate_length.`,
	Example: `  stakeflow amount from-units 1500000000000000000
  stakeflow amount from-units 0x14d1120d7b160000 --token receipt`,
	Args: cobra.ExactArgs(1),
	RunE: runAmountFromUnits,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var amountFormatCmd = &cobra.Command{
	Use:   "format <amount>",
	Short: "Format an amount for display",
	Long: `Render an amount with magnitude-dependent precision, locale grouping and
compact suffixes (K, M, B, T). With --base-units the input is converted using
the token decimals first.`,
	Example: `  stakeflow amount format 767343000
  stakeflow amount format 1234.56789 --precision 2
  stakeflow amount format 1500000000000000000 --base-units`,
	Args: cobra.ExactArgs(1),
	RunE: runAmountFormat,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	amountToken     string
	amountDecimals  int
	amountBalance   string
	amountNormalize bool
	amountPrecision int
	amountBaseUnits bool
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(amountCmd)
	amountCmd.GroupID = "amounts"
	amountCmd.AddCommand(amountNormalizeCmd, amountValidateCmd, amountToUnitsCmd, amountFromUnitsCmd, amountFormatCmd)

	for _, cmd := range []*cobra.Command{amountValidateCmd, amountToUnitsCmd, amountFromUnitsCmd, amountFormatCmd} {
		cmd.Flags().StringVarP(&amountToken, "token", "t", string(staking.TokenPrincipal), "token rules to apply: principal or receipt")
	}
	for _, cmd := range []*cobra.Command{amountToUnitsCmd, amountFromUnitsCmd, amountFormatCmd} {
		cmd.Flags().IntVar(&amountDecimals, "decimals", -1, "override the token decimals")
	}

	amountValidateCmd.Flags().StringVar(&amountBalance, "balance", "", "spendable balance in base units (decimal or 0x hex)")
	amountValidateCmd.Flags().BoolVar(&amountNormalize, "normalize", false, "normalize the input before validating")
	amountFormatCmd.Flags().IntVar(&amountPrecision, "precision", -1, "fixed fraction digits (default: by magnitude)")
	amountFormatCmd.Flags().BoolVar(&amountBaseUnits, "base-units", false, "treat the input as base units")
}

type normalizeResult struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
}

func (r normalizeResult) Text() string { return r.Normalized }

type validateResult struct {
	Amount string `json:"amount"`
	Token  string `json:"token"`
	Valid  bool   `json:"valid"`
}

type unitsResult struct {
	Amount    string `json:"amount"`
	BaseUnits string `json:"base_units"`
	Decimals  int    `json:"decimals"`
	Display   string `json:"display,omitempty"`
}

type formatResult struct {
	Input     string `json:"input"`
	Formatted string `json:"formatted"`
	Locale    string `json:"locale"`
}

func (r formatResult) Text() string { return r.Formatted }

func runAmountNormalize(_ *cobra.Command, args []string) error {
	return formatter.Print(normalizeResult{
		Input:      args[0],
		Normalized: chain.NormalizeDecimalInput(args[0]),
	})
}

func runAmountValidate(_ *cobra.Command, args []string) error {
	id, err := selectedChain()
	if err != nil {
		return err
	}
	token, err := staking.ParseToken(amountToken)
	if err != nil {
		return err
	}

	input := args[0]
	if amountNormalize {
		input = chain.NormalizeDecimalInput(input)
	}

	var f *validate.Failure
	if token == staking.TokenReceipt {
		f, err = service.ValidateUnstake(id, input, amountBalance)
	} else {
		f, err = service.ValidateStake(id, input, amountBalance)
	}
	if err != nil {
		return err
	}
	if f != nil {
		return validationError(f, input)
	}

	if formatter.IsJSON() {
		return formatter.Print(validateResult{Amount: input, Token: string(token), Valid: true})
	}
	return formatter.Status(true, fmt.Sprintf("%s is a valid %s amount", input, token))
}

func runAmountToUnits(_ *cobra.Command, args []string) error {
	decimals, err := resolveDecimals()
	if err != nil {
		return err
	}

	v, err := chain.ToBaseUnits(args[0], decimals)
	if err != nil {
		return err
	}

	result := unitsResult{Amount: args[0], BaseUnits: v.String(), Decimals: decimals}
	if formatter.IsJSON() {
		return formatter.Print(result)
	}
	return formatter.Println(result.BaseUnits)
}

func runAmountFromUnits(_ *cobra.Command, args []string) error {
	human, decimals, err := fromUnits(args[0])
	if err != nil {
		return err
	}

	result := unitsResult{
		Amount:    human,
		BaseUnits: args[0],
		Decimals:  decimals,
		Display:   chain.TruncateDecimal(human, cfg.Display.TruncateLength),
	}
	if formatter.IsJSON() {
		return formatter.Print(result)
	}
	if result.Display != human {
		return formatter.Printf("%s (%s)\n", human, result.Display)
	}
	return formatter.Println(human)
}

// fromUnits converts base units with --decimals when given, otherwise with
// the token of the selected chain through the staking service.
func fromUnits(value string) (string, int, error) {
	if amountDecimals >= 0 {
		human, err := chain.FormatUnits(value, amountDecimals)
		return human, amountDecimals, err
	}

	id, token, err := selectedToken()
	if err != nil {
		return "", 0, err
	}
	decimals, err := tokenDecimals(id, token)
	if err != nil {
		return "", 0, err
	}
	human, err := service.MaxAmount(id, token, value)
	if err != nil {
		return "", 0, err
	}
	if human == "" {
		return "", 0, invalidAmount(value)
	}
	return human, decimals, nil
}

func runAmountFormat(_ *cobra.Command, args []string) error {
	formatted, err := formatAmount(args[0])
	if err != nil {
		return err
	}
	if formatted == "" {
		return invalidAmount(args[0])
	}

	return formatter.Print(formatResult{
		Input:     args[0],
		Formatted: formatted,
		Locale:    amounts.Locale().String(),
	})
}

func formatAmount(input string) (string, error) {
	switch {
	case !amountBaseUnits && amountPrecision >= 0:
		return amounts.FormatAmountPrecision(input, amountPrecision), nil
	case !amountBaseUnits:
		return amounts.FormatAmount(input), nil
	case amountPrecision >= 0:
		human, _, err := fromUnits(input)
		if err != nil {
			return "", err
		}
		return amounts.FormatAmountPrecision(human, amountPrecision), nil
	case amountDecimals >= 0:
		return amounts.FormatVisualAmount(input, amountDecimals), nil
	default:
		id, token, err := selectedToken()
		if err != nil {
			return "", err
		}
		return service.FormatBalance(id, token, input)
	}
}

func invalidAmount(amount string) error {
	return stakeerr.WithDetails(stakeerr.ErrInvalidAmount, map[string]string{"amount": amount})
}

// selectedToken resolves --chain and --token.
func selectedToken() (chain.ID, staking.Token, error) {
	id, err := selectedChain()
	if err != nil {
		return 0, "", err
	}
	token, err := staking.ParseToken(amountToken)
	if err != nil {
		return 0, "", err
	}
	return id, token, nil
}

// resolveDecimals returns --decimals when given, otherwise the decimals of
// --token on the selected chain.
func resolveDecimals() (int, error) {
	if amountDecimals >= 0 {
		return amountDecimals, nil
	}
	id, token, err := selectedToken()
	if err != nil {
		return 0, err
	}
	return tokenDecimals(id, token)
}

func tokenDecimals(id chain.ID, token staking.Token) (int, error) {
	d, err := service.Deployment(id)
	if err != nil {
		return 0, err
	}
	if token == staking.TokenReceipt {
		return d.Receipt.Decimals, nil
	}
	return d.Principal.Decimals, nil
}

// validationError turns a rule failure into an exit-status error whose
// message is the user-facing rule text.
func validationError(f *validate.Failure, input string) error {
	return &stakeerr.StakeError{
		Code:    stakeerr.ErrValidationFailed.Code,
		Message: f.Message,
		Details: map[string]string{
			"rule":  string(f.Rule),
			"input": input,
		},
		ExitCode: stakeerr.ErrValidationFailed.ExitCode,
	}
}
