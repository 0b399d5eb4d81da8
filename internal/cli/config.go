package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/config"
	"github.com/mrz1836/stakeflow/internal/output"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify stakeflow configuration settings.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runGroup,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.stakeflow/config.yaml with the
Nibiru mainnet and testnet deployments.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.`,
	Example: `  stakeflow config init
  stakeflow config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after environment and flag overrides.`,
	Example: `  stakeflow config show
  stakeflow config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its dotted path.

Paths: home, default_chain_id, display.locale, display.truncate_length,
output.default_format, output.verbose, output.color, logging.level,
logging.file.`,
	Example: `  stakeflow config get default_chain_id
  stakeflow config get display.locale`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by its dotted path. The file is
validated and rewritten immediately. Deployments are edited in the file.

Flags go before <path>; everything after it is taken literally, so values
that start with "-" need no quoting.`,
	Example: `  stakeflow config set default_chain_id nibiru-testnet
  stakeflow config set display.locale de
  stakeflow config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.GroupID = "config"
	configCmd.AddCommand(configInitCmd, configShowCmd, configGetCmd, configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")

	// Values such as -1 must reach validation instead of the flag parser.
	configSetCmd.Flags().SetInterspersed(false)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return stakeerr.WithSuggestion(
			stakeerr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home
	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - deployments: staking contract and tokens per chain")
	outln(w, "  - default_chain_id: chain used when --chain is omitted")
	outln(w, "  - display.locale: number grouping for formatted amounts")
	outln(w, "  - logging.level: Log level (off/error/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeConfigJSON(w, cfg)
	}
	return writeConfigText(w, cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := getConfigValue(cfg, args[0])
	if err != nil {
		return err
	}
	outln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, value := args[0], args[1]

	// Load the file as written, without environment overrides
	configPath := config.Path(cfg.Home)
	current, err := config.Load(configPath)
	if err != nil {
		if !errors.Is(err, stakeerr.ErrConfigNotFound) {
			return err
		}
		current = config.Defaults()
		current.Home = cfg.Home
	}

	if err := setConfigValue(current, path, value); err != nil {
		return err
	}
	if err := current.Validate(); err != nil {
		return err
	}
	if err := config.Save(current, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out(cmd.OutOrStdout(), "Set %s = %s\n", path, value)
	return nil
}

// getConfigValue retrieves a value from the config using dot notation.
func getConfigValue(c *config.Config, path string) (string, error) {
	switch path {
	case "home":
		return c.Home, nil
	case "default_chain_id":
		return c.DefaultChain().String(), nil
	case "display.locale":
		return c.Display.Locale, nil
	case "display.truncate_length":
		return strconv.Itoa(c.Display.TruncateLength), nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.verbose":
		return strconv.FormatBool(c.Output.Verbose), nil
	case "output.color":
		return c.Output.Color, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", unknownConfigKey(path)
	}
}

// setConfigValue sets a value in the config using dot notation.
//
//nolint:gocyclo // One case per settable key
func setConfigValue(c *config.Config, path, value string) error {
	switch path {
	case "home":
		c.Home = value
	case "default_chain_id":
		id, ok := chain.ParseChainID(value)
		if !ok {
			return invalidConfigValue(path, value, "a chain id, 0x hex id, or known chain name")
		}
		c.DefaultChainID = uint64(id)
	case "display.locale":
		if _, err := language.Parse(value); err != nil {
			return invalidConfigValue(path, value, "a BCP 47 language tag such as en or de-DE")
		}
		c.Display.Locale = value
	case "display.truncate_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return invalidConfigValue(path, value, "a non-negative integer")
		}
		c.Display.TruncateLength = n
	case "output.default_format":
		if value != "text" && value != "json" && value != "auto" {
			return invalidConfigValue(path, value, "text, json, or auto")
		}
		c.Output.DefaultFormat = value
	case "output.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalidConfigValue(path, value, "true or false")
		}
		c.Output.Verbose = b
	case "output.color":
		if value != "auto" && value != "always" && value != "never" {
			return invalidConfigValue(path, value, "auto, always, or never")
		}
		c.Output.Color = value
	case "logging.level":
		if value != "off" && value != "error" && value != "debug" {
			return invalidConfigValue(path, value, "off, error, or debug")
		}
		c.Logging.Level = value
	case "logging.file":
		c.Logging.File = value
	default:
		return unknownConfigKey(path)
	}
	return nil
}

func unknownConfigKey(path string) error {
	return stakeerr.WithSuggestion(
		stakeerr.WithDetails(stakeerr.ErrUnknownConfigKey, map[string]string{"path": path}),
		"run 'stakeflow config get --help' to list paths",
	)
}

func invalidConfigValue(path, value, valid string) error {
	return stakeerr.WithDetails(stakeerr.ErrInvalidInput, map[string]string{
		"path":  path,
		"value": value,
		"valid": valid,
	})
}

// writeConfigText shows the config in text format.
func writeConfigText(w io.Writer, c *config.Config) error {
	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)
	out(w, "  Default chain: %s\n", c.DefaultChain())
	outln(w)
	outln(w, "  Deployments:")
	for _, d := range c.Deployments {
		out(w, "    %d %s\n", d.ChainID, d.Name)
		out(w, "      staking_contract: %s\n", d.StakingContract)
		out(w, "      principal: %s\n", tokenSummary(d.Principal))
		out(w, "      receipt: %s\n", tokenSummary(d.Receipt))
		out(w, "      native_value: %t\n", d.NativeValue)
	}
	outln(w)
	outln(w, "  Display:")
	out(w, "    locale: %s\n", c.Display.Locale)
	out(w, "    truncate_length: %d\n", c.Display.TruncateLength)
	outln(w)
	outln(w, "  Output:")
	out(w, "    default_format: %s\n", c.Output.DefaultFormat)
	out(w, "    verbose: %t\n", c.Output.Verbose)
	out(w, "    color: %s\n", c.Output.Color)
	outln(w)
	outln(w, "  Logging:")
	out(w, "    level: %s\n", c.Logging.Level)
	out(w, "    file: %s\n", c.Logging.File)
	return nil
}

func tokenSummary(t config.TokenConfig) string {
	parts := []string{t.Symbol, strconv.Itoa(t.Decimals) + " decimals"}
	if t.IsNative() {
		parts = append(parts, "native")
	} else {
		parts = append(parts, t.Address)
	}
	if t.MinGranularity != "" {
		parts = append(parts, "granularity "+t.MinGranularity)
	}
	return strings.Join(parts, ", ")
}

// writeConfigJSON shows the config in JSON format.
func writeConfigJSON(w io.Writer, c *config.Config) error {
	type displayJSON struct {
		Locale         string `json:"locale"`
		TruncateLength int    `json:"truncate_length"`
	}
	type outputJSON struct {
		DefaultFormat string `json:"default_format"`
		Verbose       bool   `json:"verbose"`
		Color         string `json:"color"`
	}
	type loggingJSON struct {
		Level string `json:"level"`
		File  string `json:"file"`
	}
	type configJSON struct {
		Version        int              `json:"version"`
		Home           string           `json:"home"`
		DefaultChainID uint64           `json:"default_chain_id"`
		Deployments    []deploymentJSON `json:"deployments"`
		Display        displayJSON      `json:"display"`
		Output         outputJSON       `json:"output"`
		Logging        loggingJSON      `json:"logging"`
	}

	defaultID := c.DefaultChain()
	deployments := make([]deploymentJSON, 0, len(c.Deployments))
	for _, d := range c.Deployments {
		deployments = append(deployments, deploymentJSON{
			ChainID:         d.ChainID,
			Name:            d.Name,
			Default:         d.ID() == defaultID,
			StakingContract: d.StakingContract,
			NativeValue:     d.NativeValue,
			Principal:       d.Principal,
			Receipt:         d.Receipt,
		})
	}

	return output.WriteJSON(w, configJSON{
		Version:        c.Version,
		Home:           c.Home,
		DefaultChainID: uint64(defaultID),
		Deployments:    deployments,
		Display:        displayJSON{Locale: c.Display.Locale, TruncateLength: c.Display.TruncateLength},
		Output:         outputJSON{DefaultFormat: c.Output.DefaultFormat, Verbose: c.Output.Verbose, Color: c.Output.Color},
		Logging:        loggingJSON{Level: c.Logging.Level, File: c.Logging.File},
	})
}
