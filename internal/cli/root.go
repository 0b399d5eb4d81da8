// Package cli implements the stakeflow command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"errors"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/config"
	"github.com/mrz1836/stakeflow/internal/display"
	"github.com/mrz1836/stakeflow/internal/output"
	"github.com/mrz1836/stakeflow/internal/service/staking"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

var (
	// Global flags
	homeDir      string
	outputFormat string
	verbose      bool
	chainFlag    string

	finalizeOnce sync.Once

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *zap.Logger
	closeLog  func() error
	formatter *output.Formatter
	amounts   *display.Formatter
	registry  *config.Registry
	service   *staking.Service
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stakeflow",
	Short: "Liquid-staking amount and call toolkit",
	Long: `stakeflow turns typed amounts into exact, validated contract calls for
liquid-staking deployments such as Nibiru stNIBI.

It normalizes and validates amounts, converts between decimal and base units,
formats balances for display, and encodes staking and token calls for an
external wallet to sign.`,
	Example: `  stakeflow amount validate 420 --balance 1000000000000000000000
  stakeflow encode stake 420 --chain 6900
  stakeflow address check 0x38039867f99B18bf2b14C592A5cb4791403C2C12`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	finalizeOnce.Do(finalizeCommands)

	err := rootCmd.Execute()
	// PersistentPostRun is skipped when a command fails.
	cleanup()
	if err != nil {
		// Format and print error
		if formatter != nil {
			_ = output.FormatError(os.Stderr, err, formatter.Format())
		} else {
			_ = output.FormatError(os.Stderr, err, output.FormatText)
		}
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return stakeerr.ExitCode(err)
}

// initGlobals initializes configuration, logger, formatters and the staking service.
func initGlobals(cmd *cobra.Command) error {
	// Determine home directory
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	// Load the config. A missing file means defaults; a broken one is fatal
	// except to "config init", which exists to replace it.
	var err error
	cfg, err = config.Load(config.Path(home))
	if err != nil {
		if !errors.Is(err, stakeerr.ErrConfigNotFound) && cmd != configInitCmd {
			return err
		}
		cfg = config.Defaults()
	}
	cfg.Home = home

	// Apply environment variable overrides
	config.ApplyEnvironment(cfg)

	// Override with command-line flags
	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != "auto" {
		cfg.Output.DefaultFormat = outputFormat
	}

	// Initialize logger
	logger, closeLog, err = config.NewLogger(config.ParseLogLevel(cfg.Logging.Level), cfg.Logging.File)
	if err != nil {
		// Use null logger if we can't create the file
		logger, closeLog = config.NullLogger(), nil
	}

	// Initialize formatters
	w := cmd.OutOrStdout()
	explicitFormat := output.ParseFormat(cfg.Output.DefaultFormat)
	formatter = output.NewFormatter(output.DetectFormat(w, explicitFormat), w).
		WithColor(output.DetectColor(w, cfg.Output.Color))
	amounts = display.NewFromLocale(cfg.Display.Locale)

	registry, err = config.NewRegistry(cfg.Deployments)
	if err != nil {
		return err
	}
	service = staking.NewService(registry,
		staking.WithLogger(logger.Named("staking")),
		staking.WithFormatter(amounts),
	)

	return nil
}

// cleanup flushes the logger and closes its file.
func cleanup() {
	if closeLog != nil {
		_ = closeLog()
		closeLog = nil
		return
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// selectedChain resolves --chain, falling back to the configured default.
func selectedChain() (chain.ID, error) {
	if chainFlag == "" {
		return cfg.DefaultChain(), nil
	}
	id, ok := chain.ParseChainID(chainFlag)
	if !ok {
		return 0, stakeerr.WithSuggestion(
			stakeerr.WithDetails(stakeerr.ErrUnsupportedChain, map[string]string{"chain": chainFlag}),
			"use a numeric chain id, 0x hex, or a known name such as nibiru-mainnet",
		)
	}
	return id, nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "amounts", Title: "Amount Tools:"},
		&cobra.Group{ID: "calls", Title: "Contract Calls:"},
		&cobra.Group{ID: "config", Title: "Configuration:"},
	)

	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "stakeflow data directory (default: ~/.stakeflow)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&chainFlag, "chain", "c", "", "chain id or name (default: configured default chain)")
}
