package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/mrz1836/stakeflow/internal/chain"
)

// Environment variable names.
const (
	EnvHome         = "STAKEFLOW_HOME"
	EnvOutputFormat = "STAKEFLOW_OUTPUT_FORMAT"
	EnvVerbose      = "STAKEFLOW_VERBOSE"
	EnvLogLevel     = "STAKEFLOW_LOG_LEVEL"
	EnvLocale       = "STAKEFLOW_LOCALE"
	EnvChainID      = "STAKEFLOW_CHAIN_ID"
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
//
//nolint:gocognit,gocyclo // Environment variable overrides require sequential checks
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Display.Locale = strings.TrimSpace(v)
	}

	// Accepts the same forms as --chain: 6900, 0x1af4, nibiru-mainnet
	if v := os.Getenv(EnvChainID); v != "" {
		if id, ok := chain.ParseChainID(v); ok {
			cfg.DefaultChainID = uint64(id)
		}
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
