// Package config provides configuration management for stakeflow.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/stakeflow/internal/chain"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version        int           `yaml:"version"`
	Home           string        `yaml:"home"`
	DefaultChainID uint64        `yaml:"default_chain_id,omitempty"`
	Deployments    []Deployment  `yaml:"deployments"`
	Display        DisplayConfig `yaml:"display"`
	Output         OutputConfig  `yaml:"output"`
	Logging        LoggingConfig `yaml:"logging"`
}

// Deployment describes one liquid-staking contract pair on one chain.
type Deployment struct {
	ChainID         uint64      `yaml:"chain_id"`
	Name            string      `yaml:"name"`
	StakingContract string      `yaml:"staking_contract"`
	Principal       TokenConfig `yaml:"principal"`
	Receipt         TokenConfig `yaml:"receipt"`

	// NativeValue sends the staked amount as the transaction value.
	// When false the stake call carries a zero value and the contract pulls
	// an ERC-20 principal through an allowance.
	NativeValue bool `yaml:"native_value"`
}

// TokenConfig defines a token taking part in a deployment.
type TokenConfig struct {
	Symbol   string `yaml:"symbol" json:"symbol"`
	Address  string `yaml:"address,omitempty" json:"address,omitempty"` // empty for the chain's native asset
	Decimals int    `yaml:"decimals" json:"decimals"`

	// MinGranularity is the smallest permitted step in base units, as a
	// decimal integer string. Empty disables the rule.
	MinGranularity string `yaml:"min_granularity,omitempty" json:"min_granularity,omitempty"`
}

// DisplayConfig defines how amounts are rendered.
type DisplayConfig struct {
	Locale         string `yaml:"locale"`
	TruncateLength int    `yaml:"truncate_length"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ID returns the deployment's chain identifier.
func (d Deployment) ID() chain.ID {
	return chain.ID(d.ChainID)
}

// IsNative reports whether the token is the chain's native asset.
func (t TokenConfig) IsNative() bool {
	return t.Address == ""
}

// Load reads configuration from the specified file and validates it.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stakeerr.WithDetails(stakeerr.ErrConfigNotFound, map[string]string{"path": path})
		}
		return nil, err
	}

	cfg := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, stakeerr.Wrap(stakeerr.ErrConfigInvalid, "parse %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return writeFileAtomic(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the stakeflow home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// DefaultChain returns the chain used when a command does not name one:
// DefaultChainID when set, otherwise the first deployment.
func (c *Config) DefaultChain() chain.ID {
	if c.DefaultChainID != 0 {
		return chain.ID(c.DefaultChainID)
	}
	if len(c.Deployments) > 0 {
		return c.Deployments[0].ID()
	}
	return 0
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// DefaultHome returns the default stakeflow home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stakeflow"
	}
	return filepath.Join(home, ".stakeflow")
}
