package config

import (
	"fmt"
	"math/big"
	"strconv"

	"golang.org/x/text/language"

	"github.com/mrz1836/stakeflow/internal/chain/eth"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// maxTokenDecimals keeps 10^decimals inside a uint256.
const maxTokenDecimals = 77

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Deployments) == 0 {
		return invalidField("deployments", "at least one deployment is required")
	}

	seen := make(map[uint64]int, len(c.Deployments))
	for i, d := range c.Deployments {
		prefix := fmt.Sprintf("deployments[%d]", i)
		if err := d.Validate(prefix); err != nil {
			return err
		}
		if j, dup := seen[d.ChainID]; dup {
			return invalidField(prefix+".chain_id",
				fmt.Sprintf("chain %d already configured by deployments[%d]", d.ChainID, j))
		}
		seen[d.ChainID] = i
	}

	if c.DefaultChainID != 0 {
		if _, ok := seen[c.DefaultChainID]; !ok {
			return invalidField("default_chain_id",
				fmt.Sprintf("chain %d has no deployment", c.DefaultChainID))
		}
	}

	switch c.Output.DefaultFormat {
	case "", "auto", "text", "json":
	default:
		return invalidField("output.default_format", "must be auto, text or json")
	}

	if c.Display.TruncateLength < 0 {
		return invalidField("display.truncate_length", "must not be negative")
	}
	if c.Display.Locale != "" {
		if _, err := language.Parse(c.Display.Locale); err != nil {
			return invalidField("display.locale", err.Error())
		}
	}
	return nil
}

// Validate checks a single deployment. prefix names it in error details.
func (d Deployment) Validate(prefix string) error {
	if d.ChainID == 0 {
		return invalidField(prefix+".chain_id", "must be a positive EVM chain id")
	}
	if err := eth.ValidateChecksumAddress(d.StakingContract); err != nil {
		return stakeerr.Wrap(err, "%s.staking_contract", prefix)
	}
	if err := d.Principal.validate(prefix + ".principal"); err != nil {
		return err
	}
	if err := d.Receipt.validate(prefix + ".receipt"); err != nil {
		return err
	}
	if d.Receipt.IsNative() {
		return invalidField(prefix+".receipt.address", "the receipt token must be a contract")
	}
	if !d.NativeValue && d.Principal.IsNative() {
		return invalidField(prefix+".native_value",
			"a native principal can only be staked with native_value: true")
	}
	return nil
}

func (t TokenConfig) validate(prefix string) error {
	if t.Symbol == "" {
		return invalidField(prefix+".symbol", "must not be empty")
	}
	if t.Decimals < 0 || t.Decimals > maxTokenDecimals {
		return invalidField(prefix+".decimals", "must be between 0 and "+strconv.Itoa(maxTokenDecimals))
	}
	if !t.IsNative() {
		if err := eth.ValidateChecksumAddress(t.Address); err != nil {
			return stakeerr.Wrap(err, "%s.address", prefix)
		}
	}
	if t.MinGranularity != "" {
		if _, err := parseGranularity(t.MinGranularity); err != nil {
			return invalidField(prefix+".min_granularity", err.Error())
		}
	}
	return nil
}

// Granularity returns MinGranularity as base units, or nil when unset.
func (t TokenConfig) Granularity() *big.Int {
	if t.MinGranularity == "" {
		return nil
	}
	v, err := parseGranularity(t.MinGranularity)
	if err != nil {
		return nil
	}
	return v
}

func parseGranularity(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%q is not a non-negative integer", s) //nolint:err113 // detail text only
	}
	return v, nil
}

func invalidField(field, reason string) error {
	return stakeerr.WithDetails(stakeerr.ErrConfigInvalid, map[string]string{
		"field":  field,
		"reason": reason,
	})
}
