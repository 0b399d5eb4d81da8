package config

import "github.com/mrz1836/stakeflow/internal/chain"

// Nibiru liquid-staking contracts. The staking contract mints stNIBI and is
// deployed at the same address on mainnet and testnet.
const (
	NibiruStakingContract = "0x38039867f99B18bf2b14C592A5cb4791403C2C12"
	NibiruStNIBIToken     = "0x62C054E4D7f8e066596Cd7A55DB0881E529ec00C"
)

// MicroNIBIInWei is the smallest stake/unstake step on Nibiru: 1 unibi
// expressed in 18-decimal EVM base units.
const MicroNIBIInWei = "1000000000000"

// nibiruDeployment returns the stock deployment for a Nibiru network.
func nibiruDeployment(id chain.ID) Deployment {
	return Deployment{
		ChainID:         uint64(id),
		Name:            id.Name(),
		StakingContract: NibiruStakingContract,
		Principal: TokenConfig{
			Symbol:         "NIBI",
			Decimals:       18,
			MinGranularity: MicroNIBIInWei,
		},
		Receipt: TokenConfig{
			Symbol:   "stNIBI",
			Address:  NibiruStNIBIToken,
			Decimals: 18,
		},
		NativeValue: true,
	}
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.stakeflow",
		Deployments: []Deployment{
			nibiruDeployment(chain.NibiruMainnet),
			nibiruDeployment(chain.NibiruTestnet),
		},
		Display: DisplayConfig{
			Locale:         "en",
			TruncateLength: chain.DefaultTruncateLength,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.stakeflow/stakeflow.log",
		},
	}
}
