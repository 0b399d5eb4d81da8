package staking

import (
	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/config"
)

// DeploymentProvider resolves the deployment for a chain.
// Satisfied by *config.Registry.
type DeploymentProvider interface {
	Lookup(id chain.ID) (config.Deployment, error)
}
