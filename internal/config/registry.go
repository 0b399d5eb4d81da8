package config

import (
	"fmt"
	"strings"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/chain/eth"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// Registry maps chain identifiers to validated deployments.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	byID  map[chain.ID]Deployment
	order []chain.ID
}

// NewRegistry validates the deployments and indexes them by chain.
// Contract addresses are stored in checksummed form.
func NewRegistry(deployments []Deployment) (*Registry, error) {
	cfg := &Config{Deployments: deployments}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		byID:  make(map[chain.ID]Deployment, len(deployments)),
		order: make([]chain.ID, 0, len(deployments)),
	}
	for _, d := range deployments {
		d.StakingContract = eth.ToChecksumAddress(d.StakingContract)
		d.Principal.Address = eth.ToChecksumAddress(d.Principal.Address)
		d.Receipt.Address = eth.ToChecksumAddress(d.Receipt.Address)
		if d.Name == "" {
			d.Name = d.ID().Name()
		}
		r.byID[d.ID()] = d
		r.order = append(r.order, d.ID())
	}
	return r, nil
}

// Lookup returns the deployment for a chain. An unknown chain is an error,
// never a zero deployment.
func (r *Registry) Lookup(id chain.ID) (Deployment, error) {
	d, ok := r.byID[id]
	if !ok {
		return Deployment{}, stakeerr.WithSuggestion(
			stakeerr.WithDetails(stakeerr.ErrUnsupportedChain, map[string]string{
				"chain_id": id.String(),
			}),
			fmt.Sprintf("configured chains: %s", r.chainList()),
		)
	}
	return d, nil
}

// Deployments returns the deployments in configuration order.
func (r *Registry) Deployments() []Deployment {
	out := make([]Deployment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Registry) chainList() string {
	parts := make([]string, 0, len(r.order))
	for _, id := range r.order {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ", ")
}
