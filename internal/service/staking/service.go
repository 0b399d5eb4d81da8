package staking

import (
	"go.uber.org/zap"

	"github.com/mrz1836/stakeflow/internal/chain"
	"github.com/mrz1836/stakeflow/internal/config"
	"github.com/mrz1836/stakeflow/internal/display"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// Service turns user-typed amounts into validated, encoded contract calls
// for the configured liquid-staking deployments. It holds no mutable state
// and is safe for concurrent use.
type Service struct {
	deployments DeploymentProvider
	logger      *zap.Logger
	formatter   *display.Formatter
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the diagnostic logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFormatter sets the display formatter used by FormatBalance.
func WithFormatter(f *display.Formatter) Option {
	return func(s *Service) {
		if f != nil {
			s.formatter = f
		}
	}
}

// NewService creates a staking service backed by the given deployments.
func NewService(deployments DeploymentProvider, opts ...Option) *Service {
	s := &Service{
		deployments: deployments,
		logger:      config.NullLogger(),
		formatter:   display.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deployment returns the deployment configured for chainID.
func (s *Service) Deployment(chainID chain.ID) (config.Deployment, error) {
	return s.deployments.Lookup(chainID)
}

func (s *Service) token(chainID chain.ID, token Token) (config.Deployment, config.TokenConfig, error) {
	d, err := s.deployments.Lookup(chainID)
	if err != nil {
		return config.Deployment{}, config.TokenConfig{}, err
	}
	switch token {
	case TokenPrincipal:
		return d, d.Principal, nil
	case TokenReceipt:
		return d, d.Receipt, nil
	default:
		return d, config.TokenConfig{}, stakeerr.WithDetails(stakeerr.ErrInvalidInput, map[string]string{
			"token": string(token),
		})
	}
}
