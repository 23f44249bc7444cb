package ports

import "go.trai.ch/cadence/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from path. An empty path looks for cadence.yaml in the
	// working directory and falls back to the defaults when it is absent.
	Load(path string) (*domain.Config, error)
}
