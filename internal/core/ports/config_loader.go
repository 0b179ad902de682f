package ports

import "go.trai.ch/mk/internal/core/domain"

// ConfigLoader builds the target registry from the task definitions.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the taskfile from the given working directory and returns
	// the validated registry.
	Load(cwd string) (*domain.Registry, error)
}
