package ports

import "go.trai.ch/nativ/internal/core/domain"

// ConfigLoader defines the interface for loading the project description.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at the given path and returns the
	// project description.
	Load(path string) (*domain.Project, error)
}
