package ports

import "context"

// Stager copies a platform's finished build outputs into the external
// artifact repository, excluding link-time-only files.
//
//go:generate go run go.uber.org/mock/mockgen -source=stager.go -destination=mocks/mock_stager.go -package=mocks
type Stager interface {
	// Stage copies the platform's build output directory into the repository.
	// It fails if the source directory does not exist.
	Stage(ctx context.Context, platform string) error
}
