// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/nativ/internal/core/domain"
)

// Backend is the opaque native build backend. Given a build unit it produces
// the unit's artifact (executable or shared library) or fails. Compiler and
// linker selection is the backend's concern, not the orchestrator's.
//
//go:generate go run go.uber.org/mock/mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks
type Backend interface {
	// Link runs the unit's build command and produces its output artifact.
	//
	// The env parameter contains additional environment variables in
	// "KEY=VALUE" format, merged over the host environment. Command output
	// is streamed to out in addition to the backend's logger.
	Link(ctx context.Context, unit *domain.BuildUnit, env []string, out io.Writer) error
}
