package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records per-node build progress.
type Telemetry interface {
	// Record starts recording a vertex for the named node.
	Record(ctx context.Context, name string) Vertex
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one node's progress recording.
type Vertex interface {
	// Stdout returns a writer for the node's output stream.
	Stdout() io.Writer
	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
}
