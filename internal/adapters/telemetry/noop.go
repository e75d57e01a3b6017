// Package telemetry provides build progress recording adapters.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/nativ/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a no-op vertex.
func (t *NoOp) Record(_ context.Context, _ string) ports.Vertex {
	return &noOpVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

type noOpVertex struct{}

func (v *noOpVertex) Stdout() io.Writer { return io.Discard }

func (v *noOpVertex) Complete(_ error) {}
