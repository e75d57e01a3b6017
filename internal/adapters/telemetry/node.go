package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/nativ/internal/adapters/telemetry/progrock"
	"go.trai.ch/nativ/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			// Progress rendering only makes sense on a terminal; logs and CI
			// keep the plain logger output.
			if os.Getenv("NATIV_PROGRESS") == "" {
				return NewNoOp(), nil
			}
			return progrock.New(), nil
		},
	})
}
