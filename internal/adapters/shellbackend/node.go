package shellbackend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nativ/internal/adapters/logger"
	"go.trai.ch/nativ/internal/core/ports"
)

// NodeID is the unique identifier for the shell backend Graft node.
const NodeID graft.ID = "adapter.shellbackend"

func init() {
	graft.Register(graft.Node[ports.Backend]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Backend, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBackend(log), nil
		},
	})
}
