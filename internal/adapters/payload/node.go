package payload

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cadence/internal/core/ports"
)

// NodeID is the unique identifier for the payload loader Graft node.
const NodeID graft.ID = "adapter.payload_loader"

func init() {
	graft.Register(graft.Node[ports.PayloadLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PayloadLoader, error) {
			return NewLoader(), nil
		},
	})
}
