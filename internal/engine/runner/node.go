package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mk/internal/adapters/fs"
	"go.trai.ch/mk/internal/adapters/logger"
	"go.trai.ch/mk/internal/adapters/shell"
	"go.trai.ch/mk/internal/adapters/state"
	"go.trai.ch/mk/internal/core/ports"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.NodeID,
			state.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.RunStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(executor, hasher, store, log), nil
		},
	})
}
