package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/monrun/internal/adapters/fs"
	"go.trai.ch/monrun/internal/adapters/logger"
	"go.trai.ch/monrun/internal/adapters/shell"
	"go.trai.ch/monrun/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the application Graft node.
	NodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the resolved pieces the command layer works with.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID, shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*App, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(hasher, executor, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}
