// Package wiring pulls in every package that registers a Graft node, so
// importing it for side effects assembles the full dependency graph.
package wiring

import (
	_ "go.trai.ch/monrun/internal/adapters/fs"
	_ "go.trai.ch/monrun/internal/adapters/logger"
	_ "go.trai.ch/monrun/internal/adapters/shell"
	_ "go.trai.ch/monrun/internal/app"
)
