package engine

import (
	"github.com/wayfynd/navcore/internal/collision"
	"github.com/wayfynd/navcore/internal/graph"
)

// Graph exposes the initialized graph for read-only debug tooling
// (cmd/navcore-viz). Returns nil if the engine is uninitialized.
func (e *Engine) Graph() *graph.Graph {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.initialized {
		return nil
	}
	return e.graph
}

// Collision exposes the initialized collision detector for read-only debug
// tooling (cmd/navcore-viz). Returns nil if the engine is uninitialized.
func (e *Engine) Collision() *collision.Detector {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.initialized {
		return nil
	}
	return e.collision
}

// FloorNodeCount returns the number of graph nodes on floorID, or 0 if the
// engine is uninitialized or the floor is unknown. Used by the debug
// floor-summary endpoint and the ASCII visualizer.
func (e *Engine) FloorNodeCount(floorID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.initialized {
		return 0
	}
	return len(e.graph.FloorNodeIDs(floorID))
}

// Floors returns every floor id known to the initialized graph.
func (e *Engine) Floors() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.initialized {
		return nil
	}
	return e.graph.Floors()
}
