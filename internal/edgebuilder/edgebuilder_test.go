package edgebuilder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/internal/collision"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

func gridGraph(n int, stepDeg float64) *graph.Graph {
	g := graph.New()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			id := string(rune('a'+x)) + string(rune('a'+y))
			g.AddNode(graph.Node{
				ID:       id,
				Coords:   geo.New(float64(x)*stepDeg, float64(y)*stepDeg),
				FloorID:  "f1",
				Type:     graph.NodeWalkable,
				Metadata: graph.NewMetadata(),
			})
		}
	}
	g.BuildSpatialIndex("f1")
	return g
}

func TestBuildConnectsNearbyNodesWithoutObstacles(t *testing.T) {
	// 1e-4 deg ~= 11m apart, well within the 15m default max distance.
	g := gridGraph(3, 1e-4)
	b := New(collision.New(), DefaultOptions())

	err := b.Build(context.Background(), g, nil)
	assert.NoError(t, err)

	// Every node should have at least one accepted neighbor.
	for _, n := range g.Nodes() {
		assert.NotZero(t, g.EdgeCount(n.ID), "node %s has no edges", n.ID)
	}
}

func TestBuildRespectsMaxNeighbors(t *testing.T) {
	g := gridGraph(5, 1e-4)
	opts := DefaultOptions()
	opts.MaxNeighbors = 2
	opts.MaxDistanceM = 100 // generous, so every node is a candidate of every other
	b := New(collision.New(), opts)

	err := b.Build(context.Background(), g, nil)
	assert.NoError(t, err)

	for _, n := range g.Nodes() {
		emitted := 0
		for _, e := range g.EdgesFrom(n.ID) {
			if e.To > n.ID {
				emitted++
			}
		}
		assert.LessOrEqual(t, emitted, opts.MaxNeighbors, "node %s emitted more than max_neighbors edges", n.ID)
	}
}

func TestBuildInvokesStatusPerFloor(t *testing.T) {
	g := gridGraph(2, 1e-4)
	b := New(collision.New(), DefaultOptions())

	var floorsSeen []string
	err := b.Build(context.Background(), g, func(idx int, floorID string, edgeCount int) {
		floorsSeen = append(floorsSeen, floorID)
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"f1"}, floorsSeen)
}

func TestDefaultOptionsForTightensOnLargeGraphs(t *testing.T) {
	small := DefaultOptionsFor(100)
	large := DefaultOptionsFor(9000)

	assert.Equal(t, 15.0, small.MaxDistanceM)
	assert.Equal(t, 8.0, large.MaxDistanceM)
	assert.Equal(t, 6, large.MaxNeighbors)
}
