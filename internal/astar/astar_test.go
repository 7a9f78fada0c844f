package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

// line builds a,b,c,d,... chain nodes on floor f1 spaced stepDeg apart along
// longitude, each bidirectionally connected to its neighbor.
func lineGraph(n int, stepDeg float64) *graph.Graph {
	g := graph.New()
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		ids[i] = id
		g.AddNode(graph.Node{ID: id, Coords: geo.New(float64(i)*stepDeg, 0), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})
	}
	for i := 0; i+1 < n; i++ {
		dist := 111320.0 * stepDeg
		g.AddBidirectionalEdge(ids[i], ids[i+1], dist, graph.EdgeWalkable, true)
	}
	return g
}

func TestFindPathStraightLine(t *testing.T) {
	g := lineGraph(5, 1e-4)
	res, ok := FindPath(g, "a", "e", Options{})
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.NodeIDs)
	assert.Len(t, res.Segments, 4)
}

func TestFindPathNoPathReturnsFalse(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "a", Coords: geo.New(0, 0), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})
	g.AddNode(graph.Node{ID: "b", Coords: geo.New(1, 1), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})

	_, ok := FindPath(g, "a", "b", Options{})
	assert.False(t, ok)
}

func TestFindPathAccessibleOnlyRejectsStairs(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "a", Coords: geo.New(0, 0), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})
	g.AddNode(graph.Node{ID: "b", Coords: geo.New(0, 0), FloorID: "f2", Type: graph.NodeStairs, Metadata: graph.NewMetadata()})
	g.AddBidirectionalEdge("a", "b", 10, graph.EdgeStairs, false)

	_, ok := FindPath(g, "a", "b", Options{AccessibleOnly: true})
	assert.False(t, ok)

	_, ok = FindPath(g, "a", "b", Options{})
	assert.True(t, ok)
}

func TestFindPathAvoidStairs(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "a", Coords: geo.New(0, 0), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})
	g.AddNode(graph.Node{ID: "b", Coords: geo.New(0, 0), FloorID: "f2", Type: graph.NodeStairs, Metadata: graph.NewMetadata()})
	g.AddBidirectionalEdge("a", "b", 10, graph.EdgeStairs, true)

	_, ok := FindPath(g, "a", "b", Options{AvoidStairs: true})
	assert.False(t, ok)
}

func TestFindPathRoomConstraintBlocksOtherRooms(t *testing.T) {
	g := graph.New()
	a := graph.NewMetadata()
	b := graph.NewMetadata()
	b.RoomIDs["other-room"] = struct{}{}
	g.AddNode(graph.Node{ID: "a", Coords: geo.New(0, 0), FloorID: "f1", Type: graph.NodeWalkable, Metadata: a})
	g.AddNode(graph.Node{ID: "b", Coords: geo.New(1e-4, 0), FloorID: "f1", Type: graph.NodeWalkable, Metadata: b})
	g.AddBidirectionalEdge("a", "b", 11.1, graph.EdgeWalkable, true)

	_, ok := FindPath(g, "a", "b", Options{
		AllowedRoomIDs:     map[string]struct{}{"my-room": {}},
		DisallowOtherRooms: true,
	})
	assert.False(t, ok)
}

func TestBidirectionalFindPathMatchesForward(t *testing.T) {
	g := lineGraph(6, 1e-4)
	fwd, okFwd := FindPath(g, "a", "f", Options{})
	bi, okBi := BidirectionalFindPath(g, "a", "f", Options{})

	assert.True(t, okFwd)
	assert.True(t, okBi)
	assert.InDelta(t, fwd.DistanceM, bi.DistanceM, 1e-6)
	assert.Equal(t, "a", bi.NodeIDs[0])
	assert.Equal(t, "f", bi.NodeIDs[len(bi.NodeIDs)-1])
}

func TestBidirectionalFindPathNoPath(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "a", Coords: geo.New(0, 0), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})
	g.AddNode(graph.Node{ID: "b", Coords: geo.New(1, 1), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})

	_, ok := BidirectionalFindPath(g, "a", "b", Options{})
	assert.False(t, ok)
}
