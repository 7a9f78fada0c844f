package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/pkg/geo"
)

func sampleNode(id string, lng, lat float64) Node {
	return Node{ID: id, Coords: geo.New(lng, lat), FloorID: "f1", Type: NodeWalkable, Metadata: NewMetadata()}
}

func TestAddNodeTracksPerFloor(t *testing.T) {
	g := New()
	g.AddNode(sampleNode("n1", 0, 0))
	g.AddNode(sampleNode("n2", 1, 1))

	assert.ElementsMatch(t, []string{"n1", "n2"}, g.FloorNodeIDs("f1"))
	assert.ElementsMatch(t, []string{"f1"}, g.Floors())
}

func TestAddBidirectionalEdgeCreatesBothDirections(t *testing.T) {
	g := New()
	g.AddNode(sampleNode("a", 0, 0))
	g.AddNode(sampleNode("b", 0, 1))
	g.AddBidirectionalEdge("a", "b", 111.32, EdgeWalkable, true)

	assert.Len(t, g.EdgesFrom("a"), 1)
	assert.Len(t, g.EdgesFrom("b"), 1)
	assert.Equal(t, "b", g.EdgesFrom("a")[0].To)
	assert.Equal(t, "a", g.EdgesFrom("b")[0].To)
}

func TestBuildSpatialIndexAndNearestNodes(t *testing.T) {
	g := New()
	for i := 0; i < 5; i++ {
		g.AddNode(sampleNode(string(rune('a'+i)), float64(i), 0))
	}
	g.BuildSpatialIndex("f1")

	near := g.NearestNodes("f1", geo.New(2.01, 0), 500, 50000, 1, nil)
	assert.Len(t, near, 1)
	assert.Equal(t, "c", near[0].ID)
}

func TestNearestNodesHonorsAcceptFilter(t *testing.T) {
	g := New()
	g.AddNode(sampleNode("walkable1", 0, 0))
	door := sampleNode("door1", 0.00001, 0)
	door.Type = NodeDoor
	g.AddNode(door)
	g.BuildSpatialIndex("f1")

	near := g.NearestNodes("f1", geo.New(0, 0), 500, 50000, 5, func(n *Node) bool {
		return n.Type == NodeDoor
	})

	assert.Len(t, near, 1)
	assert.Equal(t, "door1", near[0].ID)
}

func TestEdgeCountReflectsOutgoingDegree(t *testing.T) {
	g := New()
	g.AddNode(sampleNode("a", 0, 0))
	g.AddNode(sampleNode("b", 0, 1))
	g.AddNode(sampleNode("c", 1, 0))
	g.AddBidirectionalEdge("a", "b", 1, EdgeWalkable, true)
	g.AddBidirectionalEdge("a", "c", 1, EdgeWalkable, true)

	assert.Equal(t, 2, g.EdgeCount("a"))
	assert.Equal(t, 1, g.EdgeCount("b"))
}
