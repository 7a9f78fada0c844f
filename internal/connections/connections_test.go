package connections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

func TestApplyElevatorIsAccessibleStairsIsNot(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "elev_f1", Coords: geo.New(0, 0), FloorID: "f1", Type: graph.NodeElevator, Metadata: graph.NewMetadata()})
	g.AddNode(graph.Node{ID: "elev_f2", Coords: geo.New(0, 0), FloorID: "f2", Type: graph.NodeElevator, Metadata: graph.NewMetadata()})
	g.AddNode(graph.Node{ID: "stairs_f1", Coords: geo.New(1, 1), FloorID: "f1", Type: graph.NodeStairs, Metadata: graph.NewMetadata()})
	g.AddNode(graph.Node{ID: "stairs_f2", Coords: geo.New(1, 1), FloorID: "f2", Type: graph.NodeStairs, Metadata: graph.NewMetadata()})

	Apply(g, []Entry{
		{Kind: KindElevator, Endpoints: []Endpoint{{NodeID: "elev_f1", FloorID: "f1"}, {NodeID: "elev_f2", FloorID: "f2"}}},
		{Kind: KindStairs, Endpoints: []Endpoint{{NodeID: "stairs_f1", FloorID: "f1"}, {NodeID: "stairs_f2", FloorID: "f2"}}},
	})

	elevEdges := g.EdgesFrom("elev_f1")
	assert.Len(t, elevEdges, 1)
	assert.True(t, elevEdges[0].Accessible)
	assert.Equal(t, graph.EdgeElevator, elevEdges[0].Type)
	assert.GreaterOrEqual(t, elevEdges[0].WeightM, 5.0)

	stairEdges := g.EdgesFrom("stairs_f1")
	assert.Len(t, stairEdges, 1)
	assert.False(t, stairEdges[0].Accessible)
	assert.Equal(t, graph.EdgeStairs, stairEdges[0].Type)
}

func TestApplyConnectsAllPairsForMultiFloorConnector(t *testing.T) {
	g := graph.New()
	for _, f := range []string{"f1", "f2", "f3"} {
		g.AddNode(graph.Node{ID: "elev_" + f, Coords: geo.New(0, 0), FloorID: f, Type: graph.NodeElevator, Metadata: graph.NewMetadata()})
	}
	Apply(g, []Entry{{Kind: KindElevator, Endpoints: []Endpoint{
		{NodeID: "elev_f1", FloorID: "f1"},
		{NodeID: "elev_f2", FloorID: "f2"},
		{NodeID: "elev_f3", FloorID: "f3"},
	}}})

	assert.Len(t, g.EdgesFrom("elev_f1"), 2)
	assert.Len(t, g.EdgesFrom("elev_f2"), 2)
	assert.Len(t, g.EdgesFrom("elev_f3"), 2)
}

func TestApplySkipsMissingNodes(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "elev_f1", Coords: geo.New(0, 0), FloorID: "f1", Type: graph.NodeElevator, Metadata: graph.NewMetadata()})

	Apply(g, []Entry{{Kind: KindElevator, Endpoints: []Endpoint{
		{NodeID: "elev_f1", FloorID: "f1"},
		{NodeID: "elev_missing", FloorID: "f2"},
	}}})

	assert.Empty(t, g.EdgesFrom("elev_f1"))
}
