package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.AddNode(graph.Node{ID: "n1", FloorID: "f1", Coords: geo.Coord{Lng: 0, Lat: 0}, Type: graph.NodeWalkable})
	g.AddNode(graph.Node{ID: "n2", FloorID: "f1", Coords: geo.Coord{Lng: 1, Lat: 1}, Type: graph.NodeDoor})
	g.AddNode(graph.Node{ID: "n3", FloorID: "f1", Coords: geo.Coord{Lng: 0.5, Lat: 0.5}, Type: graph.NodeStairs})
	return g
}

func TestFloorBBoxCoversAllNodesOnFloor(t *testing.T) {
	g := sampleGraph()
	box, ok := floorBBox(g, "f1")
	require.True(t, ok)
	assert.LessOrEqual(t, box.MinLng, 0.0)
	assert.GreaterOrEqual(t, box.MaxLng, 1.0)
	assert.LessOrEqual(t, box.MinLat, 0.0)
	assert.GreaterOrEqual(t, box.MaxLat, 1.0)
}

func TestFloorBBoxReturnsFalseForUnknownFloor(t *testing.T) {
	g := sampleGraph()
	_, ok := floorBBox(g, "nonexistent")
	assert.False(t, ok)
}

func TestBuildGridRasterizesNodesByType(t *testing.T) {
	g := sampleGraph()
	gr, ok := buildGrid(g, nil, "f1", nil, 40, 20)
	require.True(t, ok)
	rendered := gr.render()

	assert.Contains(t, rendered, string(symDoor))
	assert.Contains(t, rendered, string(symStairs))
	assert.Contains(t, rendered, string(symWalkable))
}

func TestBuildGridOverlaysRouteWithStartAndEnd(t *testing.T) {
	g := sampleGraph()
	route := []geo.Coord{{Lng: 0, Lat: 0}, {Lng: 0.5, Lat: 0.5}, {Lng: 1, Lat: 1}}
	gr, ok := buildGrid(g, nil, "f1", route, 40, 20)
	require.True(t, ok)
	rendered := gr.render()

	assert.Contains(t, rendered, string(symStart))
	assert.Contains(t, rendered, string(symEnd))
}

func TestBuildGridReturnsFalseForEmptyFloor(t *testing.T) {
	g := graph.New()
	_, ok := buildGrid(g, nil, "missing", nil, 10, 10)
	assert.False(t, ok)
}

func TestGridRenderProducesHeightRows(t *testing.T) {
	gr := newGrid(10, 5, geo.BBox{MinLng: 0, MaxLng: 1, MinLat: 0, MaxLat: 1})
	rendered := gr.render()
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	assert.Len(t, lines, 5)
	for _, l := range lines {
		assert.Len(t, []rune(l), 10)
	}
}
