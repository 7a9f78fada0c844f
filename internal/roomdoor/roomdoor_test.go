package roomdoor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/internal/collision"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

func squareFeature(side float64) geo.Feature {
	poly := geo.Polygon{Rings: []geo.Ring{{
		geo.New(0, 0), geo.New(side, 0), geo.New(side, side), geo.New(0, side), geo.New(0, 0),
	}}}
	return geo.Feature{Polygon: &poly}
}

func TestAddRoomAndFindRoomAt(t *testing.T) {
	m := New(DefaultConfig())
	m.AddRoom("room1", "f1", squareFeature(10))

	id, ok := m.FindRoomAt("f1", geo.New(5, 5))
	assert.True(t, ok)
	assert.Equal(t, "room1", id)

	_, ok = m.FindRoomAt("f1", geo.New(100, 100))
	assert.False(t, ok)
}

func TestBuildDoorNodesMergesFlagsAndSetsPublic(t *testing.T) {
	m := New(Config{PublicBit: 0, HasPublicBit: true, RoomBufferM: 0.3, OrphanDoorLinkM: 6, PublicDoorThreshold: 2, PublicAreaM2: 80})
	g := graph.New()
	det := collision.New()

	pt := geo.New(1, 1)
	entrances := []Entrance{
		{GeometryID: "door1", FloorID: "f1", Feature: geo.Feature{Point: &pt}, Flags: 0},
		{GeometryID: "door1", FloorID: "f1", Feature: geo.Feature{Point: &pt}, Flags: 1}, // OR-merge sets the public bit
	}
	m.BuildDoorNodes(g, entrances, det)

	n, ok := g.Node("door_door1")
	assert.True(t, ok)
	assert.Equal(t, graph.NodeDoor, n.Type)
	assert.True(t, n.Metadata.IsPublic)
	assert.False(t, n.Metadata.IsLocked)
}

func TestBuildDoorNodesDefaultsPublicWithoutBitConfigured(t *testing.T) {
	m := New(DefaultConfig()) // HasPublicBit: false
	g := graph.New()
	det := collision.New()

	pt := geo.New(1, 1)
	m.BuildDoorNodes(g, []Entrance{{GeometryID: "d1", FloorID: "f1", Feature: geo.Feature{Point: &pt}}}, det)

	n, _ := g.Node("door_d1")
	assert.True(t, n.Metadata.IsPublic)
}

func TestIndexRoomsDoorsAndMetaClassifiesPublic(t *testing.T) {
	m := New(DefaultConfig())
	m.AddRoom("bigroom", "f1", squareFeature(12)) // 12°×12° square, far above the 80 m² A threshold

	g := graph.New()
	det := collision.New()
	pt := geo.New(6, 6)
	m.BuildDoorNodes(g, []Entrance{{GeometryID: "d1", FloorID: "f1", Feature: geo.Feature{Point: &pt}}}, det)

	m.IndexRoomsDoors(g)
	m.ComputeMeta(g)

	assert.True(t, m.IsPublicRoom("bigroom"), "large area alone should classify public")

	n, _ := g.Node("door_d1")
	_, tagged := n.Metadata.RoomIDs["bigroom"]
	assert.True(t, tagged)
}

func TestTagWalkableNodesAssignsRoomIDs(t *testing.T) {
	m := New(DefaultConfig())
	m.AddRoom("room1", "f1", squareFeature(10))

	g := graph.New()
	g.AddNode(graph.Node{ID: "w1", Coords: geo.New(5, 5), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})
	g.AddNode(graph.Node{ID: "w2", Coords: geo.New(100, 100), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})

	m.TagWalkableNodes(g)

	n1, _ := g.Node("w1")
	n2, _ := g.Node("w2")
	assert.Len(t, n1.Metadata.RoomIDs, 1)
	assert.Len(t, n2.Metadata.RoomIDs, 0)
}

func TestConnectOrphanDoorsLinksIsolatedDoor(t *testing.T) {
	m := New(DefaultConfig())
	g := graph.New()
	det := collision.New()

	g.AddNode(graph.Node{ID: "w1", Coords: geo.New(0, 0), FloorID: "f1", Type: graph.NodeWalkable, Metadata: graph.NewMetadata()})
	pt := geo.New(0.00002, 0) // a couple meters away
	m.BuildDoorNodes(g, []Entrance{{GeometryID: "d1", FloorID: "f1", Feature: geo.Feature{Point: &pt}}}, det)
	g.BuildSpatialIndex("f1")

	m.ConnectOrphanDoors(g, det)

	assert.NotZero(t, g.EdgeCount("door_d1"))
}
