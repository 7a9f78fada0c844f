// Package engine implements PathfindingEngine: the top-level orchestrator
// that turns raw geometry/classification/connection inputs into a routable
// graph during Initialize, and answers FindRoute queries with the layered
// endpoint-fallback protocol described in §4.8.
package engine

import (
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

// GeometryFeature is one row of the geometry feature collection.
type GeometryFeature struct {
	ID      string       `json:"id"`
	FloorID string       `json:"floor_id"`
	Kind    string       `json:"kind"` // "wall", "room", "object", ...
	Feature geo.Feature  `json:"feature"`
}

// NodeSeed is one normalized sample point: a walkable node, connector node,
// or entrance anchor, as produced by the asset-loading layer this engine
// does not own (§1 "Out of scope").
type NodeSeed struct {
	ID          string         `json:"id"`
	FloorID     string         `json:"floor_id"`
	Coords      geo.Coord      `json:"coords"`
	GeometryIDs []string       `json:"geometry_ids"`
	NodeType    graph.NodeType `json:"node_type"`
}

// ConnRef names one entrance row of a connections-table entry.
type ConnRef struct {
	GeometryID string      `json:"geometry_id"`
	FloorID    string      `json:"floor_id"`
	Flags      uint64      `json:"flags"`
	Feature    geo.Feature `json:"feature"` // present for door entrances without a matching geometry feature
}

// ConnectionEntry is one row of the connections table: a door, or a
// stairs/elevator/escalator connector naming the nodes it links.
type ConnectionEntry struct {
	Type      string    `json:"type"` // "door", "stairs", "elevator", "escalator"
	Entrances []ConnRef `json:"entrances"`
}

// NavigationFlags describes which bit position encodes the "public" door
// property; absent means every door is treated as public (§4.5).
type NavigationFlags struct {
	PublicBit    int  `json:"public_bit"`
	HasPublicBit bool `json:"has_public_bit"`
}

// InitInput aggregates every input the engine's initialize pipeline
// consumes (§6).
type InitInput struct {
	MapID          string
	MapTimestampNS int64

	Geometry        []GeometryFeature
	NonwalkableSet  map[string]struct{}
	WalkableNodes   []NodeSeed
	ConnectorNodes  []NodeSeed
	EntranceNodes   []NodeSeed
	Connections     []ConnectionEntry
	NavigationFlags NavigationFlags
}

// QueryOptions configures a single FindRoute call.
type QueryOptions struct {
	AccessibleOnly     bool
	AvoidStairs        bool
	HeuristicWeight    float64
	Bidirectional      bool
	AllowLockedDoors   bool
	RoomTraversalMode  string // "public" (default), "strict", "all"
}

func (o QueryOptions) mode() string {
	if o.RoomTraversalMode == "" {
		return "public"
	}
	return o.RoomTraversalMode
}

// Route is the engine's query result (§3). QueryID correlates this route
// with the log line and metrics sample that produced it; it is stamped
// fresh on every FindRoute call, including cache hits, so a single route id
// always identifies one query, not one cached graph computation.
type Route struct {
	QueryID    string
	Path       []geo.Coord
	NodeIDs    []string
	Floors     []string
	Segments   []RouteSegment
	DistanceM  float64
	StartNode  string
	EndNode    string
	Warnings   []string
}

// RouteSegment mirrors astar.Segment in the engine's public vocabulary.
type RouteSegment struct {
	From, To    string
	FromCoords  geo.Coord
	ToCoords    geo.Coord
	DistanceM   float64
	FromFloor   string
	ToFloor     string
	FloorChange bool
}
