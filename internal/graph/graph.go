// Package graph holds the routing graph's arena: nodes referenced by stable
// string ids (never by pointer), directed weighted edges, a per-floor
// partition, and a per-floor spatial index for nearest-node queries. The
// Graph owns every Node; adjacency lives in edges_out, not embedded in the
// node itself, so the cached edge format stays trivially serializable.
package graph

import (
	"sort"

	"github.com/wayfynd/navcore/internal/geomkit"
	"github.com/wayfynd/navcore/internal/spatialindex"
	"github.com/wayfynd/navcore/pkg/geo"
)

// NodeType enumerates the kinds of node the engine reasons about.
type NodeType string

const (
	NodeWalkable NodeType = "walkable"
	NodeEntrance NodeType = "entrance"
	NodeDoor     NodeType = "door"
	NodeStairs   NodeType = "stairs"
	NodeElevator NodeType = "elevator"
	NodeWaypoint NodeType = "waypoint"
)

// EdgeType enumerates the kinds of edge the graph carries.
type EdgeType string

const (
	EdgeWalkable  EdgeType = "walkable"
	EdgeDoorLink  EdgeType = "door-link"
	EdgeStairs    EdgeType = "stairs"
	EdgeElevator  EdgeType = "elevator"
	EdgeEscalator EdgeType = "escalator"
)

// Metadata carries the per-node flags and ownership sets described in §3.
type Metadata struct {
	GeometryIDs map[string]struct{}
	RoomIDs     map[string]struct{}
	IsDoor      bool
	IsPublic    bool
	IsLocked    bool
	IsStairs    bool
	IsElevator  bool
	Accessible  bool
}

// NewMetadata returns an initialized, empty Metadata.
func NewMetadata() Metadata {
	return Metadata{GeometryIDs: map[string]struct{}{}, RoomIDs: map[string]struct{}{}}
}

// Node is immutable after graph build except for RoomIDs, which
// tag_nodes_with_rooms assigns in a dedicated late-bound pass (see §9
// "Room assignment late-bound").
type Node struct {
	ID       string
	Coords   geo.Coord
	FloorID  string
	Type     NodeType
	Metadata Metadata
}

// Edge is a directed, weighted graph edge.
type Edge struct {
	From       string
	To         string
	WeightM    float64
	Type       EdgeType
	Accessible bool
}

// Graph is the routing graph's arena.
type Graph struct {
	nodes    map[string]*Node
	edgesOut map[string][]Edge
	perFloor map[string]map[string]struct{}
	spatial  map[string]*spatialindex.Index
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		edgesOut: make(map[string][]Edge),
		perFloor: make(map[string]map[string]struct{}),
		spatial:  make(map[string]*spatialindex.Index),
	}
}

// AddNode inserts (or replaces) a node. Re-adding an id is a no-op for the
// spatial index if the node already existed, since build only ever adds
// each node once during initialize.
func (g *Graph) AddNode(n Node) {
	if _, exists := g.nodes[n.ID]; !exists {
		if g.perFloor[n.FloorID] == nil {
			g.perFloor[n.FloorID] = make(map[string]struct{})
		}
		g.perFloor[n.FloorID][n.ID] = struct{}{}
	}
	g.nodes[n.ID] = &n
}

// Node returns the node for id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in the graph (unordered).
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// FloorNodeIDs returns the node ids on a floor.
func (g *Graph) FloorNodeIDs(floorID string) []string {
	set := g.perFloor[floorID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Floors returns every known floor id.
func (g *Graph) Floors() []string {
	out := make([]string, 0, len(g.perFloor))
	for f := range g.perFloor {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// AddEdge appends a directed edge. Callers wanting the bidirectional pair
// required for visibility edges call this twice (see EdgeBuilder).
func (g *Graph) AddEdge(e Edge) {
	g.edgesOut[e.From] = append(g.edgesOut[e.From], e)
}

// AddBidirectionalEdge materializes both directions with identical weight,
// the default for visibility and connector edges per §3.
func (g *Graph) AddBidirectionalEdge(from, to string, weightM float64, typ EdgeType, accessible bool) {
	g.AddEdge(Edge{From: from, To: to, WeightM: weightM, Type: typ, Accessible: accessible})
	g.AddEdge(Edge{From: to, To: from, WeightM: weightM, Type: typ, Accessible: accessible})
}

// EdgesFrom returns the outgoing edges of id.
func (g *Graph) EdgesFrom(id string) []Edge {
	return g.edgesOut[id]
}

// EdgeCount returns the degree (outgoing) of id, used to detect orphan
// door nodes per §4.5.
func (g *Graph) EdgeCount(id string) int {
	return len(g.edgesOut[id])
}

// AllEdges returns every directed edge in the graph (unordered). Used by
// callers that need a flat snapshot, e.g. to serialize visibility edges
// into the content-addressed cache.
func (g *Graph) AllEdges() []Edge {
	var out []Edge
	for _, edges := range g.edgesOut {
		out = append(out, edges...)
	}
	return out
}

// BuildSpatialIndex (re)builds the per-floor spatial index from the current
// node set. Called once per floor after all nodes for that floor are known.
func (g *Graph) BuildSpatialIndex(floorID string) {
	ids := g.FloorNodeIDs(floorID)
	items := make([]spatialindex.Item, 0, len(ids))
	for _, id := range ids {
		n := g.nodes[id]
		items = append(items, spatialindex.Item{ID: id, Coords: n.Coords})
	}
	g.spatial[floorID] = spatialindex.New(items)
}

// SpatialIndex returns the floor's spatial index, if built.
func (g *Graph) SpatialIndex(floorID string) (*spatialindex.Index, bool) {
	idx, ok := g.spatial[floorID]
	return idx, ok
}

// NearestNodes returns up to limit nodes on floorID within an expanding
// radius search starting at startRadiusM and doubling up to maxRadiusM,
// sorted by ascending distance to p. Used by anchor-selection fallbacks
// in PathfindingEngine.
func (g *Graph) NearestNodes(floorID string, p geo.Coord, startRadiusM, maxRadiusM float64, limit int, accept func(*Node) bool) []*Node {
	idx, ok := g.spatial[floorID]
	if !ok {
		return g.linearNearest(floorID, p, maxRadiusM, limit, accept)
	}

	radius := startRadiusM
	var best []*Node
	for radius <= maxRadiusM {
		box := degreeBoxAround(p, radius)
		hits := idx.Query(box)
		best = best[:0]
		for _, h := range hits {
			n := g.nodes[h.ID]
			if n == nil || (accept != nil && !accept(n)) {
				continue
			}
			if geomkit.DistanceM(p, n.Coords) <= radius {
				best = append(best, n)
			}
		}
		if len(best) >= limit || radius >= maxRadiusM {
			break
		}
		radius *= 2
		if radius > maxRadiusM {
			radius = maxRadiusM
		}
	}
	sort.Slice(best, func(i, j int) bool {
		return geomkit.DistanceM(p, best[i].Coords) < geomkit.DistanceM(p, best[j].Coords)
	})
	if len(best) > limit {
		best = best[:limit]
	}
	return best
}

func (g *Graph) linearNearest(floorID string, p geo.Coord, maxRadiusM float64, limit int, accept func(*Node) bool) []*Node {
	var cands []*Node
	for _, id := range g.FloorNodeIDs(floorID) {
		n := g.nodes[id]
		if accept != nil && !accept(n) {
			continue
		}
		if geomkit.DistanceM(p, n.Coords) <= maxRadiusM {
			cands = append(cands, n)
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		return geomkit.DistanceM(p, cands[i].Coords) < geomkit.DistanceM(p, cands[j].Coords)
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}

func degreeBoxAround(p geo.Coord, radiusM float64) geo.BBox {
	d := radiusM / 111320.0 * 1.5 // generous degree-conversion slack; exact filtering happens by meter distance afterward
	return geo.BBox{MinLng: p.Lng - d, MinLat: p.Lat - d, MaxLng: p.Lng + d, MaxLat: p.Lat + d}
}
