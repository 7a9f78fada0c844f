// Package connections stitches floors together: stairs, elevators, and
// escalators each connect a connector node across the floors they serve.
package connections

import (
	"github.com/wayfynd/navcore/internal/geomkit"
	"github.com/wayfynd/navcore/internal/graph"
)

// Kind is the type of cross-floor connector.
type Kind string

const (
	KindStairs    Kind = "stairs"
	KindElevator  Kind = "elevator"
	KindEscalator Kind = "escalator"
)

// Endpoint names a connector's node on one floor.
type Endpoint struct {
	NodeID  string
	FloorID string
}

// Entry is one row of the connections table for a stairs/elevator/
// escalator connector, naming its node on every floor it serves.
type Entry struct {
	Kind      Kind
	Endpoints []Endpoint
}

// verticalTravelM is the per-type additive weight, in the absence of real
// elevation data, that disincentivizes gratuitous floor changes (§4.6).
const verticalTravelM = 5.0

// edgeType maps a connector Kind to its graph.EdgeType.
func edgeType(k Kind) graph.EdgeType {
	switch k {
	case KindStairs:
		return graph.EdgeStairs
	case KindElevator:
		return graph.EdgeElevator
	default:
		return graph.EdgeEscalator
	}
}

// accessible reports whether a connector of this kind is accessible:
// elevators are, stairs are not. Escalators are treated as accessible
// (ambulatory-only, but not a wheelchair blocker the spec calls out).
func accessible(k Kind) bool {
	return k != KindStairs
}

// Apply emits bidirectional edges between every pair of endpoints for each
// entry, weighted by geodesic distance plus the per-type vertical-travel
// constant.
func Apply(g *graph.Graph, entries []Entry) {
	for _, e := range entries {
		typ := edgeType(e.Kind)
		acc := accessible(e.Kind)
		for i := 0; i < len(e.Endpoints); i++ {
			for j := i + 1; j < len(e.Endpoints); j++ {
				a, okA := g.Node(e.Endpoints[i].NodeID)
				b, okB := g.Node(e.Endpoints[j].NodeID)
				if !okA || !okB {
					continue
				}
				weight := geomkit.DistanceM(a.Coords, b.Coords) + verticalTravelM
				g.AddBidirectionalEdge(a.ID, b.ID, weight, typ, acc)
			}
		}
	}
}
