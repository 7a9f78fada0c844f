// Package astar implements priority-queue A* (and an optional bidirectional
// variant) over a graph.Graph, with pluggable accessibility, stairs, and
// room constraints.
package astar

import (
	"container/heap"

	"github.com/wayfynd/navcore/internal/geomkit"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

// crossFloorPenaltyM is the heuristic tie-breaker added when a candidate
// node's floor differs from the goal's. It never overestimates true cost:
// any real cross-floor traversal costs more than this once connector
// weights are accounted for.
const crossFloorPenaltyM = 10.0

// Options configures a single search.
type Options struct {
	AccessibleOnly     bool
	AvoidStairs        bool
	HeuristicWeight    float64 // default 1.0; >1 yields weighted (inadmissible) A*
	AllowedRoomIDs     map[string]struct{}
	DisallowOtherRooms bool
	NodeFilter         func(*graph.Node) bool
}

func (o Options) weight() float64 {
	if o.HeuristicWeight == 0 {
		return 1.0
	}
	return o.HeuristicWeight
}

// Segment is one hop of a reconstructed route.
type Segment struct {
	From, To       string
	FromCoords     geo.Coord
	ToCoords       geo.Coord
	DistanceM      float64
	FromFloor      string
	ToFloor        string
	FloorChange    bool
}

// Result is a reconstructed shortest path.
type Result struct {
	NodeIDs   []string
	Nodes     []*graph.Node
	Coords    []geo.Coord
	Floors    []string
	DistanceM float64
	Segments  []Segment
}

// FindPath runs single-directional A* from startID to goalID.
func FindPath(g *graph.Graph, startID, goalID string, opts Options) (*Result, bool) {
	goal, ok := g.Node(goalID)
	if !ok {
		return nil, false
	}
	if _, ok := g.Node(startID); !ok {
		return nil, false
	}

	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, &pqItem{nodeID: startID, f: heuristic(g, startID, goal, opts.weight())})

	gScore := map[string]float64{startID: 0}
	cameFrom := map[string]string{}
	closed := map[string]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*pqItem)
		if closed[current.nodeID] {
			continue
		}
		if current.nodeID == goalID {
			return reconstruct(g, cameFrom, startID, goalID), true
		}
		closed[current.nodeID] = true

		curG := gScore[current.nodeID]
		for _, e := range g.EdgesFrom(current.nodeID) {
			toNode, ok := g.Node(e.To)
			if !ok || closed[e.To] {
				continue
			}
			if !edgeAllowed(e, toNode, opts) {
				continue
			}
			tentativeG := curG + e.WeightM
			if existing, seen := gScore[e.To]; seen && tentativeG >= existing {
				continue
			}
			gScore[e.To] = tentativeG
			cameFrom[e.To] = current.nodeID
			f := tentativeG + heuristic(g, e.To, goal, opts.weight())
			heap.Push(open, &pqItem{nodeID: e.To, f: f})
		}
	}
	return nil, false
}

func edgeAllowed(e graph.Edge, toNode *graph.Node, opts Options) bool {
	if opts.AccessibleOnly && !e.Accessible {
		return false
	}
	if opts.AvoidStairs && e.Type == graph.EdgeStairs {
		return false
	}
	if opts.NodeFilter != nil && !opts.NodeFilter(toNode) {
		return false
	}
	if opts.DisallowOtherRooms && len(opts.AllowedRoomIDs) > 0 {
		if toNode.Type != graph.NodeDoor && toNode.Type != graph.NodeStairs && toNode.Type != graph.NodeElevator {
			if len(toNode.Metadata.RoomIDs) > 0 && !intersectsRoom(toNode.Metadata.RoomIDs, opts.AllowedRoomIDs) {
				return false
			}
		}
	}
	return true
}

func intersectsRoom(a, b map[string]struct{}) bool {
	for id := range a {
		if _, ok := b[id]; ok {
			return true
		}
	}
	return false
}

func heuristic(g *graph.Graph, fromID string, goal *graph.Node, weight float64) float64 {
	n, ok := g.Node(fromID)
	if !ok {
		return 0
	}
	h := geomkit.DistanceM(n.Coords, goal.Coords)
	if n.FloorID != goal.FloorID {
		h += crossFloorPenaltyM
	}
	return h * weight
}

func reconstruct(g *graph.Graph, cameFrom map[string]string, startID, goalID string) *Result {
	ids := []string{goalID}
	cur := goalID
	for cur != startID {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		ids = append(ids, prev)
		cur = prev
	}
	// reverse
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return buildResult(g, ids)
}

func buildResult(g *graph.Graph, ids []string) *Result {
	r := &Result{NodeIDs: ids}
	for _, id := range ids {
		n, _ := g.Node(id)
		r.Nodes = append(r.Nodes, n)
		r.Coords = append(r.Coords, n.Coords)
		r.Floors = append(r.Floors, n.FloorID)
	}
	for i := 0; i+1 < len(ids); i++ {
		a, b := r.Nodes[i], r.Nodes[i+1]
		dist := edgeWeightOrRecompute(g, a.ID, b.ID)
		r.Segments = append(r.Segments, Segment{
			From: a.ID, To: b.ID,
			FromCoords: a.Coords, ToCoords: b.Coords,
			DistanceM:   dist,
			FromFloor:   a.FloorID, ToFloor: b.FloorID,
			FloorChange: a.FloorID != b.FloorID,
		})
		r.DistanceM += dist
	}
	return r
}

func edgeWeightOrRecompute(g *graph.Graph, fromID, toID string) float64 {
	for _, e := range g.EdgesFrom(fromID) {
		if e.To == toID {
			return e.WeightM
		}
	}
	a, _ := g.Node(fromID)
	b, _ := g.Node(toID)
	return geomkit.DistanceM(a.Coords, b.Coords)
}

// --- priority queue ---

type pqItem struct {
	nodeID string
	f      float64
	index  int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].f < pq[j].f }
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}
func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
