package astar

import (
	"container/heap"
	"math"

	"github.com/wayfynd/navcore/internal/graph"
)

// side holds one direction's search state. Backward search treats g's
// outgoing edges as if reversed: because every visibility edge and nearly
// every connector edge is materialized bidirectionally with identical
// weight (§3), stepping via EdgesFrom from the backward frontier is
// equivalent to stepping via predecessors. A connector declared one-way
// would violate this and is out of scope for the bidirectional variant.
//
// Each side ranks its frontier by f = g + h·weight, same as FindPath. The
// termination test (best_meeting_distance <= forward_top + backward_top)
// is the standard meeting-in-the-middle bound for bidirectional Dijkstra,
// which is exact when weight == 1 (h admissible, top priority == g at
// convergence) and an approximation when heuristic_weight > 1, since the
// heuristic then skews "top priority" away from pure g. Callers that need
// a provably-optimal bidirectional result must use heuristic_weight == 1.
type side struct {
	open     *priorityQueue
	gScore   map[string]float64
	cameFrom map[string]string
	closed   map[string]bool
	target   *graph.Node // goal for the forward side, start for the backward side
}

func newSide(g *graph.Graph, startID string, target *graph.Node, weight float64) *side {
	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, &pqItem{nodeID: startID, f: heuristic(g, startID, target, weight)})
	return &side{
		open:     open,
		gScore:   map[string]float64{startID: 0},
		cameFrom: map[string]string{},
		closed:   map[string]bool{},
		target:   target,
	}
}

func (s *side) topPriority() float64 {
	if s.open.Len() == 0 {
		return math.Inf(1)
	}
	return (*s.open)[0].f
}

// BidirectionalFindPath alternates one expansion on each side, tracking the
// best meeting distance, and terminates once that distance can no longer
// improve: best_meeting_distance <= forward_top + backward_top. With
// heuristic_weight == 1 this is optimal; with heuristic_weight > 1 the
// result is a documented approximation (§4.7).
func BidirectionalFindPath(g *graph.Graph, startID, goalID string, opts Options) (*Result, bool) {
	start, okS := g.Node(startID)
	goal, okG := g.Node(goalID)
	if !okS || !okG {
		return nil, false
	}

	fwd := newSide(g, startID, goal, opts.weight())
	bwd := newSide(g, goalID, start, opts.weight())

	bestDist := math.Inf(1)
	var meetNode string
	found := false

	for fwd.open.Len() > 0 && bwd.open.Len() > 0 {
		if bestDist <= fwd.topPriority()+bwd.topPriority() {
			break
		}

		expandOne(g, fwd, bwd, opts, &bestDist, &meetNode, &found)
		expandOne(g, bwd, fwd, opts, &bestDist, &meetNode, &found)
	}

	if !found {
		return nil, false
	}
	return reconstructBidirectional(g, fwd, bwd, startID, goalID, meetNode), true
}

// expandOne pops and expands the top node of "this", updating bestDist/
// meetNode whenever the popped node already has a g-score on "other".
// Returns false without doing anything when this side's open set is empty.
func expandOne(g *graph.Graph, this, other *side, opts Options, bestDist *float64, meetNode *string, found *bool) bool {
	if this.open.Len() == 0 {
		return false
	}
	current := heap.Pop(this.open).(*pqItem)
	if this.closed[current.nodeID] {
		return true
	}
	this.closed[current.nodeID] = true

	if otherG, ok := other.gScore[current.nodeID]; ok {
		total := this.gScore[current.nodeID] + otherG
		if total < *bestDist {
			*bestDist = total
			*meetNode = current.nodeID
			*found = true
		}
	}

	curG := this.gScore[current.nodeID]
	for _, e := range g.EdgesFrom(current.nodeID) {
		toNode, ok := g.Node(e.To)
		if !ok || this.closed[e.To] {
			continue
		}
		if !edgeAllowed(e, toNode, opts) {
			continue
		}
		tentativeG := curG + e.WeightM
		if existing, seen := this.gScore[e.To]; seen && tentativeG >= existing {
			continue
		}
		this.gScore[e.To] = tentativeG
		this.cameFrom[e.To] = current.nodeID
		f := tentativeG + heuristic(g, e.To, this.target, opts.weight())
		heap.Push(this.open, &pqItem{nodeID: e.To, f: f})
	}
	return true
}

func reconstructBidirectional(g *graph.Graph, fwd, bwd *side, startID, goalID, meetNode string) *Result {
	var forwardHalf []string
	cur := meetNode
	for cur != startID {
		forwardHalf = append(forwardHalf, cur)
		prev, ok := fwd.cameFrom[cur]
		if !ok {
			break
		}
		cur = prev
	}
	forwardHalf = append(forwardHalf, startID)
	for i, j := 0, len(forwardHalf)-1; i < j; i, j = i+1, j-1 {
		forwardHalf[i], forwardHalf[j] = forwardHalf[j], forwardHalf[i]
	}

	var backwardHalf []string
	cur = meetNode
	for cur != goalID {
		prev, ok := bwd.cameFrom[cur]
		if !ok {
			break
		}
		backwardHalf = append(backwardHalf, prev)
		cur = prev
	}

	ids := append(forwardHalf, backwardHalf...)
	return buildResult(g, ids)
}
