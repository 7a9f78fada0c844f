// Package edgebuilder constructs per-floor visibility edges: for every node,
// find nearby candidates, oversample before filtering by line-of-sight (a
// hard early cutoff fragments the graph when the nearest few neighbors are
// all wall-blocked), and accept the first max_neighbors that pass in
// ascending distance order.
package edgebuilder

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/wayfynd/navcore/internal/collision"
	"github.com/wayfynd/navcore/internal/geomkit"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

// Options configures a single build pass. Zero value is invalid; use
// DefaultOptions or DefaultOptionsFor(nodeCount).
type Options struct {
	MaxDistanceM   float64
	MaxNeighbors   int
	OversampleMult int
	YieldEvery     int
	YieldAfter     time.Duration
}

// DefaultOptions returns the small-graph defaults from §4.4.
func DefaultOptions() Options {
	return Options{MaxDistanceM: 15, MaxNeighbors: 8, OversampleMult: 6, YieldEvery: 10, YieldAfter: 12 * time.Millisecond}
}

// DefaultOptionsFor returns the tightened large-graph defaults when
// nodeCount exceeds the §4.4 threshold of 8000 nodes.
func DefaultOptionsFor(nodeCount int) Options {
	if nodeCount > 8000 {
		return Options{MaxDistanceM: 8, MaxNeighbors: 6, OversampleMult: 6, YieldEvery: 10, YieldAfter: 12 * time.Millisecond}
	}
	return DefaultOptions()
}

// StatusFunc is invoked once per completed floor.
type StatusFunc func(floorIndex int, floorID string, edgeCount int)

// Builder constructs visibility edges over a graph using a collision
// detector for line-of-sight tests.
type Builder struct {
	detector *collision.Detector
	opts     Options
}

// New returns a Builder bound to detector with opts.
func New(detector *collision.Detector, opts Options) *Builder {
	return &Builder{detector: detector, opts: opts}
}

// Build populates g with bidirectional walkable edges for every floor,
// cooperatively yielding to ctx between batches of nodes. status, if
// non-nil, is called once per completed floor.
func (b *Builder) Build(ctx context.Context, g *graph.Graph, status StatusFunc) error {
	floors := g.Floors()
	for floorIdx, floorID := range floors {
		count, err := b.buildFloor(ctx, g, floorID)
		if err != nil {
			return err
		}
		if status != nil {
			status(floorIdx, floorID, count)
		}
	}
	return nil
}

func (b *Builder) buildFloor(ctx context.Context, g *graph.Graph, floorID string) (int, error) {
	ids := g.FloorNodeIDs(floorID)

	edgeCount := 0
	processed := 0
	lastYield := time.Now()

	for _, aID := range ids {
		a, _ := g.Node(aID)
		candidates := b.queryCandidates(g, a, ids)
		accepted := 0
		for _, c := range candidates {
			if accepted >= b.opts.MaxNeighbors {
				break
			}
			if c.ID <= a.ID {
				continue // only the lexicographically-larger id emits, the other direction comes free
			}
			dist := geomkit.DistanceM(a.Coords, c.Coords)
			if dist > b.opts.MaxDistanceM {
				continue
			}
			if !b.detector.IsPathClear(a.Coords, c.Coords, floorID) {
				continue
			}
			g.AddBidirectionalEdge(a.ID, c.ID, dist, graph.EdgeWalkable, true)
			edgeCount += 2
			accepted++
		}

		processed++
		if b.shouldYield(processed, lastYield) {
			select {
			case <-ctx.Done():
				return edgeCount, ctx.Err()
			default:
			}
			lastYield = time.Now()
		}
	}
	return edgeCount, nil
}

func (b *Builder) shouldYield(processed int, lastYield time.Time) bool {
	if b.opts.YieldEvery > 0 && processed%b.opts.YieldEvery == 0 {
		return true
	}
	return b.opts.YieldAfter > 0 && time.Since(lastYield) >= b.opts.YieldAfter
}

type candidate struct {
	ID     string
	Coords geo.Coord
	sqDeg  float64
}

// queryCandidates returns up to K = max(max_neighbors, oversampleMult *
// max_neighbors) candidates around a, nearest-first in squared-degree
// distance, via the spatial index when present or a linear bbox filter
// otherwise.
func (b *Builder) queryCandidates(g *graph.Graph, a *graph.Node, allIDs []string) []candidate {
	k := b.opts.MaxNeighbors
	if oversampled := b.opts.OversampleMult * b.opts.MaxNeighbors; oversampled > k {
		k = oversampled
	}

	dLat := metersToLatDeg(b.opts.MaxDistanceM)
	dLng := metersToLngDeg(b.opts.MaxDistanceM, a.Coords.Lat)
	box := geo.BBox{
		MinLng: a.Coords.Lng - dLng, MaxLng: a.Coords.Lng + dLng,
		MinLat: a.Coords.Lat - dLat, MaxLat: a.Coords.Lat + dLat,
	}

	var pool []candidate
	if sidx, ok := g.SpatialIndex(a.FloorID); ok {
		for _, it := range sidx.Query(box) {
			if it.ID == a.ID {
				continue
			}
			pool = append(pool, candidate{ID: it.ID, Coords: it.Coords, sqDeg: sqDegDist(a.Coords, it.Coords)})
		}
	} else {
		for _, id := range allIDs {
			if id == a.ID {
				continue
			}
			n, _ := g.Node(id)
			if !box.Contains(n.Coords) {
				continue
			}
			pool = append(pool, candidate{ID: id, Coords: n.Coords, sqDeg: sqDegDist(a.Coords, n.Coords)})
		}
	}

	sort.Slice(pool, func(i, j int) bool { return pool[i].sqDeg < pool[j].sqDeg })
	if len(pool) > k {
		pool = pool[:k]
	}
	return pool
}

func sqDegDist(a, b geo.Coord) float64 {
	dLng, dLat := a.Lng-b.Lng, a.Lat-b.Lat
	return dLng*dLng + dLat*dLat
}

func metersToLatDeg(meters float64) float64 {
	return meters / 111320.0
}

func metersToLngDeg(meters, atLatDeg float64) float64 {
	cos := math.Cos(atLatDeg * math.Pi / 180)
	if cos < 1e-6 {
		cos = 1e-6
	}
	return meters / (111320.0 * cos)
}
