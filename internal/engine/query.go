package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/wayfynd/navcore/internal/astar"
	"github.com/wayfynd/navcore/internal/collision"
	"github.com/wayfynd/navcore/internal/geomkit"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/internal/logger"
	"github.com/wayfynd/navcore/internal/roomdoor"
	perrors "github.com/wayfynd/navcore/pkg/errors"
	"github.com/wayfynd/navcore/pkg/geo"
)

// widenRadiusM is the default widening-radius fallback distance (§4.8 tier
// 3), roughly 0.002° at the equator.
const widenRadiusM = 200.0

// connector pairs a candidate graph node with its meter distance to the
// query endpoint it was resolved against.
type connector struct {
	node      *graph.Node
	distanceM float64
}

// FindRoute answers a single routing query per §4.8's layered protocol.
// On any failure it returns a *pkg/errors.RouteError, also retrievable
// afterward via GetLastRouteError.
func (e *Engine) FindRoute(ctx context.Context, start geo.Coord, startFloor string, end geo.Coord, endFloor string, opts QueryOptions) (*Route, error) {
	queryID := uuid.New().String()

	e.mu.RLock()
	if !e.initialized {
		e.mu.RUnlock()
		err := perrors.NewRoute(perrors.CodeNotInitialized, "engine has not completed initialize")
		e.setLastErr(err)
		return nil, err
	}
	g, det, rooms := e.graph, e.collision, e.rooms
	e.mu.RUnlock()

	key := e.routeCacheKey(start, startFloor, end, endFloor, opts)
	if cached, ok := e.routeCache.Get(key); ok {
		logger.Debug("query %s: cache hit for %s", queryID, key)
		route := *cached.(*Route)
		route.QueryID = queryID
		return &route, nil
	}

	startRoom, startInRoom := rooms.FindRoomAt(startFloor, start)
	endRoom, endInRoom := rooms.FindRoomAt(endFloor, end)

	if startInRoom && endInRoom && startFloor == endFloor && startRoom == endRoom && det.IsPathClear(start, end, startFloor) {
		route := trivialRoute(start, end, startFloor)
		e.routeCache.Put(key, route)
		cached := *route
		cached.QueryID = queryID
		return &cached, nil
	}

	startCandidates, err := buildCandidates(g, rooms, start, startFloor, opts.AllowLockedDoors)
	if err != nil {
		e.setLastErr(err)
		return nil, err
	}
	endCandidates, err := buildCandidates(g, rooms, end, endFloor, opts.AllowLockedDoors)
	if err != nil {
		e.setLastErr(err)
		return nil, err
	}

	startConns, startWarn, startBlocked := resolveConnectors(g, det, start, startFloor, startCandidates, startInRoom)
	endConns, endWarn, endBlocked := resolveConnectors(g, det, end, endFloor, endCandidates, endInRoom)
	if startBlocked || endBlocked {
		err := perrors.NewRoute(perrors.CodeBlocked, "no candidate endpoint connector clears even under relaxed clearance")
		e.setLastErr(err)
		return nil, err
	}

	searchOpts := buildAstarOpts(rooms, opts, startRoom, endRoom, startInRoom, endInRoom)
	best := searchBestPair(g, startConns, endConns, searchOpts, opts.Bidirectional)
	if best == nil && hasRoomConstraints(searchOpts) {
		relaxed := searchOpts
		relaxed.DisallowOtherRooms = false
		relaxed.AllowedRoomIDs = nil
		best = searchBestPair(g, startConns, endConns, relaxed, opts.Bidirectional)
	}
	if best == nil {
		err := perrors.NewRoute(perrors.CodeNoPath, "no path between any candidate endpoint pair")
		e.setLastErr(err)
		return nil, err
	}

	var warnings []string
	if startWarn {
		warnings = append(warnings, "start endpoint connector was not strictly clear; relaxed or fallback clearance used")
	}
	if endWarn {
		warnings = append(warnings, "end endpoint connector was not strictly clear; relaxed or fallback clearance used")
	}

	route := assembleRoute(start, startFloor, end, endFloor, best, warnings)
	e.routeCache.Put(key, route)
	cached := *route
	cached.QueryID = queryID
	return &cached, nil
}

func trivialRoute(start, end geo.Coord, floorID string) *Route {
	dist := geomkit.DistanceM(start, end)
	return &Route{
		Path:      []geo.Coord{start, end},
		Floors:    []string{floorID, floorID},
		DistanceM: dist,
		Segments: []RouteSegment{{
			FromCoords: start, ToCoords: end,
			DistanceM: dist, FromFloor: floorID, ToFloor: floorID,
		}},
	}
}

// buildCandidates returns start/end candidate nodes per §4.8 step 4: the
// nearest walkable nodes on the endpoint's floor, plus every usable door
// node of its room when that room is private. A private room whose doors
// are all locked (and allow_locked_doors is false) fails with no-door.
func buildCandidates(g *graph.Graph, rooms *roomdoor.Model, p geo.Coord, floorID string, allowLocked bool) ([]*graph.Node, *perrors.RouteError) {
	nearest := g.NearestNodes(floorID, p, 5, widenRadiusM, 3, func(n *graph.Node) bool {
		return n.Type == graph.NodeWalkable
	})
	candidates := append([]*graph.Node{}, nearest...)

	roomID, inRoom := rooms.FindRoomAt(floorID, p)
	if !inRoom || rooms.IsPublicRoom(roomID) {
		return candidates, nil
	}

	var sawDoor, sawUsable bool
	for _, doorID := range rooms.DoorsInRoom(roomID) {
		n, ok := g.Node(doorID)
		if !ok {
			continue
		}
		sawDoor = true
		if !n.Metadata.IsLocked || allowLocked {
			candidates = append(candidates, n)
			sawUsable = true
		}
	}
	if sawDoor && !sawUsable {
		return nil, perrors.NewRoute(perrors.CodeNoDoor, fmt.Sprintf("room %s has no usable door", roomID))
	}
	return candidates, nil
}

// resolveConnectors filters candidates to those the endpoint has clear
// line of sight to, falling through the five fallback tiers of §4.8 step
// 5. The second return value reports whether a tier below strict
// clearance had to be used (route-level warning); the third reports total
// failure (blocked).
func resolveConnectors(g *graph.Graph, det *collision.Detector, p geo.Coord, floorID string, candidates []*graph.Node, inRoom bool) ([]connector, bool, bool) {
	if out := filterConnectors(det, p, floorID, candidates, det.IsPathClear); len(out) > 0 {
		return out, false, false
	}
	if out := filterConnectors(det, p, floorID, candidates, det.IsPathClearRelaxed); len(out) > 0 {
		return out, true, false
	}
	if inRoom {
		var out []connector
		for _, n := range candidates {
			if n.Type == graph.NodeDoor {
				out = append(out, connector{node: n, distanceM: geomkit.DistanceM(p, n.Coords)})
			}
		}
		if len(out) > 0 {
			return out, true, false
		}
	}
	wide := g.NearestNodes(floorID, p, widenRadiusM, widenRadiusM, 10, func(n *graph.Node) bool {
		return n.Type == graph.NodeWalkable
	})
	if out := filterConnectors(det, p, floorID, wide, det.IsPathClearRelaxed); len(out) > 0 {
		return out, true, false
	}
	if nearest := g.NearestNodes(floorID, p, 5, widenRadiusM*5, 1, nil); len(nearest) > 0 {
		n := nearest[0]
		return []connector{{node: n, distanceM: geomkit.DistanceM(p, n.Coords)}}, true, false
	}
	return nil, true, true
}

func filterConnectors(det *collision.Detector, p geo.Coord, floorID string, candidates []*graph.Node, clear func(geo.Coord, geo.Coord, string) bool) []connector {
	var out []connector
	for _, n := range candidates {
		if clear(p, n.Coords, floorID) {
			out = append(out, connector{node: n, distanceM: geomkit.DistanceM(p, n.Coords)})
		}
	}
	return out
}

func buildAstarOpts(rooms *roomdoor.Model, opts QueryOptions, startRoom, endRoom string, startInRoom, endInRoom bool) astar.Options {
	a := astar.Options{
		AccessibleOnly:  opts.AccessibleOnly,
		AvoidStairs:     opts.AvoidStairs,
		HeuristicWeight: opts.HeuristicWeight,
	}
	if opts.mode() == "all" {
		return a
	}

	allowed := map[string]struct{}{}
	if startInRoom {
		allowed[startRoom] = struct{}{}
	}
	if endInRoom {
		allowed[endRoom] = struct{}{}
	}
	if opts.mode() == "public" {
		for _, id := range rooms.RoomIDs() {
			if rooms.IsPublicRoom(id) {
				allowed[id] = struct{}{}
			}
		}
	}
	a.DisallowOtherRooms = true
	a.AllowedRoomIDs = allowed
	return a
}

func hasRoomConstraints(o astar.Options) bool {
	return o.DisallowOtherRooms && len(o.AllowedRoomIDs) > 0
}

type bestPair struct {
	result    *astar.Result
	startConn connector
	endConn   connector
	total     float64
}

// searchBestPair runs A* between every (start, end) candidate pair, keeping
// the combination with minimum indoor_distance + start_connector_distance +
// end_connector_distance (§4.8 step 6).
func searchBestPair(g *graph.Graph, starts, ends []connector, opts astar.Options, bidirectional bool) *bestPair {
	var best *bestPair
	for _, sc := range starts {
		for _, ec := range ends {
			var result *astar.Result
			var ok bool
			if bidirectional {
				result, ok = astar.BidirectionalFindPath(g, sc.node.ID, ec.node.ID, opts)
			} else {
				result, ok = astar.FindPath(g, sc.node.ID, ec.node.ID, opts)
			}
			if !ok {
				continue
			}
			total := sc.distanceM + result.DistanceM + ec.distanceM
			if best == nil || total < best.total {
				best = &bestPair{result: result, startConn: sc, endConn: ec, total: total}
			}
		}
	}
	return best
}

// assembleRoute prepends the raw start coord and appends the raw end coord
// to the graph-internal path, reconstructing a floors slice of matching
// length (§4.8 step 7). Missing middle floor entries never arise here since
// astar.Result.Floors already carries one entry per node.
func assembleRoute(start geo.Coord, startFloor string, end geo.Coord, endFloor string, best *bestPair, warnings []string) *Route {
	path := make([]geo.Coord, 0, len(best.result.Coords)+2)
	floors := make([]string, 0, len(best.result.Floors)+2)

	path = append(path, start)
	floors = append(floors, startFloor)
	path = append(path, best.result.Coords...)
	floors = append(floors, best.result.Floors...)
	path = append(path, end)
	floors = append(floors, endFloor)

	segments := make([]RouteSegment, 0, len(best.result.Segments)+2)
	segments = append(segments, RouteSegment{
		To:          best.startConn.node.ID,
		FromCoords:  start,
		ToCoords:    best.startConn.node.Coords,
		DistanceM:   best.startConn.distanceM,
		FromFloor:   startFloor,
		ToFloor:     best.startConn.node.FloorID,
		FloorChange: startFloor != best.startConn.node.FloorID,
	})
	for _, s := range best.result.Segments {
		segments = append(segments, RouteSegment{
			From: s.From, To: s.To,
			FromCoords: s.FromCoords, ToCoords: s.ToCoords,
			DistanceM:   s.DistanceM,
			FromFloor:   s.FromFloor,
			ToFloor:     s.ToFloor,
			FloorChange: s.FloorChange,
		})
	}
	segments = append(segments, RouteSegment{
		From:        best.endConn.node.ID,
		FromCoords:  best.endConn.node.Coords,
		ToCoords:    end,
		DistanceM:   best.endConn.distanceM,
		FromFloor:   best.endConn.node.FloorID,
		ToFloor:     endFloor,
		FloorChange: best.endConn.node.FloorID != endFloor,
	})

	return &Route{
		Path:      path,
		NodeIDs:   best.result.NodeIDs,
		Floors:    floors,
		Segments:  segments,
		DistanceM: best.startConn.distanceM + best.result.DistanceM + best.endConn.distanceM,
		StartNode: best.startConn.node.ID,
		EndNode:   best.endConn.node.ID,
		Warnings:  warnings,
	}
}

// routeCacheKey rounds coordinates to ~1m grid cells before composing the
// key, per §4.8 step 1.
func (e *Engine) routeCacheKey(start geo.Coord, startFloor string, end geo.Coord, endFloor string, opts QueryOptions) string {
	rs := round1m(start)
	re := round1m(end)
	return fmt.Sprintf("route:%.6f,%.6f@%s->%.6f,%.6f@%s|acc=%v|mode=%s|pdc=%d|pa=%.1f",
		rs.Lng, rs.Lat, startFloor, re.Lng, re.Lat, endFloor,
		opts.AccessibleOnly, opts.mode(),
		e.cfg.Room.PublicDoorThreshold, e.cfg.Room.PublicAreaM2)
}

func round1m(c geo.Coord) geo.Coord {
	const metersPerDegLat = 111320.0
	latStep := 1.0 / metersPerDegLat
	lngStep := 1.0 / (metersPerDegLat * math.Cos(c.Lat*math.Pi/180))
	return geo.Coord{
		Lat: math.Round(c.Lat/latStep) * latStep,
		Lng: math.Round(c.Lng/lngStep) * lngStep,
	}
}
