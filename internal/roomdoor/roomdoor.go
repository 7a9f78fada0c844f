// Package roomdoor builds the room index, door nodes, and the room<->door
// relationship the engine uses to enforce "you must leave a room through one
// of its doors." Rooms are buffered polygons; doors are graph nodes created
// from connection/entrance records, OR-merging flags across duplicate
// entrance rows naming the same geometry.
package roomdoor

import (
	"math"

	"github.com/wayfynd/navcore/internal/collision"
	"github.com/wayfynd/navcore/internal/geomkit"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/pkg/geo"
)

// Room is a buffered room polygon indexed by geometry id.
type Room struct {
	GeometryID string
	FloorID    string
	Feature    geo.Feature
	Buffered   geo.Polygon
	BBox       geo.BBox
}

// Meta is the area/door-count summary used to classify a room public vs
// private.
type Meta struct {
	AreaM2          float64
	DoorCount       int
	PublicDoorCount int
}

// Entrance is one row of the connections table describing a door's
// placement on a floor, OR-merged by geometry id into a single door node.
type Entrance struct {
	GeometryID string
	FloorID    string
	Feature    geo.Feature
	Flags      uint64
}

// Config carries the thresholds from §3/§4.5.
type Config struct {
	PublicDoorThreshold int // P
	PublicAreaM2        float64
	RoomBufferM         float64
	OrphanDoorLinkM     float64
	PublicBit           int
	HasPublicBit        bool
}

// DefaultConfig returns the spec defaults: P=2, A=80m², room buffer 0.3m,
// orphan door link radius 6m.
func DefaultConfig() Config {
	return Config{PublicDoorThreshold: 2, PublicAreaM2: 80, RoomBufferM: 0.3, OrphanDoorLinkM: 6, PublicBit: 0, HasPublicBit: false}
}

// Model owns the room index, per-room metadata, and the room<->door
// adjacency built during initialization.
type Model struct {
	cfg Config

	rooms    map[string]*Room   // geometryID -> room
	byFloor  map[string][]*Room // floorID -> rooms on that floor
	meta     map[string]*Meta   // geometryID -> meta
	roomDrs  map[string]map[string]struct{} // room geometryID -> door node ids
	doorRms  map[string]map[string]struct{} // door node id -> room geometryIDs
}

// New returns an empty Model.
func New(cfg Config) *Model {
	return &Model{
		cfg:     cfg,
		rooms:   make(map[string]*Room),
		byFloor: make(map[string][]*Room),
		meta:    make(map[string]*Meta),
		roomDrs: make(map[string]map[string]struct{}),
		doorRms: make(map[string]map[string]struct{}),
	}
}

// AddRoom registers a room-kind geometry feature. Non Polygon/MultiPolygon
// features are ignored; buffering failures drop the room per §4.1.
// geomkit.Buffer does not buffer MultiPolygon geometry, so a MultiPolygon
// room is always dropped this way; only Polygon rooms are indexed.
func (m *Model) AddRoom(geometryID, floorID string, feature geo.Feature) {
	if feature.Polygon == nil && feature.MultiPolygon == nil {
		return
	}
	buffered, ok := geomkit.Buffer(feature, m.cfg.RoomBufferM)
	if !ok {
		geomkit.LogGeometryFailure("roomdoor.buffer:"+geometryID, nil)
		return
	}
	room := &Room{
		GeometryID: geometryID,
		FloorID:    floorID,
		Feature:    feature,
		Buffered:   buffered,
		BBox:       geomkit.BBox(geo.Feature{Polygon: &buffered}),
	}
	m.rooms[geometryID] = room
	m.byFloor[floorID] = append(m.byFloor[floorID], room)
	m.meta[geometryID] = &Meta{AreaM2: polygonAreaM2(feature)}
}

// BuildDoorNodes groups entrances by geometry id, creates one door node per
// group with OR-merged flags, adds it to g, and registers linestring/
// multilinestring door geometry with detector so wall crossings near the
// door are forgiven.
func (m *Model) BuildDoorNodes(g *graph.Graph, entrances []Entrance, detector *collision.Detector) {
	type group struct {
		floorID string
		feature geo.Feature
		flags   uint64
	}
	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, e := range entrances {
		grp, ok := groups[e.GeometryID]
		if !ok {
			grp = &group{floorID: e.FloorID, feature: e.Feature}
			groups[e.GeometryID] = grp
			order = append(order, e.GeometryID)
		}
		grp.flags |= e.Flags
	}

	doorSegs := make(map[string]map[string]geo.LineString)
	for _, geometryID := range order {
		grp := groups[geometryID]
		pos, ok := featureCenter(grp.feature)
		if !ok {
			geomkit.LogGeometryFailure("roomdoor.door-center:"+geometryID, nil)
			continue
		}

		isPublic := true
		if m.cfg.HasPublicBit {
			isPublic = grp.flags&(1<<uint(m.cfg.PublicBit)) != 0
		}

		meta := graph.NewMetadata()
		meta.IsDoor = true
		meta.IsPublic = isPublic
		meta.IsLocked = !isPublic
		meta.GeometryIDs[geometryID] = struct{}{}

		nodeID := "door_" + geometryID
		g.AddNode(graph.Node{
			ID:       nodeID,
			Coords:   pos,
			FloorID:  grp.floorID,
			Type:     graph.NodeDoor,
			Metadata: meta,
		})

		if grp.feature.LineString != nil || len(grp.feature.MultiLineString) > 0 {
			if doorSegs[grp.floorID] == nil {
				doorSegs[grp.floorID] = make(map[string]geo.LineString)
			}
			if grp.feature.LineString != nil {
				doorSegs[grp.floorID][geometryID] = grp.feature.LineString
			} else {
				doorSegs[grp.floorID][geometryID] = geomkit.LongestSubline(grp.feature.MultiLineString)
			}
		}
	}

	for floorID, segs := range doorSegs {
		detector.SetDoorSegments(floorID, segs)
	}
}

func featureCenter(f geo.Feature) (geo.Coord, bool) {
	switch {
	case f.Point != nil:
		return *f.Point, true
	case f.LineString != nil:
		return geomkit.Midpoint(f.LineString), true
	case len(f.MultiLineString) > 0:
		return geomkit.Midpoint(geomkit.LongestSubline(f.MultiLineString)), true
	case f.Polygon != nil, f.MultiPolygon != nil:
		return geomkit.Centroid(f), true
	default:
		return geo.Coord{}, false
	}
}

func polygonAreaM2(f geo.Feature) float64 {
	// Approximate: convert degree-space shoelace area to square meters using
	// the local meters-per-degree scale at the feature's centroid latitude.
	c := geomkit.Centroid(f)
	const metersPerDegLat = 111320.0
	metersPerDegLng := metersPerDegLat * math.Cos(c.Lat*math.Pi/180)

	area := 0.0
	switch {
	case f.Polygon != nil:
		area = ringAreaDeg(f.Polygon.Rings[0])
	case f.MultiPolygon != nil:
		for _, p := range f.MultiPolygon.Polygons {
			area += ringAreaDeg(p.Rings[0])
		}
	}
	return area * metersPerDegLat * metersPerDegLng
}

func ringAreaDeg(ring geo.Ring) float64 {
	sum := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].Lng*ring[j].Lat - ring[j].Lng*ring[i].Lat
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// IndexRoomsDoors finds, for each door node in g, every room on its floor
// whose buffered polygon contains the door's coordinate, records it on the
// door's metadata.RoomIDs, and indexes the door under each room.
func (m *Model) IndexRoomsDoors(g *graph.Graph) {
	for _, n := range g.Nodes() {
		if n.Type != graph.NodeDoor {
			continue
		}
		for _, room := range m.byFloor[n.FloorID] {
			if !room.BBox.Contains(n.Coords) {
				continue
			}
			if !geomkit.PointInPolygon(n.Coords, room.Buffered) {
				continue
			}
			n.Metadata.RoomIDs[room.GeometryID] = struct{}{}
			m.linkRoomDoor(room.GeometryID, n.ID)
		}
	}
}

func (m *Model) linkRoomDoor(roomID, doorNodeID string) {
	if m.roomDrs[roomID] == nil {
		m.roomDrs[roomID] = make(map[string]struct{})
	}
	m.roomDrs[roomID][doorNodeID] = struct{}{}
	if m.doorRms[doorNodeID] == nil {
		m.doorRms[doorNodeID] = make(map[string]struct{})
	}
	m.doorRms[doorNodeID][roomID] = struct{}{}
}

// ComputeMeta fills door_count/public_door_count for every room from the
// room<->door index built by IndexRoomsDoors.
func (m *Model) ComputeMeta(g *graph.Graph) {
	for roomID, doorIDs := range m.roomDrs {
		meta := m.meta[roomID]
		if meta == nil {
			continue
		}
		meta.DoorCount = len(doorIDs)
		public := 0
		for doorID := range doorIDs {
			if n, ok := g.Node(doorID); ok && n.Metadata.IsPublic {
				public++
			}
		}
		meta.PublicDoorCount = public
	}
}

// RoomIDs returns every known room geometry id.
func (m *Model) RoomIDs() []string {
	out := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		out = append(out, id)
	}
	return out
}

// DoorsInRoom returns the door node ids indexed under roomID.
func (m *Model) DoorsInRoom(roomID string) []string {
	set := m.roomDrs[roomID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// IsPublicRoom classifies a room public iff public_door_count >= P or
// door_count >= max(2, P) or area_m2 >= A.
func (m *Model) IsPublicRoom(geometryID string) bool {
	meta := m.meta[geometryID]
	if meta == nil {
		return true // unknown room id: treat as unrestricted
	}
	p := m.cfg.PublicDoorThreshold
	minDoors := p
	if minDoors < 2 {
		minDoors = 2
	}
	return meta.PublicDoorCount >= p || meta.DoorCount >= minDoors || meta.AreaM2 >= m.cfg.PublicAreaM2
}

// FindRoomAt returns the geometry id of the room on floorID containing p,
// if any.
func (m *Model) FindRoomAt(floorID string, p geo.Coord) (string, bool) {
	for _, room := range m.byFloor[floorID] {
		if !room.BBox.Contains(p) {
			continue
		}
		if geomkit.PointInPolygon(p, room.Buffered) {
			return room.GeometryID, true
		}
	}
	return "", false
}

// TagWalkableNodes assigns room_ids to every non-door node lacking them,
// when its coord lies in a room's buffered polygon. Public corridors
// typically lie in no room and remain unrestricted.
func (m *Model) TagWalkableNodes(g *graph.Graph) {
	for _, n := range g.Nodes() {
		if n.Type == graph.NodeDoor || len(n.Metadata.RoomIDs) > 0 {
			continue
		}
		if roomID, ok := m.FindRoomAt(n.FloorID, n.Coords); ok {
			n.Metadata.RoomIDs[roomID] = struct{}{}
		}
	}
}

// ConnectOrphanDoors links any door node with zero outgoing edges to its
// nearest node within the configured radius on the same floor, preferring
// a node with clear line-of-sight; falls back to the unconditionally
// nearest node within radius. New edges are tagged door-link, accessible.
func (m *Model) ConnectOrphanDoors(g *graph.Graph, detector *collision.Detector) {
	for _, n := range g.Nodes() {
		if n.Type != graph.NodeDoor || g.EdgeCount(n.ID) > 0 {
			continue
		}
		near := g.NearestNodes(n.FloorID, n.Coords, m.cfg.OrphanDoorLinkM, m.cfg.OrphanDoorLinkM, 20, func(c *graph.Node) bool {
			return c.ID != n.ID
		})
		if len(near) == 0 {
			continue
		}

		var chosen *graph.Node
		for _, cand := range near {
			if detector.IsPathClear(n.Coords, cand.Coords, n.FloorID) {
				chosen = cand
				break
			}
		}
		if chosen == nil {
			chosen = near[0]
		}

		dist := geomkit.DistanceM(n.Coords, chosen.Coords)
		g.AddBidirectionalEdge(n.ID, chosen.ID, dist, graph.EdgeDoorLink, true)
	}
}
