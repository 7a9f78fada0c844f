// Package collision answers whether a straight segment between two points
// on a floor crosses a wall, honoring doors as additive permissions through
// the wall rather than gaps cut into obstacle geometry. See the room/door
// model in package roomdoor for how door nodes get built from the same
// door segment registry.
package collision

import (
	"strconv"

	"github.com/wayfynd/navcore/internal/geomkit"
	"github.com/wayfynd/navcore/internal/logger"
	"github.com/wayfynd/navcore/pkg/geo"
)

// doorForgivenessM is how close an obstacle crossing must be to a
// registered door segment before it is forgiven.
const doorForgivenessM = 0.6

// wallBufferM is the default buffer applied to wall LineStrings/
// MultiLineStrings when they are registered as obstacles.
const wallBufferM = 0.5

type obstacle struct {
	geometryID string
	polygon    geo.Polygon
	bbox       geo.BBox
}

type doorSegment struct {
	geometryID string
	line       geo.LineString
	bbox       geo.BBox
}

// Detector holds per-floor buffered obstacle polygons and door segments.
type Detector struct {
	obstacles map[string][]obstacle
	doors     map[string][]doorSegment
}

// New returns an empty Detector.
func New() *Detector {
	return &Detector{
		obstacles: make(map[string][]obstacle),
		doors:     make(map[string][]doorSegment),
	}
}

// AddGeometry registers a feature as an obstacle on floorID when kind is
// "wall" or geometryID is in the nonwalkable set. LineString/
// MultiLineString walls are buffered into polygons (each sub-line of a
// MultiLineString becomes its own obstacle, for tighter bboxes); features
// that can't be buffered are dropped per §4.1/§4.3.
func (d *Detector) AddGeometry(geometryID, floorID string, feature geo.Feature, kind string, nonwalkable bool) {
	if kind != "wall" && !nonwalkable {
		return
	}

	switch {
	case feature.Polygon != nil:
		d.addObstacle(floorID, geometryID, *feature.Polygon)
	case feature.MultiPolygon != nil:
		for _, p := range feature.MultiPolygon.Polygons {
			d.addObstacle(floorID, geometryID, p)
		}
	case feature.LineString != nil:
		d.bufferAndAdd(floorID, geometryID, feature.LineString)
	case len(feature.MultiLineString) > 0:
		for i, line := range feature.MultiLineString {
			d.bufferAndAdd(floorID, subID(geometryID, i), line)
		}
	default:
		logger.Warn("collision: dropping geometry %s on floor %s, not bufferable", geometryID, floorID)
	}
}

func subID(base string, i int) string {
	return base + "#" + strconv.Itoa(i)
}

func (d *Detector) bufferAndAdd(floorID, geometryID string, line geo.LineString) {
	poly, ok := geomkit.Buffer(geo.Feature{LineString: line}, wallBufferM)
	if !ok {
		geomkit.LogGeometryFailure("collision.buffer:"+geometryID, nil)
		return
	}
	d.addObstacle(floorID, geometryID, poly)
}

func (d *Detector) addObstacle(floorID, geometryID string, poly geo.Polygon) {
	d.obstacles[floorID] = append(d.obstacles[floorID], obstacle{
		geometryID: geometryID,
		polygon:    poly,
		bbox:       geomkit.BBox(geo.Feature{Polygon: &poly}),
	})
}

// SetDoorSegments registers door linestrings for a floor. Doors do not
// contribute obstacles; they forgive nearby wall crossings.
func (d *Detector) SetDoorSegments(floorID string, segments map[string]geo.LineString) {
	list := make([]doorSegment, 0, len(segments))
	for id, line := range segments {
		list = append(list, doorSegment{
			geometryID: id,
			line:       line,
			bbox:       geomkit.BBox(geo.Feature{LineString: line}).Expand(doorForgivenessM / 100000),
		})
	}
	d.doors[floorID] = list
}

// PointInObstacle returns true iff p lies in any obstacle polygon on floor
// AND is not within doorForgivenessM of a registered door segment.
func (d *Detector) PointInObstacle(p geo.Coord, floorID string) bool {
	for _, obs := range d.obstacles[floorID] {
		if !obs.bbox.Contains(p) {
			continue
		}
		if geomkit.PointInPolygon(p, obs.polygon) && !d.nearDoor(p, floorID) {
			return true
		}
	}
	return false
}

// LineIntersectsObstacle returns true iff [a,b] crosses any obstacle on
// floor AND at least one crossing point is farther than doorForgivenessM
// from every door segment.
func (d *Detector) LineIntersectsObstacle(a, b geo.Coord, floorID string) bool {
	segBox := geo.BBox{
		MinLng: minF(a.Lng, b.Lng), MaxLng: maxF(a.Lng, b.Lng),
		MinLat: minF(a.Lat, b.Lat), MaxLat: maxF(a.Lat, b.Lat),
	}
	for _, obs := range d.obstacles[floorID] {
		if !obs.bbox.Intersects(segBox) {
			continue
		}
		hits := geomkit.LineIntersect(a, b, geo.Feature{Polygon: &obs.polygon})
		for _, h := range hits {
			if !d.nearDoor(h, floorID) {
				return true
			}
		}
	}
	return false
}

func (d *Detector) nearDoor(p geo.Coord, floorID string) bool {
	for _, ds := range d.doors[floorID] {
		if !ds.bbox.Contains(p) {
			continue
		}
		for i := 0; i+1 < len(ds.line); i++ {
			if geomkit.DistancePointToSegmentM(p, ds.line[i], ds.line[i+1]) <= doorForgivenessM {
				return true
			}
		}
	}
	return false
}

// IsPathClear is the strict clearance contract: both endpoints are outside
// obstacles and the segment between them does not cross one.
func (d *Detector) IsPathClear(a, b geo.Coord, floorID string) bool {
	if d.PointInObstacle(a, floorID) || d.PointInObstacle(b, floorID) {
		return false
	}
	return !d.LineIntersectsObstacle(a, b, floorID)
}

// IsPathClearRelaxed is the permissive clearance contract used for short
// user-to-graph connectors: segments under 2m are always clear, 2-10m
// segments test only line intersection (endpoint checks skipped), and
// segments 10m and longer behave as strict IsPathClear.
func (d *Detector) IsPathClearRelaxed(a, b geo.Coord, floorID string) bool {
	dist := geomkit.DistanceM(a, b)
	switch {
	case dist < 2:
		return true
	case dist < 10:
		return !d.LineIntersectsObstacle(a, b, floorID)
	default:
		return d.IsPathClear(a, b, floorID)
	}
}

// ObstacleBoxes returns the bounding box of every registered obstacle on
// floorID, for debug rendering (cmd/navcore-viz); it carries no polygon
// detail, only the coarse footprint.
func (d *Detector) ObstacleBoxes(floorID string) []geo.BBox {
	obs := d.obstacles[floorID]
	out := make([]geo.BBox, len(obs))
	for i, o := range obs {
		out[i] = o.bbox
	}
	return out
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
