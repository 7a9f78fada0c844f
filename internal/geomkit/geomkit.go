// Package geomkit is the closed set of pure geometry operations every other
// routing-core component builds on: geodesic distance and bearing, polygon
// containment, line intersection, buffering, centroid, and bounding boxes.
// All angular inputs are degrees; all distances are meters unless noted.
package geomkit

import (
	"math"

	"github.com/wayfynd/navcore/internal/logger"
	"github.com/wayfynd/navcore/pkg/geo"
)

const (
	earthRadiusM  = 6371008.8
	metersPerDeg  = 111320.0 // 1 degree of latitude, approximately
	degToRad      = math.Pi / 180
	radToDeg      = 180 / math.Pi
	coincidentTol = 1e-9 // degrees, for intersection point dedup
)

// DistanceM returns the great-circle (Haversine) distance between a and b,
// in meters.
func DistanceM(a, b geo.Coord) float64 {
	lat1, lat2 := a.Lat*degToRad, b.Lat*degToRad
	dLat := (b.Lat - a.Lat) * degToRad
	dLng := (b.Lng - a.Lng) * degToRad

	sinDLat := math.Sin(dLat / 2)
	sinDLng := math.Sin(dLng / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLng*sinDLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusM * c
}

// FastDistanceM is the equirectangular approximation used in EdgeBuilder's
// tight candidate loops; it must agree with DistanceM within 0.1% at the
// scale of a single floor (tens to low hundreds of meters).
func FastDistanceM(a, b geo.Coord) float64 {
	const mPerDeg = earthRadiusM * degToRad // same sphere as DistanceM
	meanLatRad := (a.Lat + b.Lat) / 2 * degToRad
	dx := (b.Lng - a.Lng) * mPerDeg * math.Cos(meanLatRad)
	dy := (b.Lat - a.Lat) * mPerDeg
	return math.Sqrt(dx*dx + dy*dy)
}

// BearingDeg returns the forward azimuth from a to b, in degrees [0, 360).
func BearingDeg(a, b geo.Coord) float64 {
	lat1, lat2 := a.Lat*degToRad, b.Lat*degToRad
	dLng := (b.Lng - a.Lng) * degToRad

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	brng := math.Atan2(y, x) * radToDeg
	return math.Mod(brng+360, 360)
}

// metersToLngDeg converts a meter distance to degrees of longitude at the
// given latitude.
func metersToLngDeg(meters, atLat float64) float64 {
	cosLat := math.Cos(atLat * degToRad)
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	return meters / (metersPerDeg * cosLat)
}

func metersToLatDeg(meters float64) float64 {
	return meters / metersPerDeg
}

// BBox returns the axis-aligned bounding box of feature's coordinates.
func BBox(f geo.Feature) geo.BBox {
	pts := collectPoints(f)
	return bboxOfPoints(pts)
}

func bboxOfPoints(pts []geo.Coord) geo.BBox {
	if len(pts) == 0 {
		return geo.BBox{}
	}
	b := geo.BBox{MinLng: pts[0].Lng, MaxLng: pts[0].Lng, MinLat: pts[0].Lat, MaxLat: pts[0].Lat}
	for _, p := range pts[1:] {
		if p.Lng < b.MinLng {
			b.MinLng = p.Lng
		}
		if p.Lng > b.MaxLng {
			b.MaxLng = p.Lng
		}
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
	}
	return b
}

func collectPoints(f geo.Feature) []geo.Coord {
	var pts []geo.Coord
	if f.Point != nil {
		pts = append(pts, *f.Point)
	}
	pts = append(pts, f.LineString...)
	for _, l := range f.MultiLineString {
		pts = append(pts, l...)
	}
	if f.Polygon != nil {
		for _, r := range f.Polygon.Rings {
			pts = append(pts, r...)
		}
	}
	if f.MultiPolygon != nil {
		for _, poly := range f.MultiPolygon.Polygons {
			for _, r := range poly.Rings {
				pts = append(pts, r...)
			}
		}
	}
	return pts
}

// Centroid returns the feature's centroid. For polygons this is the
// area-weighted centroid of the exterior ring (holes are ignored, matching
// typical room/wall footprints which rarely carry holes of consequence for
// anchor placement); for lines and points it falls back to the coordinate
// average.
func Centroid(f geo.Feature) geo.Coord {
	if f.Point != nil {
		return *f.Point
	}
	if f.Polygon != nil && len(f.Polygon.Rings) > 0 {
		if c, ok := ringCentroid(f.Polygon.Rings[0]); ok {
			return c
		}
	}
	if f.MultiPolygon != nil {
		var best geo.Coord
		bestArea := -1.0
		for _, poly := range f.MultiPolygon.Polygons {
			if len(poly.Rings) == 0 {
				continue
			}
			a := math.Abs(signedArea(poly.Rings[0]))
			if a > bestArea {
				if c, ok := ringCentroid(poly.Rings[0]); ok {
					best = c
					bestArea = a
				}
			}
		}
		if bestArea >= 0 {
			return best
		}
	}
	pts := collectPoints(f)
	return averagePoint(pts)
}

func averagePoint(pts []geo.Coord) geo.Coord {
	if len(pts) == 0 {
		return geo.Coord{}
	}
	var sumLng, sumLat float64
	for _, p := range pts {
		sumLng += p.Lng
		sumLat += p.Lat
	}
	n := float64(len(pts))
	return geo.Coord{Lng: sumLng / n, Lat: sumLat / n}
}

func signedArea(ring geo.Ring) float64 {
	if len(ring) < 3 {
		return 0
	}
	var area float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].Lng*ring[j].Lat - ring[j].Lng*ring[i].Lat
	}
	return area / 2
}

func ringCentroid(ring geo.Ring) (geo.Coord, bool) {
	a := signedArea(ring)
	if math.Abs(a) < 1e-14 {
		return geo.Coord{}, false
	}
	var cx, cy float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := ring[i].Lng*ring[j].Lat - ring[j].Lng*ring[i].Lat
		cx += (ring[i].Lng + ring[j].Lng) * cross
		cy += (ring[i].Lat + ring[j].Lat) * cross
	}
	return geo.Coord{Lng: cx / (6 * a), Lat: cy / (6 * a)}, true
}

// LongestSubline returns the sub-line with the greatest length among a
// MultiLineString's members, used to place door/connector anchors.
func LongestSubline(mls geo.MultiLineString) geo.LineString {
	var best geo.LineString
	bestLen := -1.0
	for _, l := range mls {
		length := lineLength(l)
		if length > bestLen {
			best, bestLen = l, length
		}
	}
	return best
}

func lineLength(l geo.LineString) float64 {
	var total float64
	for i := 1; i < len(l); i++ {
		total += FastDistanceM(l[i-1], l[i])
	}
	return total
}

// Midpoint returns the point halfway (by arc length) along a line string.
func Midpoint(l geo.LineString) geo.Coord {
	if len(l) == 0 {
		return geo.Coord{}
	}
	if len(l) == 1 {
		return l[0]
	}
	total := lineLength(l)
	if total == 0 {
		return l[0]
	}
	half := total / 2
	acc := 0.0
	for i := 1; i < len(l); i++ {
		seg := FastDistanceM(l[i-1], l[i])
		if acc+seg >= half {
			t := (half - acc) / seg
			return geo.Coord{
				Lng: l[i-1].Lng + t*(l[i].Lng-l[i-1].Lng),
				Lat: l[i-1].Lat + t*(l[i].Lat-l[i-1].Lat),
			}
		}
		acc += seg
	}
	return l[len(l)-1]
}

// PointInPolygon reports whether p lies in poly, edge inclusive, honoring
// holes (rings after the first are subtracted).
func PointInPolygon(p geo.Coord, poly geo.Polygon) bool {
	if len(poly.Rings) == 0 {
		return false
	}
	if !pointInRing(p, poly.Rings[0]) {
		return false
	}
	for _, hole := range poly.Rings[1:] {
		if pointInRing(p, hole) && !pointOnRing(p, hole) {
			return false
		}
	}
	return true
}

// PointInMultiPolygon reports whether p lies in any polygon of mp.
func PointInMultiPolygon(p geo.Coord, mp geo.MultiPolygon) bool {
	for _, poly := range mp.Polygons {
		if PointInPolygon(p, poly) {
			return true
		}
	}
	return false
}

// pointInRing is a winding/crossing-number test, edge inclusive.
func pointInRing(p geo.Coord, ring geo.Ring) bool {
	if pointOnRing(p, ring) {
		return true
	}
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) {
			lngAtY := pi.Lng + (p.Lat-pi.Lat)*(pj.Lng-pi.Lng)/(pj.Lat-pi.Lat)
			if p.Lng < lngAtY {
				inside = !inside
			}
		}
	}
	return inside
}

func pointOnRing(p geo.Coord, ring geo.Ring) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if pointOnSegment(p, a, b) {
			return true
		}
	}
	return false
}

func pointOnSegment(p, a, b geo.Coord) bool {
	const eps = 1e-12
	if a == b {
		return p == a
	}
	cross := (p.Lng-a.Lng)*(b.Lat-a.Lat) - (p.Lat-a.Lat)*(b.Lng-a.Lng)
	if math.Abs(cross) > eps {
		return false
	}
	dot := (p.Lng-a.Lng)*(b.Lng-a.Lng) + (p.Lat-a.Lat)*(b.Lat-a.Lat)
	if dot < 0 {
		return false
	}
	sqLen := (b.Lng-a.Lng)*(b.Lng-a.Lng) + (b.Lat-a.Lat)*(b.Lat-a.Lat)
	return dot <= sqLen
}

// DistancePointToSegmentM returns the shortest meter distance from p to the
// segment [a,b], used for door-forgiveness checks in collision detection.
func DistancePointToSegmentM(p, a, b geo.Coord) float64 {
	abLng, abLat := b.Lng-a.Lng, b.Lat-a.Lat
	sqLen := abLng*abLng + abLat*abLat
	if sqLen < 1e-20 {
		return DistanceM(p, a)
	}
	t := ((p.Lng-a.Lng)*abLng + (p.Lat-a.Lat)*abLat) / sqLen
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := geo.Coord{Lng: a.Lng + t*abLng, Lat: a.Lat + t*abLat}
	return DistanceM(p, proj)
}

// SegmentIntersection returns the intersection point of segments [a,b] and
// [c,d], if any.
func SegmentIntersection(a, b, c, d geo.Coord) (geo.Coord, bool) {
	r1x, r1y := b.Lng-a.Lng, b.Lat-a.Lat
	r2x, r2y := d.Lng-c.Lng, d.Lat-c.Lat

	denom := r1x*r2y - r1y*r2x
	if math.Abs(denom) < 1e-15 {
		return geo.Coord{}, false
	}
	t := ((c.Lng-a.Lng)*r2y - (c.Lat-a.Lat)*r2x) / denom
	u := ((c.Lng-a.Lng)*r1y - (c.Lat-a.Lat)*r1x) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return geo.Coord{}, false
	}
	return geo.Coord{Lng: a.Lng + t*r1x, Lat: a.Lat + t*r1y}, true
}

// LineIntersect returns the set of points where segment [a,b] crosses the
// boundary of poly or mp, deduplicating coincident hits within 1e-9 degrees.
func LineIntersect(a, b geo.Coord, f geo.Feature) []geo.Coord {
	var pts []geo.Coord
	if f.Polygon != nil {
		pts = append(pts, intersectRings(a, b, f.Polygon.Rings)...)
	}
	if f.MultiPolygon != nil {
		for _, poly := range f.MultiPolygon.Polygons {
			pts = append(pts, intersectRings(a, b, poly.Rings)...)
		}
	}
	return dedupPoints(pts)
}

func intersectRings(a, b geo.Coord, rings []geo.Ring) []geo.Coord {
	var pts []geo.Coord
	for _, ring := range rings {
		n := len(ring)
		for i := 0; i < n; i++ {
			p1, p2 := ring[i], ring[(i+1)%n]
			if ip, ok := SegmentIntersection(a, b, p1, p2); ok {
				pts = append(pts, ip)
			}
		}
	}
	return pts
}

func dedupPoints(pts []geo.Coord) []geo.Coord {
	out := make([]geo.Coord, 0, len(pts))
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if math.Abs(p.Lng-q.Lng) < coincidentTol && math.Abs(p.Lat-q.Lat) < coincidentTol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// Buffer returns a polygonal buffer of f, meters wide, interpreted
// geodesically at the feature's centroid latitude. Only a LineString of at
// least two points and a Polygon whose exterior ring has at least three
// points are buffered (a Polygon's holes are not carried over). Every other
// geometry, MultiLineString and MultiPolygon included, and degenerate input
// return ok=false so callers can silently drop the feature rather than
// crash, per §4.1.
func Buffer(f geo.Feature, meters float64) (geo.Polygon, bool) {
	defer func() { recover() }() //nolint:errcheck // degenerate geometry must never panic the caller

	switch {
	case f.LineString != nil && len(f.LineString) >= 2:
		return bufferLine(f.LineString, meters), true
	case f.Polygon != nil && len(f.Polygon.Rings) > 0 && len(f.Polygon.Rings[0]) >= 3:
		return bufferRing(f.Polygon.Rings[0], meters), true
	default:
		return geo.Polygon{}, false
	}
}

// bufferLine builds a rectangular-capsule approximation around a polyline:
// for each segment, offset both endpoints perpendicular to the segment
// direction by the buffer radius, forming a strip; strips are unioned by
// simply concatenating into one ring per segment consumer (EdgeBuilder and
// CollisionDetector only need point-in-polygon / intersection tests against
// each strip, not a merged outline).
func bufferLine(line geo.LineString, meters float64) geo.Polygon {
	lat := Centroid(geo.Feature{LineString: line}).Lat
	dLng := metersToLngDeg(meters, lat)
	dLat := metersToLatDeg(meters)

	var ring geo.Ring
	var leftSide, rightSide []geo.Coord
	for i := 0; i < len(line)-1; i++ {
		p1, p2 := line[i], line[i+1]
		dx, dy := p2.Lng-p1.Lng, p2.Lat-p1.Lat
		length := math.Hypot(dx/dLng, dy/dLat)
		if length == 0 {
			continue
		}
		// Perpendicular unit vector in the normalized (meters-equivalent)
		// frame, then scaled back into degrees per axis.
		nx, ny := -dy/dLat, dx/dLng
		normLen := math.Hypot(nx, ny)
		if normLen == 0 {
			continue
		}
		nx, ny = nx/normLen, ny/normLen

		offLng := nx * dLng
		offLat := ny * dLat

		leftSide = append(leftSide, geo.Coord{Lng: p1.Lng + offLng, Lat: p1.Lat + offLat})
		leftSide = append(leftSide, geo.Coord{Lng: p2.Lng + offLng, Lat: p2.Lat + offLat})
		rightSide = append(rightSide, geo.Coord{Lng: p1.Lng - offLng, Lat: p1.Lat - offLat})
		rightSide = append(rightSide, geo.Coord{Lng: p2.Lng - offLng, Lat: p2.Lat - offLat})
	}

	ring = append(ring, leftSide...)
	for i := len(rightSide) - 1; i >= 0; i-- {
		ring = append(ring, rightSide[i])
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return geo.Polygon{Rings: []geo.Ring{ring}}
}

// bufferRing grows a polygon ring outward by meters along each vertex's
// averaged edge normal. This is an approximation (no miter-limit handling
// for very sharp corners) adequate for the 0.3-0.5m buffers used by rooms
// and walls in this spec.
func bufferRing(ring geo.Ring, meters float64) geo.Polygon {
	lat := Centroid(geo.Feature{Polygon: &geo.Polygon{Rings: []geo.Ring{ring}}}).Lat
	dLng := metersToLngDeg(meters, lat)
	dLat := metersToLatDeg(meters)

	n := len(ring)
	out := make(geo.Ring, 0, n)
	ccw := signedArea(ring) > 0

	for i := 0; i < n; i++ {
		prev := ring[(i-1+n)%n]
		curr := ring[i]
		next := ring[(i+1)%n]

		n1 := edgeNormal(prev, curr, dLng, dLat, ccw)
		n2 := edgeNormal(curr, next, dLng, dLat, ccw)

		avgLng := (n1[0] + n2[0]) / 2
		avgLat := (n1[1] + n2[1]) / 2
		norm := math.Hypot(avgLng/dLng, avgLat/dLat)
		if norm == 0 {
			norm = 1
		}
		scale := 1 / norm
		out = append(out, geo.Coord{
			Lng: curr.Lng + avgLng*scale,
			Lat: curr.Lat + avgLat*scale,
		})
	}
	out = append(out, out[0])
	return geo.Polygon{Rings: []geo.Ring{out}}
}

func edgeNormal(a, b geo.Coord, dLng, dLat float64, ccw bool) [2]float64 {
	dx, dy := (b.Lng-a.Lng)/dLng, (b.Lat-a.Lat)/dLat
	length := math.Hypot(dx, dy)
	if length == 0 {
		return [2]float64{0, 0}
	}
	nx, ny := -dy/length, dx/length // left of a->b, which is inside a CCW ring
	if ccw {
		nx, ny = -nx, -ny
	}
	return [2]float64{nx * dLng, ny * dLat}
}

// LogGeometryFailure centralizes the "treat as safe, log, move on" policy
// required by §4.1/§7 for any internal geometry op failure.
func LogGeometryFailure(op string, err error) {
	logger.Warn("geomkit: %s failed, treating as safe/no-containment: %v", op, err)
}
