// Package smoother applies cosmetic-only path simplification and spline
// smoothing. It never feeds its output back into the graph and never
// smooths across a floor change.
package smoother

import (
	"math"

	"github.com/wayfynd/navcore/pkg/geo"
)

// splineResolution is the number of samples cubic-spline interpolation
// produces per eligible subpath.
const splineResolution = 10000

// minSmoothLen is the minimum subpath length eligible for spline
// smoothing; shorter subpaths are left verbatim.
const minSmoothLen = 4

// Simplify runs Douglas-Peucker line simplification on path with the given
// tolerance in degrees, always preserving the first and last point.
func Simplify(path []geo.Coord, epsilonDeg float64) []geo.Coord {
	if len(path) < 3 {
		return path
	}
	keep := make([]bool, len(path))
	keep[0] = true
	keep[len(path)-1] = true
	douglasPeucker(path, 0, len(path)-1, epsilonDeg, keep)

	out := make([]geo.Coord, 0, len(path))
	for i, k := range keep {
		if k {
			out = append(out, path[i])
		}
	}
	return out
}

func douglasPeucker(path []geo.Coord, start, end int, epsilon float64, keep []bool) {
	if end <= start+1 {
		return
	}
	maxDist := -1.0
	maxIdx := -1
	for i := start + 1; i < end; i++ {
		d := perpendicularDistance(path[i], path[start], path[end])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist > epsilon {
		keep[maxIdx] = true
		douglasPeucker(path, start, maxIdx, epsilon, keep)
		douglasPeucker(path, maxIdx, end, epsilon, keep)
	}
}

func perpendicularDistance(p, a, b geo.Coord) float64 {
	if a.Lng == b.Lng && a.Lat == b.Lat {
		return math.Hypot(p.Lng-a.Lng, p.Lat-a.Lat)
	}
	num := math.Abs((b.Lat-a.Lat)*p.Lng - (b.Lng-a.Lng)*p.Lat + b.Lng*a.Lat - b.Lat*a.Lng)
	den := math.Hypot(b.Lat-a.Lat, b.Lng-a.Lng)
	return num / den
}

// SmoothWithFloors splits path on floor boundaries and applies cubic-spline
// interpolation to each same-floor subpath with at least minSmoothLen
// points, leaving shorter subpaths (and, implicitly, every floor boundary)
// untouched.
func SmoothWithFloors(path []geo.Coord, floors []string) []geo.Coord {
	if len(path) != len(floors) || len(path) == 0 {
		return path
	}

	var out []geo.Coord
	start := 0
	for i := 1; i <= len(path); i++ {
		if i == len(path) || floors[i] != floors[start] {
			out = append(out, smoothSubpath(path[start:i])...)
			start = i
		}
	}
	return out
}

func smoothSubpath(sub []geo.Coord) []geo.Coord {
	if len(sub) < minSmoothLen {
		return sub
	}
	return catmullRomSpline(sub, splineResolution)
}

// catmullRomSpline interpolates a smooth curve through pts, sampling it at
// "samples" evenly spaced points. Endpoints are pinned exactly.
func catmullRomSpline(pts []geo.Coord, samples int) []geo.Coord {
	n := len(pts)
	segments := n - 1
	out := make([]geo.Coord, 0, samples)

	for s := 0; s < samples; s++ {
		t := float64(s) / float64(samples-1) * float64(segments)
		seg := int(t)
		if seg >= segments {
			seg = segments - 1
		}
		localT := t - float64(seg)

		p0 := pts[clampIdx(seg-1, n)]
		p1 := pts[clampIdx(seg, n)]
		p2 := pts[clampIdx(seg+1, n)]
		p3 := pts[clampIdx(seg+2, n)]

		out = append(out, catmullRomPoint(p0, p1, p2, p3, localT))
	}
	out[0] = pts[0]
	out[len(out)-1] = pts[n-1]
	return out
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func catmullRomPoint(p0, p1, p2, p3 geo.Coord, t float64) geo.Coord {
	t2 := t * t
	t3 := t2 * t
	return geo.Coord{
		Lng: catmullRom1D(p0.Lng, p1.Lng, p2.Lng, p3.Lng, t, t2, t3),
		Lat: catmullRom1D(p0.Lat, p1.Lat, p2.Lat, p3.Lat, t, t2, t3),
	}
}

func catmullRom1D(p0, p1, p2, p3, t, t2, t3 float64) float64 {
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}
