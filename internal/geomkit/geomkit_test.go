package geomkit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/pkg/geo"
)

func TestDistanceMAgreesWithFastDistance(t *testing.T) {
	a := geo.New(0, 0)
	b := geo.New(0.0001, 0.0001)

	slow := DistanceM(a, b)
	fast := FastDistanceM(a, b)

	assert.InEpsilon(t, slow, fast, 0.001, "fast path must agree with Haversine within 0.1%%")
}

func TestBearingDeg(t *testing.T) {
	a := geo.New(0, 0)
	east := geo.New(1, 0)
	north := geo.New(0, 1)

	assert.InDelta(t, 90.0, BearingDeg(a, east), 0.5)
	assert.InDelta(t, 0.0, BearingDeg(a, north), 0.5)
}

func square(side float64) geo.Polygon {
	return geo.Polygon{Rings: []geo.Ring{{
		geo.New(0, 0), geo.New(side, 0), geo.New(side, side), geo.New(0, side), geo.New(0, 0),
	}}}
}

func TestPointInPolygon(t *testing.T) {
	poly := square(10)

	assert.True(t, PointInPolygon(geo.New(5, 5), poly))
	assert.True(t, PointInPolygon(geo.New(0, 5), poly), "edge inclusive")
	assert.False(t, PointInPolygon(geo.New(11, 11), poly))
}

func TestPointInPolygonWithHole(t *testing.T) {
	outer := square(10).Rings[0]
	hole := geo.Ring{geo.New(4, 4), geo.New(6, 4), geo.New(6, 6), geo.New(4, 6), geo.New(4, 4)}
	poly := geo.Polygon{Rings: []geo.Ring{outer, hole}}

	assert.True(t, PointInPolygon(geo.New(1, 1), poly))
	assert.False(t, PointInPolygon(geo.New(5, 5), poly), "inside the hole")
}

func TestLineIntersectDedup(t *testing.T) {
	poly := square(10)
	// The diagonal passes through two corners, each shared by two edges, so
	// four raw hits collapse to two.
	pts := LineIntersect(geo.New(-1, -1), geo.New(11, 11), geo.Feature{Polygon: &poly})
	assert.Len(t, pts, 2)
}

func TestBBox(t *testing.T) {
	poly := square(10)
	b := BBox(geo.Feature{Polygon: &poly})
	assert.Equal(t, geo.BBox{MinLng: 0, MinLat: 0, MaxLng: 10, MaxLat: 10}, b)
}

func TestCentroidOfSquareIsCenter(t *testing.T) {
	poly := square(10)
	c := Centroid(geo.Feature{Polygon: &poly})
	assert.InDelta(t, 5, c.Lng, 1e-9)
	assert.InDelta(t, 5, c.Lat, 1e-9)
}

func TestBufferDropsDegenerateFeature(t *testing.T) {
	_, ok := Buffer(geo.Feature{}, 0.5)
	assert.False(t, ok)
}

func TestBufferLineGrowsOutward(t *testing.T) {
	line := geo.LineString{geo.New(0, 0), geo.New(0, 0.001)}
	poly, ok := Buffer(geo.Feature{LineString: line}, 1)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, len(poly.Rings[0]), 4)

	// The buffered polygon must contain the original line's midpoint.
	mid := geo.New(0, 0.0005)
	assert.True(t, PointInPolygon(mid, poly))
}

func TestMidpointAndLongestSubline(t *testing.T) {
	mls := geo.MultiLineString{
		{geo.New(0, 0), geo.New(0, 1)},
		{geo.New(0, 0), geo.New(0, 5)},
	}
	longest := LongestSubline(mls)
	assert.Equal(t, mls[1], longest)

	mid := Midpoint(geo.LineString{geo.New(0, 0), geo.New(0, 10)})
	assert.InDelta(t, 5, mid.Lat, math.Abs(1e-6))
}
