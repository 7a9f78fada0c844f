package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/pkg/geo"
)

func wallPolygon() geo.Polygon {
	// A thin vertical wall strip running north-south at lng=5, from lat 0 to 10.
	return geo.Polygon{Rings: []geo.Ring{{
		geo.New(4.9, 0), geo.New(5.1, 0), geo.New(5.1, 10), geo.New(4.9, 10), geo.New(4.9, 0),
	}}}
}

func TestLineIntersectsObstacleBlocksCrossing(t *testing.T) {
	d := New()
	poly := wallPolygon()
	d.addObstacle("f1", "wall1", poly)

	assert.True(t, d.LineIntersectsObstacle(geo.New(0, 5), geo.New(10, 5), "f1"))
	assert.False(t, d.LineIntersectsObstacle(geo.New(0, 5), geo.New(4, 5), "f1"))
}

func TestDoorForgivesWallCrossing(t *testing.T) {
	d := New()
	poly := wallPolygon()
	d.addObstacle("f1", "wall1", poly)
	d.SetDoorSegments("f1", map[string]geo.LineString{
		"door1": {geo.New(4.9, 5), geo.New(5.1, 5)},
	})

	assert.False(t, d.LineIntersectsObstacle(geo.New(0, 5), geo.New(10, 5), "f1"), "crossing near the door must be forgiven")
	assert.True(t, d.LineIntersectsObstacle(geo.New(0, 8), geo.New(10, 8), "f1"), "crossing far from the door is still blocked")
}

func TestPointInObstacleRespectsDoorForgiveness(t *testing.T) {
	d := New()
	poly := wallPolygon()
	d.addObstacle("f1", "wall1", poly)

	assert.True(t, d.PointInObstacle(geo.New(5, 5), "f1"))

	d.SetDoorSegments("f1", map[string]geo.LineString{
		"door1": {geo.New(4.9, 5), geo.New(5.1, 5)},
	})
	assert.False(t, d.PointInObstacle(geo.New(5, 5), "f1"))
}

func TestIsPathClearRelaxedShortSegmentAlwaysClear(t *testing.T) {
	d := New()
	poly := wallPolygon()
	d.addObstacle("f1", "wall1", poly)

	// Points inside the wall strip, either side of its centre line, about
	// 1.1m apart.
	a := geo.New(4.999995, 5)
	b := geo.New(5.000005, 5)
	assert.True(t, d.IsPathClearRelaxed(a, b, "f1"))
}

func TestIsPathClearRelaxedMidRangeSkipsEndpointCheck(t *testing.T) {
	d := New()
	poly := wallPolygon()
	d.addObstacle("f1", "wall1", poly)

	// Endpoint sits inside the obstacle (strict would reject), but the segment
	// is in the 2-10m band so only line intersection is tested, and this
	// particular segment doesn't cross the obstacle boundary because both
	// ends are inside it.
	a := geo.New(5, 5)
	b := geo.New(5, 5.00005) // roughly 5.5m north, still inside the wall strip
	clear := d.IsPathClearRelaxed(a, b, "f1")
	assert.True(t, clear)
}

func TestAddGeometrySkipsNonWallNonNonwalkable(t *testing.T) {
	d := New()
	line := geo.LineString{geo.New(0, 0), geo.New(1, 0)}
	d.AddGeometry("g1", "f1", geo.Feature{LineString: line}, "floor", false)
	assert.Empty(t, d.obstacles["f1"])
}

func TestAddGeometryBuffersWallLineString(t *testing.T) {
	d := New()
	line := geo.LineString{geo.New(0, 0), geo.New(0, 0.001)}
	d.AddGeometry("wall1", "f1", geo.Feature{LineString: line}, "wall", false)
	assert.Len(t, d.obstacles["f1"], 1)
}

func TestAddGeometrySplitsMultiLineStringIntoSeparateObstacles(t *testing.T) {
	d := New()
	mls := geo.MultiLineString{
		{geo.New(0, 0), geo.New(0, 0.001)},
		{geo.New(1, 1), geo.New(1, 1.001)},
	}
	d.AddGeometry("walls", "f1", geo.Feature{MultiLineString: mls}, "wall", false)
	assert.Len(t, d.obstacles["f1"], 2)
}
