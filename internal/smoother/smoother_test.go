package smoother

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfynd/navcore/pkg/geo"
)

func TestSimplifyPreservesEndpointsAndDropsCollinear(t *testing.T) {
	path := []geo.Coord{
		geo.New(0, 0), geo.New(1, 0.0001), geo.New(2, 0), geo.New(5, 5),
	}
	simplified := Simplify(path, 0.01)

	assert.Equal(t, path[0], simplified[0])
	assert.Equal(t, path[len(path)-1], simplified[len(simplified)-1])
	assert.Less(t, len(simplified), len(path))
}

func TestSimplifyKeepsSignificantDeviation(t *testing.T) {
	path := []geo.Coord{geo.New(0, 0), geo.New(5, 5), geo.New(10, 0)}
	simplified := Simplify(path, 0.1)
	assert.Len(t, simplified, 3, "large deviation from the chord must be kept")
}

func TestSmoothWithFloorsLeavesShortSubpathsVerbatim(t *testing.T) {
	path := []geo.Coord{geo.New(0, 0), geo.New(1, 0), geo.New(2, 0)}
	floors := []string{"f1", "f1", "f1"}

	out := SmoothWithFloors(path, floors)
	assert.Equal(t, path, out)
}

func TestSmoothWithFloorsNeverCrossesFloorBoundary(t *testing.T) {
	path := make([]geo.Coord, 0)
	floors := make([]string, 0)
	for i := 0; i < 5; i++ {
		path = append(path, geo.New(float64(i), 0))
		floors = append(floors, "f1")
	}
	path = append(path, geo.New(5, 0))
	floors = append(floors, "f2")

	out := SmoothWithFloors(path, floors)

	// The f1 subpath (5 points, >= minSmoothLen) is resampled to
	// splineResolution points; the lone f2 point is appended verbatim.
	assert.Equal(t, splineResolution+1, len(out))
	assert.Equal(t, geo.New(5, 0), out[len(out)-1])
}

func TestSmoothWithFloorsMismatchedLengthsReturnsInputUnchanged(t *testing.T) {
	path := []geo.Coord{geo.New(0, 0)}
	floors := []string{"f1", "f2"}
	out := SmoothWithFloors(path, floors)
	assert.Equal(t, path, out)
}
