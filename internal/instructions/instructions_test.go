package instructions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfynd/navcore/pkg/geo"
)

func TestGenerateStraightCorridorIsAllStraight(t *testing.T) {
	path := []geo.Coord{{Lng: 0, Lat: 0}, {Lng: 0, Lat: 0.0001}, {Lng: 0, Lat: 0.0002}, {Lng: 0, Lat: 0.0003}}
	floors := []string{"floor0", "floor0", "floor0", "floor0"}

	steps := Generate(path, floors)
	assert.Equal(t, StepStart, steps[0].Type)
	assert.Equal(t, StepDestination, steps[len(steps)-1].Type)
	for _, s := range steps[1 : len(steps)-1] {
		assert.Equal(t, StepStraight, s.Type)
	}
}

func TestGenerateDetectsRightAngleTurn(t *testing.T) {
	// North then east: a 90 degree right turn.
	path := []geo.Coord{{Lng: 0, Lat: 0}, {Lng: 0, Lat: 0.0005}, {Lng: 0.0005, Lat: 0.0005}}
	floors := []string{"floor0", "floor0", "floor0"}

	steps := Generate(path, floors)
	var sawRight bool
	for _, s := range steps {
		if s.Type == StepRight || s.Type == StepSharpRight {
			sawRight = true
		}
	}
	assert.True(t, sawRight)
}

func TestGenerateEmitsFloorChangeStep(t *testing.T) {
	path := []geo.Coord{{Lng: 0, Lat: 0}, {Lng: 0, Lat: 0.0001}, {Lng: 0, Lat: 0.0002}}
	floors := []string{"floor0", "floor1", "floor1"}

	steps := Generate(path, floors)
	var sawFloorChange bool
	for _, s := range steps {
		if s.Type == StepFloorChange {
			sawFloorChange = true
		}
	}
	assert.True(t, sawFloorChange)
}

func TestGenerateSinglePointYieldsStartAndDestination(t *testing.T) {
	steps := Generate([]geo.Coord{{Lng: 0, Lat: 0}}, []string{"floor0"})
	assert.Len(t, steps, 2)
	assert.Equal(t, StepStart, steps[0].Type)
	assert.Equal(t, StepDestination, steps[1].Type)
}

func TestGenerateEmptyPathReturnsNil(t *testing.T) {
	assert.Nil(t, Generate(nil, nil))
}
