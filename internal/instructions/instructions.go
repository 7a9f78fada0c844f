// Package instructions translates a Route's bearing deltas into a turn-by-
// turn sequence, the spec's §6 "Outputs: Instructions" surface. It mirrors
// the teacher's navigation.NavigationStep/pathToSteps shape, generalized
// from floor-connection-only steps to bearing-derived turns over a full
// indoor path.
package instructions

import (
	"fmt"
	"math"

	"github.com/wayfynd/navcore/pkg/geo"
)

// StepType enumerates the instruction kinds named in §6.
type StepType string

const (
	StepStart       StepType = "start"
	StepStraight    StepType = "straight"
	StepSlightLeft  StepType = "slight-left"
	StepSlightRight StepType = "slight-right"
	StepLeft        StepType = "left"
	StepRight       StepType = "right"
	StepSharpLeft   StepType = "sharp-left"
	StepSharpRight  StepType = "sharp-right"
	StepFloorChange StepType = "floor-change"
	StepDestination StepType = "destination"
)

// Step is one instruction entry.
type Step struct {
	Type      StepType
	Text      string
	DistanceM float64
	Icon      string
}

// bearing turn-angle thresholds, in degrees, per §6.
const (
	straightThresholdDeg = 20.0
	turnThresholdDeg     = 45.0
	sharpThresholdDeg    = 135.0
)

// Generate builds the instruction sequence for a coordinate path with a
// parallel floors slice (same convention as smoother.SmoothWithFloors:
// same length, one floor id per point). An empty path yields nil; a
// single-point path yields a start step followed by a destination step.
func Generate(path []geo.Coord, floors []string) []Step {
	if len(path) == 0 {
		return nil
	}
	steps := []Step{{Type: StepStart, Text: "Start", Icon: "start"}}
	if len(path) == 1 {
		steps = append(steps, Step{Type: StepDestination, Text: "You have arrived", Icon: "destination"})
		return steps
	}

	prevBearing := bearingDeg(path[0], path[1])
	for i := 1; i < len(path)-1; i++ {
		segDist := distanceApprox(path[i-1], path[i])

		if i < len(floors) && floors[i] != floors[i-1] {
			steps = append(steps, Step{
				Type:      StepFloorChange,
				Text:      fmt.Sprintf("Change floors to %s", floors[i]),
				DistanceM: segDist,
				Icon:      "floor-change",
			})
			prevBearing = bearingDeg(path[i], path[i+1])
			continue
		}

		bearing := bearingDeg(path[i], path[i+1])
		delta := normalizeAngle(bearing - prevBearing)
		typ, text := classifyTurn(delta)
		if typ != StepStraight || i == 1 {
			steps = append(steps, Step{Type: typ, Text: text, DistanceM: segDist, Icon: string(typ)})
		} else if len(steps) > 0 {
			steps[len(steps)-1].DistanceM += segDist
		}
		prevBearing = bearing
	}

	lastDist := distanceApprox(path[len(path)-2], path[len(path)-1])
	steps = append(steps, Step{Type: StepDestination, Text: "You have arrived", DistanceM: lastDist, Icon: "destination"})
	return steps
}

func classifyTurn(deltaDeg float64) (StepType, string) {
	abs := math.Abs(deltaDeg)
	switch {
	case abs < straightThresholdDeg:
		return StepStraight, "Continue straight"
	case abs < turnThresholdDeg && deltaDeg < 0:
		return StepSlightLeft, "Bear left"
	case abs < turnThresholdDeg:
		return StepSlightRight, "Bear right"
	case abs < sharpThresholdDeg && deltaDeg < 0:
		return StepLeft, "Turn left"
	case abs < sharpThresholdDeg:
		return StepRight, "Turn right"
	case deltaDeg < 0:
		return StepSharpLeft, "Turn sharply left"
	default:
		return StepSharpRight, "Turn sharply right"
	}
}

// bearingDeg returns the forward bearing from a to b in degrees, 0 = north
// (+lat), 90 = east (+lng), matching standard navigation convention.
func bearingDeg(a, b geo.Coord) float64 {
	dLng := b.Lng - a.Lng
	dLat := b.Lat - a.Lat
	return math.Atan2(dLng, dLat) * 180 / math.Pi
}

// normalizeAngle folds a degree difference into (-180, 180].
func normalizeAngle(deg float64) float64 {
	for deg <= -180 {
		deg += 360
	}
	for deg > 180 {
		deg -= 360
	}
	return deg
}

// distanceApprox is a flat-plane approximation sufficient for instruction
// distances; callers needing geodesic precision use geomkit.DistanceM on
// the route segments directly.
func distanceApprox(a, b geo.Coord) float64 {
	const metersPerDegLat = 111320.0
	dLat := (b.Lat - a.Lat) * metersPerDegLat
	dLng := (b.Lng - a.Lng) * metersPerDegLat * math.Cos(a.Lat*math.Pi/180)
	return math.Hypot(dLat, dLng)
}
