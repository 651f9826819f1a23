// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
)

// Round rounds a value to one decimal, half away from zero, which is the
// resolution every reported result uses.
func Round(val float64) float64 {
	r := math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / constants.HalfTurn
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * constants.HalfTurn / math.Pi
}

// NormalizeAzimuth folds any real bearing into [0, 360).
func NormalizeAzimuth(deg float64) float64 {
	m := math.Mod(deg, constants.FullTurn)
	if m < 0 {
		m += constants.FullTurn
	}
	// A tiny negative remainder becomes exactly 360 after the shift above.
	if m >= constants.FullTurn {
		m = 0
	}
	return m
}

// NormalizeDelta folds an azimuth difference into (-180, 180], the shortest
// turn representation.
func NormalizeDelta(deg float64) float64 {
	m := NormalizeAzimuth(deg)
	if m > constants.HalfTurn {
		m -= constants.FullTurn
	}
	return m
}

// RoundDelta normalizes an azimuth difference and rounds it for reporting.
// Rounding can push a value such as -179.96 onto -180, which is folded back
// to 180 so reported deltas stay in (-180, 180].
func RoundDelta(deg float64) float64 {
	r := Round(NormalizeDelta(deg))
	if r <= -constants.HalfTurn {
		r += constants.FullTurn
	}
	return r
}

// AngleOfOffset returns the angle in degrees subtended by a lateral offset at
// the given range, using the exact right-triangle arctangent.
func AngleOfOffset(offset, rangeMeters float64) float64 {
	return RadiansToDegrees(math.Atan2(offset, rangeMeters))
}
