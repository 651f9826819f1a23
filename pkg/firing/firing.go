// Package firing derives the firing solution of an artillery piece from two
// spotter observations, one of the piece and one of the target.
package firing

import (
	"fmt"

	"github.com/iwvelando/artillery-calculator/pkg/geometry"
	"github.com/iwvelando/artillery-calculator/pkg/mathutil"
	"github.com/iwvelando/artillery-calculator/pkg/wind"
)

// Input holds the observations for one direct-fire calculation.
type Input struct {
	Artillery geometry.PolarPoint
	Target    geometry.PolarPoint
	Wind      wind.Observation
	Class     wind.ArtilleryClass
}

// Solution is the firing data for the piece. All fields are rounded to 0.1.
// BaseAzimuth comes from the planar conversion and lies in [0, 360) before
// rounding. AdjustedAzimuth is that bearing plus the wind deflection angle
// and is not wrapped, so it can fall below 0 or reach past 360.
type Solution struct {
	BaseDistance         float64 `json:"baseDistance"`
	BaseAzimuth          float64 `json:"baseAzimuth"`
	WindRangeEffect      float64 `json:"windRangeEffect"`
	WindDeflectionEffect float64 `json:"windDeflectionEffect"`
	AdjustedDistance     float64 `json:"adjustedDistance"`
	AdjustedAzimuth      float64 `json:"adjustedAzimuth"`
}

// Calculate computes the firing solution.
//
// The artillery-to-target vector is the difference of the two observations in
// the planar frame. The wind range effect is added to its length and the
// lateral effect is turned into an angle against the base range.
func Calculate(in Input) (Solution, error) {
	base := geometry.Displacement(in.Artillery, in.Target)

	effect, err := wind.CalculateEffect(base.Azimuth, in.Wind, in.Class)
	if err != nil {
		return Solution{}, fmt.Errorf("failed to compute wind effect: %w", err)
	}

	adjustedDistance := base.Distance + effect.Range
	adjustedAzimuth := base.Azimuth + effect.AngularDeflection(base.Distance)

	return Solution{
		BaseDistance:         mathutil.Round(base.Distance),
		BaseAzimuth:          mathutil.Round(base.Azimuth),
		WindRangeEffect:      mathutil.Round(effect.Range),
		WindDeflectionEffect: mathutil.Round(effect.Deflection),
		AdjustedDistance:     mathutil.Round(adjustedDistance),
		AdjustedAzimuth:      mathutil.Round(adjustedAzimuth),
	}, nil
}
