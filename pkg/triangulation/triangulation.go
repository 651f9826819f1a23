// Package triangulation infers the correction that walks an observed shell
// impact onto the target.
//
// The correction is a linear approximation: ranges are subtracted as scalars
// and bearings as angles, without accounting for the angular divergence
// between the two observations. It is only accurate when the target and
// impact bearings are close.
package triangulation

import (
	"fmt"

	"github.com/iwvelando/artillery-calculator/pkg/geometry"
	"github.com/iwvelando/artillery-calculator/pkg/mathutil"
	"github.com/iwvelando/artillery-calculator/pkg/wind"
)

// Input holds the observations for one triangulation.
type Input struct {
	Target geometry.PolarPoint
	Impact geometry.PolarPoint
	Wind   wind.Observation
	Class  wind.ArtilleryClass
}

// Correction is a signed distance and azimuth adjustment.
type Correction struct {
	Distance float64 `json:"distance"`
	Azimuth  float64 `json:"azimuth"`
}

// Result exposes the raw correction, the wind effect and the final
// correction separately; all values are rounded to 0.1.
type Result struct {
	CorrectionDistance float64     `json:"correctionDistance"`
	CorrectionAzimuth  float64     `json:"correctionAzimuth"`
	WindEffect         wind.Effect `json:"windEffect"`
	FinalCorrection    Correction  `json:"finalCorrection"`
}

// Calculate computes the correction from the impact to the target. The wind
// effect is evaluated along the impact bearing.
func Calculate(in Input) (Result, error) {
	correctionDistance := in.Target.Distance - in.Impact.Distance
	correctionAzimuth := mathutil.NormalizeDelta(in.Target.Azimuth - in.Impact.Azimuth)

	effect, err := wind.CalculateEffect(in.Impact.Azimuth, in.Wind, in.Class)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute wind effect: %w", err)
	}

	return Result{
		CorrectionDistance: mathutil.Round(correctionDistance),
		CorrectionAzimuth:  mathutil.RoundDelta(correctionAzimuth),
		WindEffect:         effect.Rounded(),
		FinalCorrection: Correction{
			Distance: mathutil.Round(correctionDistance + effect.Range),
			Azimuth:  mathutil.RoundDelta(correctionAzimuth + effect.AngularDeflection(in.Impact.Distance)),
		},
	}, nil
}
