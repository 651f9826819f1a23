// Package wind models the simplified linear wind displacement of a shell and
// expresses it in the shell's own forward and lateral frame.
package wind

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/mathutil"
)

var (
	// ErrUnknownArtilleryClass is returned for a class outside the known set.
	ErrUnknownArtilleryClass = errors.New("unknown artillery class")

	// ErrInvalidWindLevel is returned for a wind level outside 0..5.
	ErrInvalidWindLevel = errors.New("invalid wind level")
)

// Observation is the wind as seen by the spotter. Direction is the compass
// bearing the wind blows toward.
type Observation struct {
	Direction float64 `json:"direction" yaml:"direction" mapstructure:"direction"`
	Level     int     `json:"level" yaml:"level" mapstructure:"level"`
}

// Calm is the zero-wind observation.
var Calm = Observation{}

// Validate checks the wind level bounds.
func (o Observation) Validate() error {
	if o.Level < constants.MinWindLevel || o.Level > constants.MaxWindLevel {
		return fmt.Errorf("%w: %d (expected %d..%d)", ErrInvalidWindLevel,
			o.Level, constants.MinWindLevel, constants.MaxWindLevel)
	}
	return nil
}

// Effect is the wind displacement of a shell in meters. Range is along the
// line of fire (positive adds distance), Deflection is perpendicular to it.
type Effect struct {
	Range      float64 `json:"range"`
	Deflection float64 `json:"deflection"`
}

// Rounded returns the effect rounded for reporting.
func (e Effect) Rounded() Effect {
	return Effect{Range: mathutil.Round(e.Range), Deflection: mathutil.Round(e.Deflection)}
}

// AngularDeflection converts the lateral displacement into an azimuth
// correction in degrees at the given range.
func (e Effect) AngularDeflection(rangeMeters float64) float64 {
	return mathutil.AngleOfOffset(e.Deflection, rangeMeters)
}

// MaxDeviation returns the documented total displacement at the strongest
// wind level for the class. The computed effect is not clamped to it.
func MaxDeviation(class ArtilleryClass) (float64, error) {
	perLevel, err := class.DeviationPerLevel()
	if err != nil {
		return 0, err
	}
	return perLevel * constants.MaxWindLevel, nil
}

// CalculateEffect returns the wind effect on a shell fired on shellAzimuth.
//
// A level of zero yields a zero effect regardless of the other arguments.
// Otherwise the total deviation is the class deviation per level times the
// level, projected onto the shell frame using the angle between the wind and
// the reverse of the firing line.
func CalculateEffect(shellAzimuth float64, obs Observation, class ArtilleryClass) (Effect, error) {
	if obs.Level == 0 {
		return Effect{}, nil
	}
	if err := obs.Validate(); err != nil {
		return Effect{}, err
	}
	perLevel, err := class.DeviationPerLevel()
	if err != nil {
		return Effect{}, err
	}

	totalDeviation := perLevel * float64(obs.Level)
	relativeAngle := mathutil.DegreesToRadians(
		mathutil.NormalizeAzimuth(obs.Direction - shellAzimuth + constants.HalfTurn))

	return Effect{
		Range:      totalDeviation * math.Cos(relativeAngle),
		Deflection: totalDeviation * math.Sin(relativeAngle),
	}, nil
}
