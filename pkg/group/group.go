// Package group computes per-unit firing corrections for a battery of pieces
// laid out on a grid around a central piece.
package group

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/mathutil"
)

var (
	// ErrNoCentralUnit is returned when a non-empty group has no central unit.
	ErrNoCentralUnit = errors.New("group has no central unit")

	// ErrMultipleCentralUnits is returned when more than one unit is central.
	ErrMultipleCentralUnits = errors.New("group has more than one central unit")
)

// CentralSolution is the firing data of the central piece.
type CentralSolution struct {
	BaseDistance float64 `json:"baseDistance" yaml:"distance" mapstructure:"distance"`
	BaseAzimuth  float64 `json:"baseAzimuth" yaml:"azimuth" mapstructure:"azimuth"`
}

// Correction is a signed distance and azimuth adjustment relative to the
// central piece.
type Correction struct {
	Distance float64 `json:"distance"`
	Azimuth  float64 `json:"azimuth"`
}

// Unit is one artillery piece on the grid. Grid coordinates are in cells of
// one meter.
type Unit struct {
	ID         string     `json:"id" yaml:"id" mapstructure:"id"`
	GridX      float64    `json:"x" yaml:"x" mapstructure:"x"`
	GridY      float64    `json:"y" yaml:"y" mapstructure:"y"`
	IsCentral  bool       `json:"central" yaml:"central" mapstructure:"central"`
	Correction Correction `json:"correction" yaml:"-" mapstructure:"-"`
}

// UnitCorrection pairs a unit with its computed correction.
type UnitCorrection struct {
	ID         string     `json:"id"`
	Number     int        `json:"number"`
	IsCentral  bool       `json:"central"`
	Correction Correction `json:"correction"`
}

// FindCentral returns the single central unit of a group.
func FindCentral(units []Unit) (Unit, error) {
	var central Unit
	found := 0
	for _, u := range units {
		if u.IsCentral {
			central = u
			found++
		}
	}
	switch {
	case found == 0:
		return Unit{}, ErrNoCentralUnit
	case found > 1:
		return Unit{}, fmt.Errorf("%w: %d central units", ErrMultipleCentralUnits, found)
	}
	return central, nil
}

// OffsetCorrection computes the correction for a piece displaced by (dx, dy)
// meters from the central piece.
//
// The bearing to the shared target is approximated from the central base
// range and the lateral offset dx alone; dy only lengthens the range. Both
// are small-offset approximations valid when the grid spread is small
// compared to the range.
func OffsetCorrection(central CentralSolution, dx, dy float64) Correction {
	base := central.BaseDistance
	angleToTarget := mathutil.RadiansToDegrees(math.Atan2(base, dx))
	newDistance := math.Sqrt(base*base + dx*dx + dy*dy)

	return Correction{
		Distance: mathutil.Round(newDistance - base),
		Azimuth:  mathutil.RoundDelta(angleToTarget - central.BaseAzimuth),
	}
}

// Corrections computes the correction of every unit relative to the central
// unit. The central unit always gets the zero correction. Results keep the
// input order and are numbered with the central unit first.
func Corrections(central CentralSolution, units []Unit) ([]UnitCorrection, error) {
	if len(units) == 0 {
		return nil, nil
	}
	ref, err := FindCentral(units)
	if err != nil {
		return nil, err
	}

	results := make([]UnitCorrection, len(units))
	siblings := 0
	for i, u := range units {
		results[i] = UnitCorrection{ID: u.ID, IsCentral: u.IsCentral}
		if u.IsCentral {
			results[i].Number = constants.CentralUnitNumber
			continue
		}
		siblings++
		results[i].Number = constants.CentralUnitNumber + siblings
		results[i].Correction = OffsetCorrection(central, u.GridX-ref.GridX, u.GridY-ref.GridY)
	}
	return results, nil
}
