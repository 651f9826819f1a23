// Package geometry converts spotter observations between polar compass
// coordinates and the planar frame used for vector arithmetic.
//
// The planar frame has the spotter at the origin, +Y pointing to geographic
// north and +X to geographic east. Azimuth 0 maps to +Y and grows clockwise.
package geometry

import (
	"fmt"
	"math"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/mathutil"
	"github.com/peterstace/simplefeatures/geom"
)

// PolarPoint is a range and bearing observation from the spotter.
type PolarPoint struct {
	Distance float64 `json:"distance" yaml:"distance" mapstructure:"distance"`
	Azimuth  float64 `json:"azimuth" yaml:"azimuth" mapstructure:"azimuth"`
}

// CartesianPoint is a planar position relative to the spotter.
type CartesianPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p PolarPoint) String() string {
	return fmt.Sprintf("%.1fm / %.1f°", p.Distance, p.Azimuth)
}

// XY exposes the point as a simplefeatures coordinate pair.
func (c CartesianPoint) XY() geom.XY {
	return geom.XY{X: c.X, Y: c.Y}
}

func fromXY(xy geom.XY) CartesianPoint {
	return CartesianPoint{X: xy.X, Y: xy.Y}
}

// PolarToCartesian projects a compass observation onto the planar frame.
// Negative distances are not rejected and yield the mirrored point.
func PolarToCartesian(distance, azimuth float64) CartesianPoint {
	angleRad := mathutil.DegreesToRadians(constants.QuarterTurn - azimuth)
	return CartesianPoint{
		X: distance * math.Cos(angleRad),
		Y: distance * math.Sin(angleRad),
	}
}

// CartesianToPolar converts a planar position back to a compass observation
// with the azimuth in [0, 360). The origin maps to azimuth 90, since
// atan2(0, 0) is 0.
func CartesianToPolar(x, y float64) PolarPoint {
	distance := math.Sqrt(x*x + y*y)
	azimuth := constants.QuarterTurn - mathutil.RadiansToDegrees(math.Atan2(y, x))
	if azimuth < 0 {
		azimuth += constants.FullTurn
	}
	// A bearing a hair west of north can land on 360 through rounding.
	if azimuth >= constants.FullTurn {
		azimuth -= constants.FullTurn
	}
	return PolarPoint{Distance: distance, Azimuth: azimuth}
}

// ToCartesian projects the observation onto the planar frame.
func (p PolarPoint) ToCartesian() CartesianPoint {
	return PolarToCartesian(p.Distance, p.Azimuth)
}

// ToPolar converts the planar position to a compass observation.
func (c CartesianPoint) ToPolar() PolarPoint {
	return CartesianToPolar(c.X, c.Y)
}

// Sub returns the vector a - b.
func Sub(a, b CartesianPoint) CartesianPoint {
	return fromXY(a.XY().Sub(b.XY()))
}

// Displacement returns the range and bearing of the straight line running
// from one observed point to another, both observed from the same spotter.
func Displacement(from, to PolarPoint) PolarPoint {
	v := Sub(to.ToCartesian(), from.ToCartesian())
	return v.ToPolar()
}
