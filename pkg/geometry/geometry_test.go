package geometry

import (
	"math"
	"testing"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/mathutil"
)

func angularDiff(a, b float64) float64 {
	return math.Abs(mathutil.NormalizeDelta(a - b))
}

func TestPolarToCartesian(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		azimuth   float64
		expectedX float64
		expectedY float64
	}{
		{"North", 100, 0, 0, 100},
		{"East", 80, 90, 80, 0},
		{"South", 100, 180, 0, -100},
		{"West", 50, 270, -50, 0},
		{"Northeast", math.Sqrt2 * 10, 45, 10, 10},
		{"Zero distance", 0, 123, 0, 0},
		{"Full turn equals north", 10, 360, 0, 10},
		{"Negative azimuth", 10, -90, -10, 0},
		{"Negative distance mirrors", -10, 0, 0, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PolarToCartesian(tt.distance, tt.azimuth)
			if !mathutil.WithinTolerance(p.X, tt.expectedX, constants.DistanceTolerance) || !mathutil.WithinTolerance(p.Y, tt.expectedY, constants.DistanceTolerance) {
				t.Errorf("PolarToCartesian(%v, %v) = (%v, %v), expected (%v, %v)",
					tt.distance, tt.azimuth, p.X, p.Y, tt.expectedX, tt.expectedY)
			}
		})
	}
}

func TestCartesianToPolar(t *testing.T) {
	tests := []struct {
		name             string
		x, y             float64
		expectedDistance float64
		expectedAzimuth  float64
	}{
		{"North", 0, 100, 100, 0},
		{"East", 80, 0, 80, 90},
		{"South", 0, -100, 100, 180},
		{"West", -50, 0, 50, 270},
		{"Northwest", -10, 10, math.Sqrt2 * 10, 315},
		{"Origin is defined", 0, 0, 0, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CartesianToPolar(tt.x, tt.y)
			if !mathutil.WithinTolerance(p.Distance, tt.expectedDistance, constants.DistanceTolerance) {
				t.Errorf("CartesianToPolar(%v, %v).Distance = %v, expected %v", tt.x, tt.y, p.Distance, tt.expectedDistance)
			}
			if !mathutil.WithinTolerance(p.Azimuth, tt.expectedAzimuth, constants.AngleTolerance) {
				t.Errorf("CartesianToPolar(%v, %v).Azimuth = %v, expected %v", tt.x, tt.y, p.Azimuth, tt.expectedAzimuth)
			}
		})
	}
}

func TestCartesianToPolarAzimuthRange(t *testing.T) {
	for x := -5.0; x <= 5.0; x += 0.5 {
		for y := -5.0; y <= 5.0; y += 0.5 {
			p := CartesianToPolar(x, y)
			if p.Azimuth < 0 || p.Azimuth >= 360 {
				t.Fatalf("CartesianToPolar(%v, %v).Azimuth = %v, outside [0, 360)", x, y, p.Azimuth)
			}
		}
	}
	// just west of north
	if p := CartesianToPolar(-1e-300, 1); p.Azimuth >= 360 {
		t.Errorf("expected azimuth below 360, got %v", p.Azimuth)
	}
}

func TestRoundTrip(t *testing.T) {
	distances := []float64{0.5, 1, 80, 100, 1234.5, 10000}
	for _, d := range distances {
		for a := 0.0; a < 360; a += 7.5 {
			p := CartesianToPolar(PolarToCartesian(d, a).X, PolarToCartesian(d, a).Y)
			if !mathutil.WithinTolerance(p.Distance, d, constants.DistanceTolerance*math.Max(1, d)) {
				t.Errorf("round trip distance for (%v, %v) = %v", d, a, p.Distance)
			}
			if angularDiff(p.Azimuth, a) > constants.AngleTolerance {
				t.Errorf("round trip azimuth for (%v, %v) = %v", d, a, p.Azimuth)
			}
		}
	}
}

func TestRoundTripUnnormalizedAzimuth(t *testing.T) {
	for _, a := range []float64{-720, -90, 360, 450, 1000.25} {
		p := PolarPoint{Distance: 42, Azimuth: a}.ToCartesian().ToPolar()
		if angularDiff(p.Azimuth, mathutil.NormalizeAzimuth(a)) > constants.AngleTolerance {
			t.Errorf("round trip of azimuth %v = %v, expected %v", a, p.Azimuth, mathutil.NormalizeAzimuth(a))
		}
		if !mathutil.WithinTolerance(p.Distance, 42, constants.DistanceTolerance) {
			t.Errorf("round trip of distance with azimuth %v = %v", a, p.Distance)
		}
	}
}

func TestSub(t *testing.T) {
	a := CartesianPoint{X: 80, Y: 0}
	b := CartesianPoint{X: 0, Y: -100}

	if d := Sub(a, b); d.X != 80 || d.Y != 100 {
		t.Errorf("Sub(a, b) = %+v, expected (80, 100)", d)
	}
	if d := Sub(b, a); d.X != -80 || d.Y != -100 {
		t.Errorf("Sub(b, a) = %+v, expected (-80, -100)", d)
	}
	if d := Sub(a, a); d != (CartesianPoint{}) {
		t.Errorf("Sub(a, a) = %+v, expected the origin", d)
	}
}

func TestDisplacement(t *testing.T) {
	artillery := PolarPoint{Distance: 100, Azimuth: 180}
	target := PolarPoint{Distance: 80, Azimuth: 90}

	v := Displacement(artillery, target)
	if !mathutil.WithinTolerance(v.Distance, math.Hypot(80, 100), constants.DistanceTolerance) {
		t.Errorf("Displacement distance = %v, expected %v", v.Distance, math.Hypot(80, 100))
	}
	expectedAz := mathutil.RadiansToDegrees(math.Atan2(80, 100))
	if !mathutil.WithinTolerance(v.Azimuth, expectedAz, constants.AngleTolerance) {
		t.Errorf("Displacement azimuth = %v, expected %v", v.Azimuth, expectedAz)
	}
}

func TestPolarPointString(t *testing.T) {
	p := PolarPoint{Distance: 128.06, Azimuth: 38.66}
	if got := p.String(); got != "128.1m / 38.7°" {
		t.Errorf("String() = %q", got)
	}
}
