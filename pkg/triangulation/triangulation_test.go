package triangulation

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/artillery-calculator/pkg/geometry"
	"github.com/iwvelando/artillery-calculator/pkg/wind"
)

func TestCalculateNoWind(t *testing.T) {
	result, err := Calculate(Input{
		Target: geometry.PolarPoint{Distance: 100, Azimuth: 50},
		Impact: geometry.PolarPoint{Distance: 90, Azimuth: 45},
		Wind:   wind.Calm,
		Class:  wind.Class120mm,
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	expected := Result{
		CorrectionDistance: 10,
		CorrectionAzimuth:  5,
		FinalCorrection:    Correction{Distance: 10, Azimuth: 5},
	}
	if result != expected {
		t.Errorf("Calculate() = %+v, expected %+v", result, expected)
	}
}

func TestCalculateAzimuthWrap(t *testing.T) {
	tests := []struct {
		name          string
		targetAzimuth float64
		impactAzimuth float64
		expected      float64
	}{
		{"Across north clockwise", 5, 355, 10},
		{"Across north counter-clockwise", 355, 5, -10},
		{"Opposite bearings", 180, 0, 180},
		{"Opposite bearings reversed", 0, 180, 180},
		{"Unnormalized inputs", 725, -10, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Calculate(Input{
				Target: geometry.PolarPoint{Distance: 100, Azimuth: tt.targetAzimuth},
				Impact: geometry.PolarPoint{Distance: 100, Azimuth: tt.impactAzimuth},
				Class:  wind.Class150mm,
			})
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if result.CorrectionAzimuth != tt.expected {
				t.Errorf("CorrectionAzimuth = %v, expected %v", result.CorrectionAzimuth, tt.expected)
			}
			if result.FinalCorrection.Azimuth <= -180 || result.FinalCorrection.Azimuth > 180 {
				t.Errorf("FinalCorrection.Azimuth = %v, outside (-180, 180]", result.FinalCorrection.Azimuth)
			}
		})
	}
}

func TestCalculateWithWind(t *testing.T) {
	// Impact observed due north; wind blowing west at level 1 for 120mm
	// pushes the shell 10m to the left of the firing line.
	result, err := Calculate(Input{
		Target: geometry.PolarPoint{Distance: 110, Azimuth: 2},
		Impact: geometry.PolarPoint{Distance: 100, Azimuth: 0},
		Wind:   wind.Observation{Direction: 270, Level: 1},
		Class:  wind.Class120mm,
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if result.CorrectionDistance != 10 || result.CorrectionAzimuth != 2 {
		t.Errorf("raw correction = (%v, %v), expected (10, 2)", result.CorrectionDistance, result.CorrectionAzimuth)
	}
	if result.WindEffect.Range != 0 || result.WindEffect.Deflection != 10 {
		t.Errorf("WindEffect = %+v, expected {0 10}", result.WindEffect)
	}
	expectedAzimuth := math.Round((2+math.Atan2(10, 100)*180/math.Pi)*10) / 10
	if result.FinalCorrection.Distance != 10 || result.FinalCorrection.Azimuth != expectedAzimuth {
		t.Errorf("FinalCorrection = %+v, expected {10 %v}", result.FinalCorrection, expectedAzimuth)
	}
}

func TestCalculateRangeWind(t *testing.T) {
	result, err := Calculate(Input{
		Target: geometry.PolarPoint{Distance: 300, Azimuth: 90},
		Impact: geometry.PolarPoint{Distance: 320, Azimuth: 90},
		Wind:   wind.Observation{Direction: 270, Level: 2},
		Class:  wind.Class300mm,
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	// Headwind relative to the impact bearing adds 100m.
	if result.FinalCorrection.Distance != 80 {
		t.Errorf("FinalCorrection.Distance = %v, expected 80", result.FinalCorrection.Distance)
	}
	if result.CorrectionDistance != -20 {
		t.Errorf("CorrectionDistance = %v, expected -20", result.CorrectionDistance)
	}
}

func TestCalculateInvalidClass(t *testing.T) {
	_, err := Calculate(Input{
		Target: geometry.PolarPoint{Distance: 100, Azimuth: 50},
		Impact: geometry.PolarPoint{Distance: 90, Azimuth: 45},
		Wind:   wind.Observation{Level: 3},
		Class:  wind.ArtilleryClass(99),
	})
	if !errors.Is(err, wind.ErrUnknownArtilleryClass) {
		t.Errorf("Calculate() error = %v, expected ErrUnknownArtilleryClass", err)
	}
}
