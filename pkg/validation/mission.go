package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/mathutil"
)

// ValidateBearingSpread warns when the target and impact bearings are too far
// apart for the linear triangulation correction.
func ValidateBearingSpread(targetAzimuth, impactAzimuth float64) string {
	spread := math.Abs(mathutil.NormalizeDelta(targetAzimuth - impactAzimuth))
	if spread > constants.MaxBearingSpread {
		return fmt.Sprintf("Target and impact bearings differ by %.1f° (> %.0f°) - triangulation correction is approximate",
			spread, constants.MaxBearingSpread)
	}
	return ""
}

// ValidateGroupSpread warns when a unit sits too far from the central unit
// relative to the firing range for the group corrections to hold.
func ValidateGroupSpread(unitID string, baseDistance, dx, dy float64) string {
	offset := math.Hypot(dx, dy)
	if offset == 0 {
		return ""
	}
	if baseDistance <= 0 || offset/baseDistance > constants.MaxGroupSpreadRatio {
		return fmt.Sprintf("Unit '%s' is %.1fm from the central unit at a range of %.1fm - group correction is approximate",
			unitID, offset, baseDistance)
	}
	return ""
}
