// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/artillery-calculator/pkg/group"
)

// FindUnit finds a unit correction by ID in the results slice.
// Returns a pointer to the correction if found, nil otherwise.
func FindUnit(results []group.UnitCorrection, id string) *group.UnitCorrection {
	for i := range results {
		if results[i].ID == id {
			return &results[i]
		}
	}
	return nil
}
