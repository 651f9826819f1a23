// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateMode checks if the calculation mode is supported.
func ValidateMode(mode string) error {
	switch mode {
	case constants.ModeDirect, constants.ModeTriangulation, constants.ModeGroup:
		return nil
	}
	return fmt.Errorf("expected mode of %s, %s or %s, got %q",
		constants.ModeDirect, constants.ModeTriangulation, constants.ModeGroup, mode)
}
