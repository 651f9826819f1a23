// Package output provides utilities for formatting and displaying mission
// reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/artillery-calculator/internal/calculator"
	"github.com/iwvelando/artillery-calculator/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(report calculator.Report) {
	writePretty(os.Stdout, report)
}

// PrettyString renders the human-readable report into a string.
func PrettyString(report calculator.Report) string {
	var b strings.Builder
	writePretty(&b, report)
	return b.String()
}

func writePretty(w io.Writer, report calculator.Report) {
	fmt.Fprintf(w, "--- Results for %s mission ---\n", report.Mode)
	if report.ArtilleryClass != "" {
		fmt.Fprintf(w, "Artillery class | %s\n", report.ArtilleryClass)
	}
	if report.Wind != nil {
		if report.Wind.Level == 0 {
			fmt.Fprintf(w, "Wind            | calm\n")
		} else {
			fmt.Fprintf(w, "Wind            | level %d toward %s\n", report.Wind.Level, format.Degrees(report.Wind.Direction))
		}
	}

	switch {
	case report.Firing != nil:
		s := report.Firing
		fmt.Fprintf(w, "Base solution   | %s / %s\n", format.Meters(s.BaseDistance), format.Degrees(s.BaseAzimuth))
		fmt.Fprintf(w, "Wind effect     | range %s, deflection %s\n",
			format.SignedMeters(s.WindRangeEffect), format.SignedMeters(s.WindDeflectionEffect))
		fmt.Fprintf(w, "Fire at         | %s / %s\n", format.Meters(s.AdjustedDistance), format.Degrees(s.AdjustedAzimuth))
	case report.Triangulation != nil:
		r := report.Triangulation
		fmt.Fprintf(w, "Raw correction  | %s / %s\n", format.SignedMeters(r.CorrectionDistance), format.SignedDegrees(r.CorrectionAzimuth))
		fmt.Fprintf(w, "Wind effect     | range %s, deflection %s\n",
			format.SignedMeters(r.WindEffect.Range), format.SignedMeters(r.WindEffect.Deflection))
		fmt.Fprintf(w, "Final correction| %s / %s\n",
			format.SignedMeters(r.FinalCorrection.Distance), format.SignedDegrees(r.FinalCorrection.Azimuth))
	case report.Central != nil:
		fmt.Fprintf(w, "Central solution| %s / %s\n", format.Meters(report.Central.BaseDistance), format.Degrees(report.Central.BaseAzimuth))
		fmt.Fprintf(w, "#  | Unit         | Distance | Azimuth\n")
		fmt.Fprintf(w, "__ | ____________ | ________ | _______\n")
		for _, u := range report.Group {
			id := u.ID
			if u.IsCentral {
				id += " *"
			}
			fmt.Fprintf(w, "%-2d | %-12s | %s | %s\n", u.Number, id,
				format.SignedMeters(u.Correction.Distance), format.SignedDegrees(u.Correction.Azimuth))
		}
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(report calculator.Report) {
	fmt.Print(CsvString(report))
}

// CsvString renders the report in comma-separated value format. The columns
// depend on the mission mode.
func CsvString(report calculator.Report) string {
	var b strings.Builder
	cw := csv.NewWriter(&b)

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

	switch {
	case report.Firing != nil:
		s := report.Firing
		_ = cw.Write([]string{"base distance", "base azimuth", "wind range", "wind deflection", "adjusted distance", "adjusted azimuth"})
		_ = cw.Write([]string{f(s.BaseDistance), f(s.BaseAzimuth), f(s.WindRangeEffect), f(s.WindDeflectionEffect), f(s.AdjustedDistance), f(s.AdjustedAzimuth)})
	case report.Triangulation != nil:
		r := report.Triangulation
		_ = cw.Write([]string{"correction distance", "correction azimuth", "wind range", "wind deflection", "final distance", "final azimuth"})
		_ = cw.Write([]string{f(r.CorrectionDistance), f(r.CorrectionAzimuth), f(r.WindEffect.Range), f(r.WindEffect.Deflection), f(r.FinalCorrection.Distance), f(r.FinalCorrection.Azimuth)})
	case report.Central != nil:
		_ = cw.Write([]string{"unit", "number", "central", "distance", "azimuth"})
		for _, u := range report.Group {
			_ = cw.Write([]string{u.ID, strconv.Itoa(u.Number), strconv.FormatBool(u.IsCentral), f(u.Correction.Distance), f(u.Correction.Azimuth)})
		}
	}

	cw.Flush()
	return b.String()
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(report calculator.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
