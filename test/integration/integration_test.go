package integration

import (
	"strings"
	"testing"

	"github.com/iwvelando/artillery-calculator/internal/calculator"
	"github.com/iwvelando/artillery-calculator/internal/config"
	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/output"
	"github.com/iwvelando/artillery-calculator/pkg/testutil"
	"github.com/iwvelando/artillery-calculator/pkg/validation"
	"go.uber.org/zap"
)

// runMission loads and processes a mission file exactly as main() does.
func runMission(t *testing.T, path string) (*config.Configuration, calculator.Report) {
	t.Helper()
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration(%s) error = %v", path, err)
	}
	if conf.Output.Format != "" {
		if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
			t.Fatalf("ValidateOutputFormat() error = %v", err)
		}
	}

	report, err := calculator.Run(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("Run(%s) error = %v", path, err)
	}
	return conf, report
}

// TestExampleMission checks the shipped example mission file against the
// hand-computed firing solution.
func TestExampleMission(t *testing.T) {
	conf, report := runMission(t, "../../"+constants.ExampleConfigFile)

	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("expected pretty output, got %q", conf.Output.Format)
	}
	if report.Firing == nil {
		t.Fatal("expected a firing solution")
	}
	if report.Firing.AdjustedDistance != 128.1 || report.Firing.AdjustedAzimuth != 38.7 {
		t.Errorf("unexpected solution %+v", *report.Firing)
	}

	pretty := output.PrettyString(report)
	if !strings.Contains(pretty, "Fire at         | 128.1m / 38.7°") {
		t.Errorf("unexpected pretty output:\n%s", pretty)
	}
}

// TestMissionBaselines pins the CSV rendering of every fixture mission.
func TestMissionBaselines(t *testing.T) {
	tests := []struct {
		file     string
		format   string
		expected []string
	}{
		{
			file:   "../missions/direct.yaml",
			format: constants.OutputFormatCSV,
			expected: []string{
				"base distance,base azimuth,wind range,wind deflection,adjusted distance,adjusted azimuth",
				"128.1,38.7,0.0,0.0,128.1,38.7",
			},
		},
		{
			file:   "../missions/triangulation.yaml",
			format: "",
			expected: []string{
				"correction distance,correction azimuth,wind range,wind deflection,final distance,final azimuth",
				"-20.0,0.0,100.0,0.0,80.0,0.0",
			},
		},
		{
			file:   "../missions/group.yaml",
			format: constants.OutputFormatJSON,
			expected: []string{
				"unit,number,central,distance,azimuth",
				"gun-1,1,true,0.0,0.0",
				"gun-2,2,false,0.5,-5.7",
				"gun-3,3,false,0.5,5.7",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			conf, report := runMission(t, tt.file)
			if conf.Output.Format != tt.format {
				t.Errorf("output format = %q, expected %q", conf.Output.Format, tt.format)
			}

			lines := strings.Split(strings.TrimSpace(output.CsvString(report)), "\n")
			if len(lines) != len(tt.expected) {
				t.Fatalf("expected %d CSV lines, got %d: %v", len(tt.expected), len(lines), lines)
			}
			for i := range tt.expected {
				if lines[i] != tt.expected[i] {
					t.Errorf("line %d = %q, expected %q", i, lines[i], tt.expected[i])
				}
			}
		})
	}
}

// TestGroupMissionCentralUnit checks the group invariants end to end.
func TestGroupMissionCentralUnit(t *testing.T) {
	_, report := runMission(t, "../missions/group.yaml")

	central := testutil.FindUnit(report.Group, "gun-1")
	if central == nil {
		t.Fatal("central unit missing from report")
	}
	if central.Number != constants.CentralUnitNumber || central.Correction.Distance != 0 || central.Correction.Azimuth != 0 {
		t.Errorf("unexpected central unit %+v", *central)
	}

	left := testutil.FindUnit(report.Group, "gun-3")
	right := testutil.FindUnit(report.Group, "gun-2")
	if left == nil || right == nil {
		t.Fatal("flanking units missing from report")
	}
	if left.Correction.Azimuth != -right.Correction.Azimuth {
		t.Errorf("expected mirrored azimuth corrections, got %v and %v",
			left.Correction.Azimuth, right.Correction.Azimuth)
	}
}
