// Package calculator runs a mission through the matching correction engine
// and collects the results into a report.
package calculator

import (
	"fmt"

	"github.com/iwvelando/artillery-calculator/internal/config"
	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/firing"
	"github.com/iwvelando/artillery-calculator/pkg/group"
	"github.com/iwvelando/artillery-calculator/pkg/triangulation"
	"github.com/iwvelando/artillery-calculator/pkg/wind"
	"go.uber.org/zap"
)

// Report holds the outcome of one mission. Exactly one of Firing,
// Triangulation or Group is set, according to Mode.
type Report struct {
	Mode           string                 `json:"mode"`
	ArtilleryClass string                 `json:"artilleryClass,omitempty"`
	Wind           *wind.Observation      `json:"wind,omitempty"`
	Firing         *firing.Solution       `json:"firing,omitempty"`
	Triangulation  *triangulation.Result  `json:"triangulation,omitempty"`
	Group          []group.UnitCorrection `json:"group,omitempty"`
	Central        *group.CentralSolution `json:"central,omitempty"`
	Warnings       []string               `json:"warnings,omitempty"`
}

// Run validates the mission in conf and computes its report.
func Run(logger *zap.Logger, conf config.Configuration) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := conf.Mission
	if err := m.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid mission: %w", err)
	}

	report := Report{
		Mode:     m.Mode,
		Warnings: conf.ValidateConfiguration(),
	}
	for _, warning := range report.Warnings {
		logger.Debug(warning,
			zap.String("op", "calculator.Run"),
		)
	}

	var err error
	switch m.Mode {
	case constants.ModeDirect:
		err = runDirect(logger, m, &report)
	case constants.ModeTriangulation:
		err = runTriangulation(logger, m, &report)
	case constants.ModeGroup:
		err = runGroup(logger, m, &report)
	}
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

func runDirect(logger *zap.Logger, m config.Mission, report *Report) error {
	class, err := m.Class()
	if err != nil {
		return err
	}
	solution, err := firing.Calculate(firing.Input{
		Artillery: *m.Artillery,
		Target:    *m.Target,
		Wind:      m.Wind,
		Class:     class,
	})
	if err != nil {
		return fmt.Errorf("failed to compute firing solution: %w", err)
	}

	logger.Debug("computed firing solution",
		zap.String("op", "calculator.runDirect"),
		zap.Stringer("artillery", m.Artillery),
		zap.Stringer("target", m.Target),
		zap.Float64("adjustedDistance", solution.AdjustedDistance),
		zap.Float64("adjustedAzimuth", solution.AdjustedAzimuth),
	)

	report.ArtilleryClass = class.String()
	report.Wind = &m.Wind
	report.Firing = &solution
	return nil
}

func runTriangulation(logger *zap.Logger, m config.Mission, report *Report) error {
	class, err := m.Class()
	if err != nil {
		return err
	}
	result, err := triangulation.Calculate(triangulation.Input{
		Target: *m.Target,
		Impact: *m.Impact,
		Wind:   m.Wind,
		Class:  class,
	})
	if err != nil {
		return fmt.Errorf("failed to compute triangulation: %w", err)
	}

	logger.Debug("computed triangulation correction",
		zap.String("op", "calculator.runTriangulation"),
		zap.Stringer("target", m.Target),
		zap.Stringer("impact", m.Impact),
		zap.Float64("distance", result.FinalCorrection.Distance),
		zap.Float64("azimuth", result.FinalCorrection.Azimuth),
	)

	report.ArtilleryClass = class.String()
	report.Wind = &m.Wind
	report.Triangulation = &result
	return nil
}

func runGroup(logger *zap.Logger, m config.Mission, report *Report) error {
	central := *m.Group.Central
	results, err := group.Corrections(central, m.Group.Units)
	if err != nil {
		return fmt.Errorf("failed to compute group corrections: %w", err)
	}

	logger.Debug("computed group corrections",
		zap.String("op", "calculator.runGroup"),
		zap.Float64("baseDistance", central.BaseDistance),
		zap.Float64("baseAzimuth", central.BaseAzimuth),
		zap.Int("units", len(results)),
	)

	report.Central = &central
	report.Group = results
	return nil
}
