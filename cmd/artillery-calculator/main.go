package main

import (
	"flag"
	"fmt"

	"github.com/iwvelando/artillery-calculator/internal/calculator"
	"github.com/iwvelando/artillery-calculator/internal/config"
	"github.com/iwvelando/artillery-calculator/internal/logging"
	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/output"
	"github.com/iwvelando/artillery-calculator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to mission file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the mission file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	report, err := calculator.Run(logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute mission",
			zap.String("op", "main"),
			zap.String("mode", conf.Mission.Mode),
			zap.Error(err),
		)
	}

	for _, warning := range report.Warnings {
		logger.Warn("Mission warning: "+warning,
			zap.String("op", "main"),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(report)
	case constants.OutputFormatCSV:
		output.CsvFormat(report)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(report); err != nil {
			logger.Fatal("failed to write report",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
