// Package app wires configuration, data loading, the analysis pipeline, and
// reporting into one run.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jmason86/ESCAPE/internal/datasource"
	"github.com/jmason86/ESCAPE/internal/log"
	"github.com/jmason86/ESCAPE/internal/pipeline"
	"github.com/jmason86/ESCAPE/internal/report"
	"github.com/jmason86/ESCAPE/pkg/config"
	"github.com/jmason86/ESCAPE/pkg/instrument"
	"github.com/jmason86/ESCAPE/pkg/ism"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run executes one detectability comparison: load the reference series and
// instrument responses, run the pipeline, and write the configured outputs.
func (a *App) Run(ctx context.Context) error {
	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}

	series, err := datasource.LoadSeries(cfg.Dataset.IrradianceCSV,
		cfg.Observation.BandpassMin, cfg.Observation.BandpassMax)
	if err != nil {
		return fmt.Errorf("loading irradiance series: %w", err)
	}
	log.Infow("loaded reference irradiance series",
		"path", cfg.Dataset.IrradianceCSV,
		"wavelengths", len(series.Wave),
		"samples", len(series.JD))

	responses := make([]instrument.Response, len(cfg.Instruments))
	for i, inst := range cfg.Instruments {
		responses[i], err = datasource.LoadResponse(inst.ResponseCSV, inst.Name)
		if err != nil {
			return fmt.Errorf("loading response for %s: %w", inst.Name, err)
		}
	}

	p := pipeline.New(cfg, ism.New(), a.logger)
	run, err := p.Run(ctx, series, responses)
	if err != nil {
		return err
	}

	for i := range run.Instruments {
		inst := &run.Instruments[i]
		if !inst.OK() {
			log.Infow("no result", "instrument", inst.Instrument, "error", inst.Err)
			continue
		}
		log.Infow("detectability",
			"instrument", inst.Instrument,
			"best_depth_percent", inst.BestDepthPercent,
			"significance", inst.Significance)
	}

	if cfg.Output.JSONPath != "" {
		if err := report.WriteJSON(cfg.Output.JSONPath, run); err != nil {
			return fmt.Errorf("writing JSON report: %w", err)
		}
	}
	if cfg.Output.CSVDir != "" {
		if err := report.WriteCSV(cfg.Output.CSVDir, run); err != nil {
			return fmt.Errorf("writing CSV report: %w", err)
		}
	}
	if cfg.Output.SQLitePath != "" {
		archive, err := report.OpenArchive(cfg.Output.SQLitePath)
		if err != nil {
			return err
		}
		defer archive.Close()
		if err := archive.SaveRun(run); err != nil {
			return fmt.Errorf("archiving run: %w", err)
		}
	}

	log.Infof("run %s complete: %d instruments compared", run.ID, len(run.Instruments))
	return nil
}
