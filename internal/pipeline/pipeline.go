// Package pipeline sequences the detectability stages per instrument and
// assembles the cross-instrument comparison. Instruments run independently;
// one instrument's failure is reported as a no-result record, while a
// configuration error aborts the whole run because it signals an input
// mismatch no instrument can recover from.
package pipeline

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/jmason86/ESCAPE/pkg/config"
	"github.com/jmason86/ESCAPE/pkg/dimming"
	"github.com/jmason86/ESCAPE/pkg/instrument"
	"github.com/jmason86/ESCAPE/pkg/spectral"
)

// Pipeline runs the full detectability analysis for a set of instruments
// against one scaled stellar spectral series.
type Pipeline struct {
	cfg        *config.ConfigData
	attenuator spectral.Attenuator
	logger     *zap.SugaredLogger
}

// New creates a pipeline from a validated configuration.
func New(cfg *config.ConfigData, attenuator spectral.Attenuator, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{cfg: cfg, attenuator: attenuator, logger: logger}
}

// Run rescales the reference series for the configured target, then fans out
// one worker per instrument and gathers the comparison. The scaled series is
// shared read-only across workers.
func (p *Pipeline) Run(ctx context.Context, series *spectral.Series, responses []instrument.Response) (*RunResult, error) {
	scaler := &spectral.Scaler{
		Attenuator:    p.attenuator,
		DistancePC:    p.cfg.Target.DistancePC,
		ColumnDensity: p.cfg.Target.ColumnDensity,
		CoronalTempK:  p.cfg.Target.CoronalTemperatureK,
		BGEventRatio:  p.cfg.Target.ExpectedBGEventRatio,
	}
	scaled, err := scaler.Scale(series)
	if err != nil {
		return nil, err
	}
	p.logger.Infow("scaled reference series",
		"distance_pc", p.cfg.Target.DistancePC,
		"column_density", p.cfg.Target.ColumnDensity,
		"wavelengths", len(scaled.Wave),
		"samples", len(scaled.JD))

	run := &RunResult{
		ID:                uuid.New().String(),
		Started:           time.Now().UTC(),
		DistancePC:        p.cfg.Target.DistancePC,
		ColumnDensity:     p.cfg.Target.ColumnDensity,
		ExposureTimeSec:   p.cfg.Observation.ExposureTimeSec,
		NumLinesToCombine: p.cfg.Analysis.NumLinesToCombine,
		Instruments:       make([]InstrumentResult, len(responses)),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(responses))
	for i, resp := range responses {
		wg.Add(1)
		go func(i int, resp instrument.Response) {
			defer wg.Done()
			res, err := p.runInstrument(ctx, scaled, resp)
			if err != nil {
				errs[i] = err
				run.Instruments[i] = InstrumentResult{Instrument: resp.Name, Err: err.Error()}
				return
			}
			run.Instruments[i] = *res
		}(i, resp)
	}
	wg.Wait()
	run.Finished = time.Now().UTC()

	for _, err := range errs {
		var cfgErr *spectral.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		if err != nil {
			p.logger.Warnw("instrument failed, reporting no result", "error", err)
		}
	}
	return run, nil
}

// runInstrument runs fold → integrate → extract → baseline/depth for singles
// and the combination engine for the configured k.
func (p *Pipeline) runInstrument(ctx context.Context, scaled *spectral.Series, resp instrument.Response) (*InstrumentResult, error) {
	folded, err := instrument.Fold(scaled, resp)
	if err != nil {
		return nil, err
	}
	exposures, err := instrument.Integrate(folded, p.cfg.Observation.ExposureTimeSec, p.cfg.Observation.CadenceSec)
	if err != nil {
		return nil, err
	}
	lines, err := dimming.ExtractLines(exposures, p.cfg.Analysis.LineCenters,
		p.cfg.Analysis.LineHalfWidth, *p.cfg.Analysis.DropLastSample)
	if err != nil {
		return nil, err
	}
	p.logger.Debugw("extracted emission lines",
		"instrument", resp.Name, "lines", len(lines.Centers), "exposures", len(lines.JD))

	res := &InstrumentResult{
		Instrument: resp.Name,
		JD:         lines.JD,
		ISO:        lines.ISO,
		BestLine:   -1,
		BestCombo:  -1,
	}

	base := dimming.EstimateBaseline(lines.Counts)
	depth := dimming.ComputeDepth(lines.Counts, base, p.cfg.Analysis.PreEventExposures)
	res.Lines = make([]LineResult, len(lines.Centers))
	for i := range lines.Centers {
		lr := LineResult{
			Center:        lines.Centers[i],
			Baseline:      base.Value[i],
			BaselineSigma: base.Sigma[i],
			Min:           depth.Min[i],
			Measurable:    depth.Measurable[i],
		}
		if lr.Measurable {
			lr.DepthPercent = depth.Percent[i]
			lr.DepthSigma = dimming.PropagateDepthSigma(depth.Sigma[i], base.Value[i], base.Sigma[i], depth.Ratio[i])
			if math.IsInf(lr.DepthSigma, 0) || math.IsNaN(lr.DepthSigma) {
				lr.DepthPercent, lr.DepthSigma = 0, 0
				lr.Measurable = false
			} else {
				if lr.DepthSigma > 0 {
					lr.Significance = lr.DepthPercent / lr.DepthSigma
				}
				if res.BestLine < 0 || lr.DepthPercent > res.Lines[res.BestLine].DepthPercent {
					res.BestLine = i
				}
			}
		}
		res.Lines[i] = lr
	}

	engine := &dimming.Engine{
		Lines:          lines,
		K:              p.cfg.Analysis.NumLinesToCombine,
		PreEventWindow: p.cfg.Analysis.PreEventExposures,
		Workers:        p.combinationWorkers(),
	}
	comboCtx := ctx
	if p.cfg.Analysis.CombinationTimeoutSec > 0 {
		var cancel context.CancelFunc
		comboCtx, cancel = context.WithTimeout(ctx, time.Duration(p.cfg.Analysis.CombinationTimeoutSec*float64(time.Second)))
		defer cancel()
	}
	combos, err := engine.Run(comboCtx)
	if err != nil {
		return nil, err
	}
	res.Combinations = combos
	for i, c := range combos {
		if !c.Measurable || c.Sigma <= 0 {
			continue
		}
		if res.BestCombo < 0 || c.Depth/c.Sigma > combos[res.BestCombo].Depth/combos[res.BestCombo].Sigma {
			res.BestCombo = i
		}
	}

	p.summarize(res, lines)
	return res, nil
}

// summarize fills the comparison fields from the best combination, falling
// back to the best single line when no combination is measurable.
func (p *Pipeline) summarize(res *InstrumentResult, lines *dimming.LineSeries) {
	var indices []int
	switch {
	case res.BestCombo >= 0:
		best := res.Combinations[res.BestCombo]
		res.BestDepthPercent = best.Depth
		if best.Sigma > 0 {
			res.Significance = best.Depth / best.Sigma
		}
		indices = best.Indices
	case res.BestLine >= 0:
		best := res.Lines[res.BestLine]
		res.BestDepthPercent = best.DepthPercent
		res.Significance = best.Significance
		indices = []int{res.BestLine}
	default:
		return
	}

	summed := make([]float64, len(lines.JD))
	for _, li := range indices {
		for j, v := range lines.Counts[li] {
			summed[j] += v
		}
	}
	res.SNRProxy = make([]float64, len(summed))
	for i, v := range summed {
		if v > 0 {
			res.SNRProxy[i] = math.Sqrt(v)
		}
	}

	// Linear trend over the pre-event window: counts per hour.
	window := p.cfg.Analysis.PreEventExposures
	if window > len(summed) {
		window = len(summed)
	}
	if window >= 2 {
		hours := make([]float64, window)
		for i := 0; i < window; i++ {
			hours[i] = (lines.JD[i] - lines.JD[0]) * 24.0
		}
		_, slope := stat.LinearRegression(hours, summed[:window], nil, false)
		res.SlopePerHour = slope
	}
}

func (p *Pipeline) combinationWorkers() int {
	if p.cfg.Analysis.CombinationWorkers > 0 {
		return p.cfg.Analysis.CombinationWorkers
	}
	return runtime.NumCPU()
}
