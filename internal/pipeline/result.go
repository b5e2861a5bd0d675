package pipeline

import (
	"time"

	"github.com/jmason86/ESCAPE/pkg/dimming"
)

// LineResult is the dimming measurement for a single candidate line.
type LineResult struct {
	Center        float64 `json:"center"`
	Baseline      float64 `json:"baseline"`
	BaselineSigma float64 `json:"baseline_sigma"`
	Min           float64 `json:"min"`
	DepthPercent  float64 `json:"depth_percent"`
	DepthSigma    float64 `json:"depth_sigma"` // percent units, propagated
	Significance  float64 `json:"significance"`
	Measurable    bool    `json:"measurable"`
}

// InstrumentResult is the uniform per-instrument record handed to reporting
// and plotting. A failed instrument carries only its name and error.
type InstrumentResult struct {
	Instrument string `json:"instrument"`
	Err        string `json:"error,omitempty"`

	JD           []float64             `json:"jd,omitempty"`
	ISO          []string              `json:"iso,omitempty"`
	SNRProxy     []float64             `json:"snr_proxy,omitempty"`
	Lines        []LineResult          `json:"lines,omitempty"`
	BestLine     int                   `json:"best_line"`
	Combinations []dimming.Combination `json:"combinations,omitempty"`
	BestCombo    int                   `json:"best_combination"`

	BestDepthPercent float64 `json:"best_depth_percent"`
	SlopePerHour     float64 `json:"slope_per_hour"`
	Significance     float64 `json:"significance"`
}

// OK reports whether the instrument produced a measurement.
func (r *InstrumentResult) OK() bool { return r.Err == "" }

// RunResult is one full detectability comparison across instruments.
type RunResult struct {
	ID       string    `json:"id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	DistancePC        float64 `json:"distance_pc"`
	ColumnDensity     float64 `json:"column_density"`
	ExposureTimeSec   float64 `json:"exposure_time_sec"`
	NumLinesToCombine int     `json:"num_lines_to_combine"`

	Instruments []InstrumentResult `json:"instruments"`
}
