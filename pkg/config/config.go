// Package config defines the detectability run configuration and the
// providers that load it.
package config

import (
	"fmt"

	"github.com/jmason86/ESCAPE/pkg/dimming"
)

// ConfigData is the complete configuration for one detectability run.
type ConfigData struct {
	Target      TargetData       `yaml:"target"`
	Observation ObservationData  `yaml:"observation"`
	Analysis    AnalysisData     `yaml:"analysis"`
	Dataset     DatasetData      `yaml:"dataset"`
	Instruments []InstrumentData `yaml:"instruments"`
	Output      OutputData       `yaml:"output,omitempty"`
}

// TargetData describes the emulated target star and sight line.
type TargetData struct {
	DistancePC           float64 `yaml:"distance_pc,omitempty"`
	ColumnDensity        float64 `yaml:"column_density,omitempty"`
	CoronalTemperatureK  float64 `yaml:"coronal_temperature_k,omitempty"`
	ExpectedBGEventRatio float64 `yaml:"expected_bg_event_ratio,omitempty"`
}

// ObservationData describes the emulated observation.
type ObservationData struct {
	ExposureTimeSec float64 `yaml:"exposure_time_sec,omitempty"`
	CadenceSec      float64 `yaml:"cadence_sec,omitempty"`
	BandpassMin     float64 `yaml:"bandpass_min,omitempty"`
	BandpassMax     float64 `yaml:"bandpass_max,omitempty"`
}

// AnalysisData holds the dimming-analysis parameters. PreEventExposures and
// DropLastSample encode dataset-specific behavior of the canonical solar
// reference set; changing them changes numeric results, so they are named
// configuration rather than constants.
type AnalysisData struct {
	LineCenters           []float64 `yaml:"line_centers,omitempty"`
	LineHalfWidth         float64   `yaml:"line_half_width,omitempty"`
	NumLinesToCombine     int       `yaml:"num_lines_to_combine,omitempty"`
	PreEventExposures     int       `yaml:"pre_event_exposures,omitempty"`
	DropLastSample        *bool     `yaml:"drop_last_sample,omitempty"`
	CombinationWorkers    int       `yaml:"combination_workers,omitempty"`
	CombinationTimeoutSec float64   `yaml:"combination_timeout_sec,omitempty"`
}

// DatasetData locates the reference solar irradiance time series.
type DatasetData struct {
	IrradianceCSV string `yaml:"irradiance_csv"`
}

// InstrumentData names one instrument under comparison and locates its
// effective-area curve.
type InstrumentData struct {
	Name        string `yaml:"name"`
	ResponseCSV string `yaml:"response_csv"`
}

// OutputData holds the optional reporting sinks.
type OutputData struct {
	JSONPath   string `yaml:"json_path,omitempty"`
	CSVDir     string `yaml:"csv_dir,omitempty"`
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// Defaults baked into any field left unset.
const (
	DefaultDistancePC           = 6.0
	DefaultColumnDensity        = 1e18
	DefaultCoronalTemperatureK  = 1e6
	DefaultExpectedBGEventRatio = 1.0
	DefaultExposureTimeSec      = 1800.0
	DefaultCadenceSec           = 10.0
	DefaultBandpassMin          = 90.0
	DefaultBandpassMax          = 800.0
	DefaultNumLinesToCombine    = 5
	DefaultPreEventExposures    = 12
	DefaultLineHalfWidth        = dimming.DefaultLineHalfWidth
)

// ApplyDefaults fills every unset field with its default.
func (c *ConfigData) ApplyDefaults() {
	if c.Target.DistancePC == 0 {
		c.Target.DistancePC = DefaultDistancePC
	}
	if c.Target.ColumnDensity == 0 {
		c.Target.ColumnDensity = DefaultColumnDensity
	}
	if c.Target.CoronalTemperatureK == 0 {
		c.Target.CoronalTemperatureK = DefaultCoronalTemperatureK
	}
	if c.Target.ExpectedBGEventRatio == 0 {
		c.Target.ExpectedBGEventRatio = DefaultExpectedBGEventRatio
	}
	if c.Observation.ExposureTimeSec == 0 {
		c.Observation.ExposureTimeSec = DefaultExposureTimeSec
	}
	if c.Observation.CadenceSec == 0 {
		c.Observation.CadenceSec = DefaultCadenceSec
	}
	if c.Observation.BandpassMin == 0 {
		c.Observation.BandpassMin = DefaultBandpassMin
	}
	if c.Observation.BandpassMax == 0 {
		c.Observation.BandpassMax = DefaultBandpassMax
	}
	if len(c.Analysis.LineCenters) == 0 {
		c.Analysis.LineCenters = append([]float64(nil), dimming.DefaultLineCenters...)
	}
	if c.Analysis.LineHalfWidth == 0 {
		c.Analysis.LineHalfWidth = DefaultLineHalfWidth
	}
	if c.Analysis.NumLinesToCombine == 0 {
		c.Analysis.NumLinesToCombine = DefaultNumLinesToCombine
	}
	if c.Analysis.PreEventExposures == 0 {
		c.Analysis.PreEventExposures = DefaultPreEventExposures
	}
	if c.Analysis.DropLastSample == nil {
		t := true
		c.Analysis.DropLastSample = &t
	}
}

// Validate rejects configurations the pipeline cannot run.
func (c *ConfigData) Validate() error {
	if c.Target.DistancePC <= 0 {
		return fmt.Errorf("config: distance_pc must be positive, got %g", c.Target.DistancePC)
	}
	if c.Target.ColumnDensity <= 0 {
		return fmt.Errorf("config: column_density must be positive, got %g", c.Target.ColumnDensity)
	}
	if c.Observation.ExposureTimeSec <= 0 {
		return fmt.Errorf("config: exposure_time_sec must be positive, got %g", c.Observation.ExposureTimeSec)
	}
	if c.Observation.BandpassMax <= c.Observation.BandpassMin {
		return fmt.Errorf("config: bandpass [%g, %g] is empty", c.Observation.BandpassMin, c.Observation.BandpassMax)
	}
	if n := len(c.Analysis.LineCenters); c.Analysis.NumLinesToCombine < 1 || c.Analysis.NumLinesToCombine > n {
		return fmt.Errorf("config: num_lines_to_combine %d outside [1, %d]", c.Analysis.NumLinesToCombine, n)
	}
	if c.Dataset.IrradianceCSV == "" {
		return fmt.Errorf("config: dataset.irradiance_csv is required")
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("config: at least one instrument is required")
	}
	for i, inst := range c.Instruments {
		if inst.Name == "" || inst.ResponseCSV == "" {
			return fmt.Errorf("config: instrument %d needs both name and response_csv", i)
		}
	}
	return nil
}
