// Package spectral defines the spectral time-series data model shared by the
// dimming-detectability pipeline and the stellar rescaling step. A series is a
// wavelength-resolved irradiance matrix on a Julian-date time axis; every
// pipeline stage consumes a series and constructs a new one, so series values
// are treated as immutable once built.
package spectral

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Physical constants used by the distance rescaling, both in centimeters.
const (
	AUCm     = 1.495978707e13
	ParsecCm = 3.0856775814913673e18
)

// Series is a wavelength-resolved time series. Data is indexed
// [wavelength][time]; units depend on the pipeline stage (irradiance, count
// rate, or integrated counts).
type Series struct {
	Wave []float64   // ascending, unique, Angstroms
	Data [][]float64 // [len(Wave)][len(JD)]
	JD   []float64   // strictly increasing Julian dates
	ISO  []string    // human-readable UTC timestamps, parallel to JD
}

// NewSeries validates axis shapes and builds a Series. The intensity matrix
// must have one row per wavelength sample and one column per time sample.
func NewSeries(wave []float64, data [][]float64, jd []float64, iso []string) (*Series, error) {
	if len(data) != len(wave) {
		return nil, &DataShapeError{Field: "data rows", Want: len(wave), Got: len(data)}
	}
	for i, row := range data {
		if len(row) != len(jd) {
			return nil, &DataShapeError{Field: "data columns", Want: len(jd), Got: len(row), Index: i}
		}
	}
	if len(iso) != len(jd) {
		return nil, &DataShapeError{Field: "iso timestamps", Want: len(jd), Got: len(iso)}
	}
	for i := 1; i < len(wave); i++ {
		if wave[i] <= wave[i-1] {
			return nil, &DataShapeError{Field: "wave ordering", Want: i, Got: i, Index: i}
		}
	}
	for i := 1; i < len(jd); i++ {
		if jd[i] <= jd[i-1] {
			return nil, &DataShapeError{Field: "jd ordering", Want: i, Got: i, Index: i}
		}
	}
	return &Series{Wave: wave, Data: data, JD: jd, ISO: iso}, nil
}

// ISOFromJD renders a Julian-date axis as UTC timestamps. Used when a data
// source supplies only the JD axis.
func ISOFromJD(jd []float64) []string {
	iso := make([]string, len(jd))
	for i, d := range jd {
		iso[i] = julian.JDToTime(d).UTC().Format(time.RFC3339)
	}
	return iso
}

// ElapsedSeconds converts a Julian-date axis to seconds elapsed since its
// first sample. Julian dates count days, so one JD unit is 86400 seconds.
func ElapsedSeconds(jd []float64) []float64 {
	sec := make([]float64, len(jd))
	for i, d := range jd {
		sec[i] = (d - jd[0]) * 86400.0
	}
	return sec
}

// WaveStep returns the wavelength sample spacing, assumed uniform. Zero is
// returned for grids with fewer than two samples.
func WaveStep(wave []float64) float64 {
	if len(wave) < 2 {
		return 0
	}
	return wave[1] - wave[0]
}
