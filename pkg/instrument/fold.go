// Package instrument folds a scaled stellar spectrum through an instrument's
// effective-area curve and integrates the resulting count rates into
// finite-length exposures.
package instrument

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/jmason86/ESCAPE/pkg/spectral"
)

// Response is one instrument's wavelength-dependent sensitivity: geometric
// collecting area times quantum efficiency, converting incident photon flux
// to detected counts. Each instrument owns its Response; responses are never
// shared or mutated across instruments.
type Response struct {
	Name    string
	Wave    []float64 // ascending, Angstroms
	EffArea []float64 // cm², non-negative
}

// Validate checks the response curve's shape.
func (r Response) Validate() error {
	if len(r.Wave) != len(r.EffArea) {
		return &spectral.DataShapeError{Field: "effective area", Want: len(r.Wave), Got: len(r.EffArea)}
	}
	if len(r.Wave) < 2 {
		return fmt.Errorf("instrument %s: effective-area curve has %d samples", r.Name, len(r.Wave))
	}
	for i := 1; i < len(r.Wave); i++ {
		if r.Wave[i] <= r.Wave[i-1] {
			return &spectral.DataShapeError{Field: "response wave ordering", Want: i, Got: i, Index: i}
		}
	}
	for i, a := range r.EffArea {
		if a < 0 {
			return fmt.Errorf("instrument %s: negative effective area %g at index %d", r.Name, a, i)
		}
	}
	return nil
}

// CountRateSeries is a spectral series in detected counts per second for one
// instrument, carrying the effective-area curve interpolated onto the series
// wavelength grid.
type CountRateSeries struct {
	Name    string
	Wave    []float64
	EffArea []float64   // interpolated onto Wave
	Rate    [][]float64 // [wavelength][time], counts/s
	JD      []float64
	ISO     []string
}

// Fold multiplies every time column of the scaled series by the instrument's
// effective area, linearly interpolated onto the series wavelength grid.
// Outside the response curve's domain the edge value is held constant, which
// is the boundary behavior of gonum's piecewise-linear predictor. The result
// is deterministic for identical inputs.
func Fold(s *spectral.Series, r Response) (*CountRateSeries, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(r.Wave, r.EffArea); err != nil {
		return nil, fmt.Errorf("instrument %s: effective-area interpolation: %w", r.Name, err)
	}
	aeff := make([]float64, len(s.Wave))
	for i, w := range s.Wave {
		aeff[i] = pl.Predict(w)
	}

	rate := make([][]float64, len(s.Data))
	for i, row := range s.Data {
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = v * aeff[i]
		}
		rate[i] = out
	}

	return &CountRateSeries{
		Name:    r.Name,
		Wave:    s.Wave,
		EffArea: aeff,
		Rate:    rate,
		JD:      s.JD,
		ISO:     s.ISO,
	}, nil
}
