package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Attenuator supplies an interstellar-medium transmittance curve over
// wavelength for a sight line with the given log10 hydrogen column density
// (cm⁻²), Doppler shift, and Doppler broadening (both km/s).
type Attenuator interface {
	Transmittance(logColumnDensity, dopplerShiftKmS, dopplerBroadeningKmS float64) (wave, trans []float64, err error)
}

// Doppler parameters passed to the attenuator. The reference sight line is at
// rest with thermal broadening only.
const (
	dopplerShiftKmS      = 0.0
	dopplerBroadeningKmS = 10.0
)

// Scaler rescales a 1-AU solar reference series to emulate observing the same
// star at an arbitrary distance behind an arbitrary interstellar column.
type Scaler struct {
	Attenuator    Attenuator
	DistancePC    float64 // target stellar distance, parsecs
	ColumnDensity float64 // hydrogen column density, cm⁻²
	CoronalTempK  float64 // carried for the temperature hook, not yet modeled
	BGEventRatio  float64 // carried for the background-ratio hook, not yet modeled
}

// Scale applies distance dilution, interstellar attenuation, and the two
// placeholder hooks in order, returning a new series of the same shape.
func (sc *Scaler) Scale(s *Series) (*Series, error) {
	out := sc.ScaleToDistance(s)
	out, err := sc.ApplyAttenuation(out)
	if err != nil {
		return nil, err
	}
	out = sc.ScaleToTemperature(out)
	out = sc.ScaleToBackgroundRatio(out)
	return out, nil
}

// ScaleToDistance applies inverse-square dilution from the 1-AU solar
// reference to the target stellar distance.
func (sc *Scaler) ScaleToDistance(s *Series) *Series {
	factor := math.Pow(AUCm/(sc.DistancePC*ParsecCm), 2)
	return scaleByColumn(s, func(int) float64 { return factor })
}

// ApplyAttenuation multiplies the series by the attenuator's transmittance
// curve, linearly interpolated onto the series wavelength grid. The series
// grid must overlap the attenuation curve's domain; a disjoint grid is a
// configuration error, not a quiet extrapolation.
func (sc *Scaler) ApplyAttenuation(s *Series) (*Series, error) {
	wave, trans, err := sc.Attenuator.Transmittance(math.Log10(sc.ColumnDensity), dopplerShiftKmS, dopplerBroadeningKmS)
	if err != nil {
		return nil, fmt.Errorf("attenuator: %w", err)
	}
	if len(wave) < 2 {
		return nil, fmt.Errorf("attenuator: transmittance curve has %d samples", len(wave))
	}
	if s.Wave[len(s.Wave)-1] < wave[0] || s.Wave[0] > wave[len(wave)-1] {
		return nil, &ConfigurationError{
			Stage: "attenuation",
			Msg: fmt.Sprintf("series grid [%g, %g] does not overlap transmittance domain [%g, %g]",
				s.Wave[0], s.Wave[len(s.Wave)-1], wave[0], wave[len(wave)-1]),
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(wave, trans); err != nil {
		return nil, fmt.Errorf("attenuation interpolation: %w", err)
	}
	factors := make([]float64, len(s.Wave))
	for i, w := range s.Wave {
		factors[i] = pl.Predict(w)
	}
	return scaleByColumn(s, func(i int) float64 { return factors[i] }), nil
}

// ScaleToTemperature would rescale line intensities from the solar coronal
// temperature to the target star's. Not yet modeled; the series passes
// through unchanged.
func (sc *Scaler) ScaleToTemperature(s *Series) *Series {
	return s
}

// ScaleToBackgroundRatio would rescale for the expected background-to-event
// intensity ratio of the target star. Not yet modeled; the series passes
// through unchanged.
func (sc *Scaler) ScaleToBackgroundRatio(s *Series) *Series {
	return s
}

// scaleByColumn builds a new series with each wavelength row multiplied by a
// per-row factor.
func scaleByColumn(s *Series, factor func(waveIdx int) float64) *Series {
	data := make([][]float64, len(s.Data))
	for i, row := range s.Data {
		f := factor(i)
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = v * f
		}
		data[i] = out
	}
	return &Series{Wave: s.Wave, Data: data, JD: s.JD, ISO: s.ISO}
}
