package spectral

import (
	"errors"
	"math"
	"testing"
)

// flatAttenuator returns a constant transmittance over a fixed domain.
type flatAttenuator struct {
	min, max, trans float64
}

func (f flatAttenuator) Transmittance(logN, shift, broadening float64) ([]float64, []float64, error) {
	wave := []float64{f.min, f.max}
	return wave, []float64{f.trans, f.trans}, nil
}

func testSeries(t *testing.T) *Series {
	t.Helper()
	wave := []float64{170.0, 171.0, 172.0}
	data := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	jd := []float64{2458000.0, 2458000.1, 2458000.2}
	iso := []string{"a", "b", "c"}
	s, err := NewSeries(wave, data, jd, iso)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDistanceScalingInverseSquare(t *testing.T) {
	s := testSeries(t)
	d1, d2 := 3.0, 6.0
	sc1 := &Scaler{DistancePC: d1}
	sc2 := &Scaler{DistancePC: d2}
	out1 := sc1.ScaleToDistance(s)
	out2 := sc2.ScaleToDistance(s)

	want := (d1 / d2) * (d1 / d2)
	for i := range out1.Data {
		for j := range out1.Data[i] {
			got := out2.Data[i][j] / out1.Data[i][j]
			if math.Abs(got-want) > 1e-12 {
				t.Fatalf("ratio at [%d][%d] = %g, want %g", i, j, got, want)
			}
		}
	}
}

func TestDistanceScalingMagnitude(t *testing.T) {
	s := testSeries(t)
	sc := &Scaler{DistancePC: 6.0}
	out := sc.ScaleToDistance(s)
	want := math.Pow(AUCm/(6.0*ParsecCm), 2)
	if got := out.Data[0][0] / s.Data[0][0]; math.Abs(got/want-1) > 1e-12 {
		t.Errorf("dilution factor = %g, want %g", got, want)
	}
}

func TestApplyAttenuation(t *testing.T) {
	s := testSeries(t)
	sc := &Scaler{Attenuator: flatAttenuator{min: 100, max: 800, trans: 0.25}, ColumnDensity: 1e18}
	out, err := sc.ApplyAttenuation(s)
	if err != nil {
		t.Fatal(err)
	}
	for i := range out.Data {
		for j := range out.Data[i] {
			if got, want := out.Data[i][j], s.Data[i][j]*0.25; math.Abs(got-want) > 1e-12 {
				t.Fatalf("attenuated value at [%d][%d] = %g, want %g", i, j, got, want)
			}
		}
	}
}

func TestApplyAttenuationNoOverlap(t *testing.T) {
	s := testSeries(t) // grid 170-172
	sc := &Scaler{Attenuator: flatAttenuator{min: 900, max: 1200, trans: 0.5}, ColumnDensity: 1e18}
	_, err := sc.ApplyAttenuation(s)
	if err == nil {
		t.Fatal("expected error for disjoint transmittance domain")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
}

func TestPlaceholderHooksAreIdentity(t *testing.T) {
	s := testSeries(t)
	sc := &Scaler{CoronalTempK: 2e6, BGEventRatio: 3.0}
	if out := sc.ScaleToTemperature(s); out != s {
		t.Error("temperature hook must pass the series through unchanged")
	}
	if out := sc.ScaleToBackgroundRatio(s); out != s {
		t.Error("background-ratio hook must pass the series through unchanged")
	}
}

func TestScaleShapePreserved(t *testing.T) {
	s := testSeries(t)
	sc := &Scaler{
		Attenuator:    flatAttenuator{min: 100, max: 800, trans: 0.9},
		DistancePC:    6,
		ColumnDensity: 1e18,
		CoronalTempK:  1e6,
		BGEventRatio:  1,
	}
	out, err := sc.Scale(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Wave) != len(s.Wave) || len(out.JD) != len(s.JD) || len(out.Data) != len(s.Data) {
		t.Fatal("scaled series changed shape")
	}
}
