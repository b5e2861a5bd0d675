package spectral

import (
	"errors"
	"testing"
	"time"
)

func validInputs() ([]float64, [][]float64, []float64, []string) {
	wave := []float64{170.0, 171.0, 172.0}
	data := [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	}
	jd := []float64{2458000.0, 2458000.1, 2458000.2, 2458000.3}
	iso := []string{"a", "b", "c", "d"}
	return wave, data, jd, iso
}

func TestNewSeries(t *testing.T) {
	wave, data, jd, iso := validInputs()
	s, err := NewSeries(wave, data, jd, iso)
	if err != nil {
		t.Fatalf("valid inputs rejected: %v", err)
	}
	if len(s.Wave) != 3 || len(s.JD) != 4 {
		t.Fatalf("unexpected axes: %d wavelengths, %d times", len(s.Wave), len(s.JD))
	}
}

func TestNewSeriesShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mangle func(wave []float64, data [][]float64, jd []float64, iso []string) ([]float64, [][]float64, []float64, []string)
	}{
		{
			name: "missing data row",
			mangle: func(wave []float64, data [][]float64, jd []float64, iso []string) ([]float64, [][]float64, []float64, []string) {
				return wave, data[:2], jd, iso
			},
		},
		{
			name: "ragged data column",
			mangle: func(wave []float64, data [][]float64, jd []float64, iso []string) ([]float64, [][]float64, []float64, []string) {
				data[1] = data[1][:3]
				return wave, data, jd, iso
			},
		},
		{
			name: "iso length mismatch",
			mangle: func(wave []float64, data [][]float64, jd []float64, iso []string) ([]float64, [][]float64, []float64, []string) {
				return wave, data, jd, iso[:3]
			},
		},
		{
			name: "non-ascending wave",
			mangle: func(wave []float64, data [][]float64, jd []float64, iso []string) ([]float64, [][]float64, []float64, []string) {
				wave[2] = wave[1]
				return wave, data, jd, iso
			},
		},
		{
			name: "non-increasing jd",
			mangle: func(wave []float64, data [][]float64, jd []float64, iso []string) ([]float64, [][]float64, []float64, []string) {
				jd[3] = jd[2]
				return wave, data, jd, iso
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wave, data, jd, iso := validInputs()
			_, err := NewSeries(tt.mangle(wave, data, jd, iso))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var shapeErr *DataShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("expected DataShapeError, got %T: %v", err, err)
			}
		})
	}
}

func TestElapsedSeconds(t *testing.T) {
	_, _, jd, _ := validInputs()
	sec := ElapsedSeconds(jd)
	if sec[0] != 0 {
		t.Errorf("first sample elapsed = %g, want 0", sec[0])
	}
	// 0.1 day steps
	want := 8640.0
	if diff := sec[1] - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("second sample elapsed = %g, want %g", sec[1], want)
	}
}

func TestWaveStep(t *testing.T) {
	if got := WaveStep([]float64{170.0, 170.5, 171.0}); got != 0.5 {
		t.Errorf("spacing = %g, want 0.5", got)
	}
	if got := WaveStep([]float64{170.0}); got != 0 {
		t.Errorf("single-sample grid spacing = %g, want 0", got)
	}
}

func TestISOFromJD(t *testing.T) {
	// J2000.0 epoch: JD 2451545.0 = 2000-01-01 12:00 UTC (ignoring leap seconds)
	iso := ISOFromJD([]float64{2451545.0})
	got, err := time.Parse(time.RFC3339, iso[0])
	if err != nil {
		t.Fatalf("ISOFromJD produced unparseable timestamp %q: %v", iso[0], err)
	}
	want := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if d := got.Sub(want); d > time.Second || d < -time.Second {
		t.Errorf("J2000 rendered as %q, want within 1s of %v", iso[0], want)
	}
}
