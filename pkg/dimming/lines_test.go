package dimming

import (
	"errors"
	"math"
	"testing"

	"github.com/jmason86/ESCAPE/pkg/instrument"
	"github.com/jmason86/ESCAPE/pkg/spectral"
)

func testExposures() *instrument.ExposureSeries {
	// 6 wavelength samples at 0.5 Å spacing, 4 exposures. Each wavelength row
	// is constant in time so the line integral is easy to compute by hand.
	wave := []float64{170.0, 170.5, 171.0, 171.5, 172.0, 172.5}
	counts := [][]float64{
		{1, 1, 1, 1},
		{2, 2, 2, 2},
		{3, 3, 3, 3},
		{4, 4, 4, 4},
		{5, 5, 5, 5},
		{6, 6, 6, 6},
	}
	return &instrument.ExposureSeries{
		Name:        "TEST",
		Wave:        wave,
		Counts:      counts,
		JD:          []float64{2458000.0, 2458000.1, 2458000.2, 2458000.3},
		ISO:         []string{"t0", "t1", "t2", "t3"},
		ExposureSec: 1800,
	}
}

func TestExtractLinesIntegratesWindow(t *testing.T) {
	ls, err := ExtractLines(testExposures(), []float64{171.0}, 1.0, false)
	if err != nil {
		t.Fatal(err)
	}
	// ±1 Å around 171.0 covers 170.0-172.0: rows 1+2+3+4+5 = 15, times 0.5 Å
	// spacing.
	want := 7.5
	for e, got := range ls.Counts[0] {
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("exposure %d intensity = %g, want %g", e, got, want)
		}
	}
	if len(ls.JD) != 4 {
		t.Errorf("kept %d timestamps, want 4", len(ls.JD))
	}
}

func TestExtractLinesDropsFinalExposure(t *testing.T) {
	ls, err := ExtractLines(testExposures(), []float64{171.0}, 1.0, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(ls.Counts[0]); got != 3 {
		t.Errorf("kept %d exposures, want 3", got)
	}
	if got := len(ls.JD); got != 3 {
		t.Errorf("kept %d timestamps, want 3", got)
	}
	if ls.ISO[len(ls.ISO)-1] != "t2" {
		t.Errorf("last kept timestamp = %q, want t2", ls.ISO[len(ls.ISO)-1])
	}
}

func TestExtractLinesNoOverlapIsFatal(t *testing.T) {
	_, err := ExtractLines(testExposures(), []float64{171.0, 304.0}, 1.0, false)
	if err == nil {
		t.Fatal("expected error for line center outside the instrument grid")
	}
	var cfgErr *spectral.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
	if cfgErr.Index != 1 {
		t.Errorf("offending line index = %d, want 1", cfgErr.Index)
	}
}

func TestExtractLinesRejectsBadInput(t *testing.T) {
	if _, err := ExtractLines(testExposures(), nil, 1.0, false); err == nil {
		t.Error("expected error for empty line list")
	}
	if _, err := ExtractLines(testExposures(), []float64{171.0}, 0, false); err == nil {
		t.Error("expected error for zero half-width")
	}
}

func TestDefaultLineCenters(t *testing.T) {
	if got := len(DefaultLineCenters); got != 11 {
		t.Fatalf("default candidate set has %d lines, want 11", got)
	}
	for i := 1; i < len(DefaultLineCenters); i++ {
		if DefaultLineCenters[i] <= DefaultLineCenters[i-1] {
			t.Fatalf("default line centers not ascending at index %d", i)
		}
	}
}
