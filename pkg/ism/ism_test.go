package ism

import (
	"math"
	"testing"
)

func TestTransmittanceBounds(t *testing.T) {
	a := New()
	wave, trans, err := a.Transmittance(18, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(wave) != len(trans) {
		t.Fatalf("axis mismatch: %d wavelengths, %d transmittances", len(wave), len(trans))
	}
	for i, tr := range trans {
		if tr <= 0 || tr > 1 {
			t.Fatalf("transmittance %g at %g Å outside (0, 1]", tr, wave[i])
		}
	}
}

func TestTransmittanceMonotonicInColumn(t *testing.T) {
	a := New()
	_, thin, err := a.Transmittance(17, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	_, thick, err := a.Transmittance(19, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range thin {
		if thick[i] > thin[i]+1e-15 {
			t.Fatalf("higher column must not increase transmittance at index %d: %g > %g", i, thick[i], thin[i])
		}
	}
}

func TestTransmittanceAboveLymanEdge(t *testing.T) {
	a := New()
	wave, trans, err := a.Transmittance(18, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i, w := range wave {
		if w > 911.75 && trans[i] != 1.0 {
			t.Fatalf("transmittance at %g Å = %g, want 1 above the hydrogen edge", w, trans[i])
		}
	}
}

func TestTransmittanceDeterministic(t *testing.T) {
	a := New()
	_, t1, _ := a.Transmittance(18, 0, 10)
	_, t2, _ := a.Transmittance(18, 0, 10)
	for i := range t1 {
		if t1[i] != t2[i] {
			t.Fatalf("non-deterministic transmittance at index %d", i)
		}
	}
}

func TestTransmittanceRejectsBadInput(t *testing.T) {
	a := New()
	if _, _, err := a.Transmittance(5, 0, 10); err == nil {
		t.Error("expected error for out-of-range column density")
	}
	if _, _, err := a.Transmittance(18, 0, -1); err == nil {
		t.Error("expected error for negative broadening")
	}
}

func TestCrossSectionEdgeBehavior(t *testing.T) {
	if got := crossSection(912.0, hIEdge, hISigma0, 3); got != 0 {
		t.Errorf("cross section above edge = %g, want 0", got)
	}
	got := crossSection(hIEdge, hIEdge, hISigma0, 3)
	if math.Abs(got-hISigma0) > 1e-25 {
		t.Errorf("cross section at edge = %g, want %g", got, hISigma0)
	}
}
