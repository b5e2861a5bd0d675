package dimming

import (
	"math"
	"testing"
)

func TestEstimateBaselineConstantRow(t *testing.T) {
	rows := [][]float64{
		{100, 100, 100, 100, 100},
	}
	b := EstimateBaseline(rows)
	if b.Value[0] != 100 {
		t.Errorf("baseline = %g, want 100", b.Value[0])
	}
	if b.Sigma[0] != 0 {
		t.Errorf("sigma = %g, want 0 for a constant row", b.Sigma[0])
	}
}

func TestEstimateBaselineDominatedByQuiescence(t *testing.T) {
	// 19 quiescent samples and one dip: the median and both percentile
	// half-widths should sit at the quiescent level.
	row := make([]float64, 20)
	for i := range row {
		row[i] = 100
	}
	row[5] = 95
	b := EstimateBaseline([][]float64{row})
	if b.Value[0] != 100 {
		t.Errorf("baseline = %g, want 100", b.Value[0])
	}
	if b.Sigma[0] != 0 {
		t.Errorf("sigma = %g, want 0", b.Sigma[0])
	}
}

func TestEstimateBaselineScaleCovariant(t *testing.T) {
	row := []float64{90, 95, 100, 100, 101, 103, 97, 100, 99, 100, 105, 100}
	const c = 3.5
	scaled := make([]float64, len(row))
	for i, v := range row {
		scaled[i] = c * v
	}

	b1 := EstimateBaseline([][]float64{row})
	b2 := EstimateBaseline([][]float64{scaled})

	if math.Abs(b2.Value[0]-c*b1.Value[0]) > 1e-9 {
		t.Errorf("baseline not scale-covariant: %g, want %g", b2.Value[0], c*b1.Value[0])
	}
	if math.Abs(b2.Sigma[0]-c*b1.Sigma[0]) > 1e-9 {
		t.Errorf("sigma not scale-covariant: %g, want %g", b2.Sigma[0], c*b1.Sigma[0])
	}
}

func TestEstimateBaselineWithinRange(t *testing.T) {
	row := []float64{12, 9, 15, 11, 10, 13, 8, 14}
	b := EstimateBaseline([][]float64{row})
	if b.Value[0] < 8 || b.Value[0] > 15 {
		t.Errorf("baseline %g outside data range [8, 15]", b.Value[0])
	}
	if b.Sigma[0] < 0 {
		t.Errorf("negative sigma %g", b.Sigma[0])
	}
}

func TestEstimateBaselinePerRow(t *testing.T) {
	rows := [][]float64{
		{10, 10, 10},
		{20, 20, 20},
	}
	b := EstimateBaseline(rows)
	if b.Value[0] != 10 || b.Value[1] != 20 {
		t.Errorf("per-row baselines = %v, want [10 20]", b.Value)
	}
}
