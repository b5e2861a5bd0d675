package dimming

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Baseline is a per-row preflare intensity estimate with an uncertainty
// derived from the row's own one-sigma-equivalent percentile spread.
type Baseline struct {
	Value []float64
	Sigma []float64
}

// EstimateBaseline computes, for each intensity row, the median over the
// entire time axis and an uncertainty equal to the mean of the 16th→50th and
// 50th→84th percentile half-widths. This leans on the pre-event quiescent
// level dominating the series by sample count rather than on locating the
// event onset.
func EstimateBaseline(rows [][]float64) Baseline {
	b := Baseline{
		Value: make([]float64, len(rows)),
		Sigma: make([]float64, len(rows)),
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		sorted := make([]float64, len(row))
		copy(sorted, row)
		sort.Float64s(sorted)

		p16 := stat.Quantile(0.16, stat.LinInterp, sorted, nil)
		p50 := stat.Quantile(0.50, stat.LinInterp, sorted, nil)
		p84 := stat.Quantile(0.84, stat.LinInterp, sorted, nil)

		b.Value[i] = p50
		b.Sigma[i] = ((p50 - p16) + (p84 - p50)) / 2
	}
	return b
}
