package dimming

import "math"

// DepthResult holds the per-row dimming measurement: the minimum intensity
// within the pre-event search window, the fractional depth below baseline in
// percent, the Poisson uncertainty on the minimum in counts, and the
// min/baseline² ratio retained for error propagation. Rows whose baseline is
// zero or negative cannot support a depth measurement and are flagged rather
// than left to divide-by-zero.
type DepthResult struct {
	Min        []float64
	Percent    []float64
	Sigma      []float64 // sqrt(min), counts
	Ratio      []float64 // min / baseline²
	Measurable []bool
}

// ComputeDepth restricts each row to its first window exposures (the span
// before the known event onset; dataset-specific, so configurable) and takes
// the row minimum there. Depth is the percent drop from baseline; the
// uncertainty on the minimum assumes Poisson counting statistics.
func ComputeDepth(rows [][]float64, base Baseline, window int) DepthResult {
	r := DepthResult{
		Min:        make([]float64, len(rows)),
		Percent:    make([]float64, len(rows)),
		Sigma:      make([]float64, len(rows)),
		Ratio:      make([]float64, len(rows)),
		Measurable: make([]bool, len(rows)),
	}
	for i, row := range rows {
		n := len(row)
		if window > 0 && window < n {
			n = window
		}
		if n == 0 {
			continue
		}
		min := row[0]
		for _, v := range row[1:n] {
			if v < min {
				min = v
			}
		}
		r.Min[i] = min

		b := base.Value[i]
		if !(b > 0) || min < 0 {
			continue
		}
		percent := (b - min) / b * 100
		ratio := min / (b * b)
		// A denormal-range baseline underflows b², sending the ratio to +Inf.
		// Such rows are unmeasurable, not infinitely deep.
		if math.IsInf(percent, 0) || math.IsNaN(percent) || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
			continue
		}
		r.Percent[i] = percent
		r.Sigma[i] = math.Sqrt(min)
		r.Ratio[i] = ratio
		r.Measurable[i] = true
	}
	return r
}

// PropagateDepthSigma converts the minimum and baseline uncertainties into a
// percent-unit depth uncertainty by first-order Gaussian propagation,
// treating the two estimates as independent:
//
//	σ_depth = 100 · sqrt(σ_min²·(1/b)² + σ_b²·(min/b²)²)
func PropagateDepthSigma(minSigma, baseline, baselineSigma, ratio float64) float64 {
	return 100 * math.Sqrt(minSigma*minSigma/(baseline*baseline)+baselineSigma*baselineSigma*ratio*ratio)
}
