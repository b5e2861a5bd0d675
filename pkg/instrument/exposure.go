package instrument

import (
	"fmt"
	"math"

	"github.com/jmason86/ESCAPE/pkg/spectral"
)

// ExposureSeries is a count-rate series rebinned into fixed-length exposures.
// Each column holds integrated counts for one exposure window; the timestamp
// of a window is that of its middle input sample, not a true bin center.
type ExposureSeries struct {
	Name        string
	Wave        []float64
	Counts      [][]float64 // [wavelength][exposure], integrated counts
	JD          []float64
	ISO         []string
	ExposureSec float64
}

// Integrate bins a count-rate series into exposures of exposureSec seconds.
// cadenceSec is the native sampling cadence of the source data; summed rates
// are multiplied by it to convert counts/s into counts. Windows are walked in
// fixed steps from the first sample: window e covers elapsed seconds
// [e·exposureSec, (e+1)·exposureSec). An empty window means the input cadence
// assumption is broken and aborts the run. The number of exposures is
// ceil(max elapsed / exposureSec).
func Integrate(cr *CountRateSeries, exposureSec, cadenceSec float64) (*ExposureSeries, error) {
	if exposureSec <= 0 {
		return nil, fmt.Errorf("instrument %s: non-positive exposure time %g s", cr.Name, exposureSec)
	}
	if cadenceSec <= 0 {
		return nil, fmt.Errorf("instrument %s: non-positive cadence %g s", cr.Name, cadenceSec)
	}
	if len(cr.JD) == 0 {
		return nil, fmt.Errorf("instrument %s: empty time axis", cr.Name)
	}

	// Julian-date subtraction leaves sub-millisecond jitter at realistic JD
	// magnitudes, which can flip window membership for samples sitting on an
	// exposure boundary. Snap elapsed times to the native cadence grid when
	// they are within 0.1% of a grid point.
	snapTol := cadenceSec * 1e-3
	elapsed := spectral.ElapsedSeconds(cr.JD)
	for i, t := range elapsed {
		if snapped := math.Round(t/cadenceSec) * cadenceSec; math.Abs(snapped-t) < snapTol {
			elapsed[i] = snapped
		}
	}
	maxElapsed := elapsed[len(elapsed)-1]
	nExp := int(math.Ceil(maxElapsed / exposureSec))
	if nExp == 0 {
		nExp = 1
	}

	counts := make([][]float64, len(cr.Rate))
	for i := range counts {
		counts[i] = make([]float64, nExp)
	}
	jd := make([]float64, nExp)
	iso := make([]string, nExp)

	lo := 0
	for e := 0; e < nExp; e++ {
		tEnd := float64(e+1) * exposureSec
		hi := lo
		for hi < len(elapsed) && elapsed[hi] < tEnd {
			hi++
		}
		if hi == lo {
			return nil, &spectral.ConfigurationError{
				Stage: "exposure",
				Index: e,
				Msg: fmt.Sprintf("instrument %s: window [%g, %g) s contains no samples",
					cr.Name, float64(e)*exposureSec, tEnd),
			}
		}
		for i, row := range cr.Rate {
			var sum float64
			for j := lo; j < hi; j++ {
				sum += row[j]
			}
			counts[i][e] = sum * cadenceSec
		}
		mid := lo + (hi-lo)/2
		jd[e] = cr.JD[mid]
		iso[e] = cr.ISO[mid]
		lo = hi
	}

	return &ExposureSeries{
		Name:        cr.Name,
		Wave:        cr.Wave,
		Counts:      counts,
		JD:          jd,
		ISO:         iso,
		ExposureSec: exposureSec,
	}, nil
}
