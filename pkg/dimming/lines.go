// Package dimming extracts emission-line light curves from exposure-binned
// spectra and measures coronal-dimming depth against a preflare baseline,
// for single lines and for exhaustive combinations of lines.
package dimming

import (
	"fmt"
	"math"

	"github.com/jmason86/ESCAPE/pkg/instrument"
	"github.com/jmason86/ESCAPE/pkg/spectral"
)

// DefaultLineCenters is the curated set of dimming-sensitive emission-line
// centers in Angstroms: the cool-corona iron sequence plus the hot flare
// lines used to separate dimming from flare contamination.
var DefaultLineCenters = []float64{
	93.9, 131.2, 171.1, 177.2, 180.4, 195.1,
	202.0, 211.3, 284.2, 335.4, 368.1,
}

// DefaultLineHalfWidth is the half-width in Angstroms of the integration
// window around each line center.
const DefaultLineHalfWidth = 1.0

// LineSeries holds one intensity row per candidate emission line, indexed
// [line][exposure], on the exposure time axis of its source series.
type LineSeries struct {
	Centers []float64
	Counts  [][]float64
	JD      []float64
	ISO     []string
}

// ExtractLines integrates exposure counts over ±halfWidth (inclusive) around
// each line center, multiplied by the wavelength sample spacing. A line
// center with no overlapping wavelength samples means the candidate list does
// not match the instrument grid and is a configuration error. When dropLast
// is set the final exposure column and timestamp are discarded; the source
// dataset's last sample is known invalid.
func ExtractLines(es *instrument.ExposureSeries, centers []float64, halfWidth float64, dropLast bool) (*LineSeries, error) {
	if len(centers) == 0 {
		return nil, fmt.Errorf("dimming: empty line-center list")
	}
	if halfWidth <= 0 {
		return nil, fmt.Errorf("dimming: non-positive line half-width %g", halfWidth)
	}
	if len(es.Wave) < 2 {
		return nil, fmt.Errorf("dimming: instrument %s wavelength grid has %d samples", es.Name, len(es.Wave))
	}
	dw := spectral.WaveStep(es.Wave)

	nExp := len(es.JD)
	counts := make([][]float64, len(centers))
	for li, c := range centers {
		lo, hi := -1, -1
		for wi, w := range es.Wave {
			if math.Abs(w-c) <= halfWidth {
				if lo < 0 {
					lo = wi
				}
				hi = wi
			}
		}
		if lo < 0 {
			return nil, &spectral.ConfigurationError{
				Stage: "line extraction",
				Index: li,
				Msg: fmt.Sprintf("instrument %s: line center %g Å has no wavelength samples within ±%g Å",
					es.Name, c, halfWidth),
			}
		}
		row := make([]float64, nExp)
		for e := 0; e < nExp; e++ {
			var sum float64
			for wi := lo; wi <= hi; wi++ {
				sum += es.Counts[wi][e]
			}
			row[e] = sum * dw
		}
		counts[li] = row
	}

	jd := es.JD
	iso := es.ISO
	if dropLast && nExp > 1 {
		for li := range counts {
			counts[li] = counts[li][:nExp-1]
		}
		jd = jd[:nExp-1]
		iso = iso[:nExp-1]
	}

	return &LineSeries{Centers: centers, Counts: counts, JD: jd, ISO: iso}, nil
}
