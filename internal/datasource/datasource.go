// Package datasource loads the reference solar irradiance time series and
// per-instrument effective-area curves from CSV files.
package datasource

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jmason86/ESCAPE/pkg/instrument"
	"github.com/jmason86/ESCAPE/pkg/spectral"
)

// LoadSeries reads a spectral irradiance time series, keeping only wavelength
// columns inside [bandMin, bandMax]. The expected layout is one row per time
// sample with a header of "jd,iso,<wavelength>,<wavelength>,..." where each
// wavelength label is the column's sample center in Angstroms. The iso column
// is optional; without it the timestamps are rendered from the Julian dates.
func LoadSeries(path string, bandMin, bandMax float64) (*spectral.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: need a header and at least one time sample, got %d rows", path, len(rows))
	}
	header := rows[0]
	if len(header) < 2 || header[0] != "jd" {
		return nil, fmt.Errorf("%s: header must start with jd, an optional iso column, then wavelength columns", path)
	}
	hasISO := header[1] == "iso"
	wcol := 1
	if hasISO {
		wcol = 2
	}
	if len(header) <= wcol {
		return nil, fmt.Errorf("%s: header has no wavelength columns", path)
	}

	var wave []float64
	var cols []int
	for i := wcol; i < len(header); i++ {
		w, err := strconv.ParseFloat(header[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: wavelength column %q: %w", path, header[i], err)
		}
		if w < bandMin || w > bandMax {
			continue
		}
		wave = append(wave, w)
		cols = append(cols, i)
	}
	if len(wave) == 0 {
		return nil, fmt.Errorf("%s: no wavelength columns inside bandpass [%g, %g]", path, bandMin, bandMax)
	}

	nTime := len(rows) - 1
	jd := make([]float64, nTime)
	iso := make([]string, nTime)
	data := make([][]float64, len(wave))
	for i := range data {
		data[i] = make([]float64, nTime)
	}

	for t, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, t+2, len(row), len(header))
		}
		if jd[t], err = strconv.ParseFloat(row[0], 64); err != nil {
			return nil, fmt.Errorf("%s: row %d jd: %w", path, t+2, err)
		}
		if hasISO {
			iso[t] = row[1]
		}
		for i, c := range cols {
			if data[i][t], err = strconv.ParseFloat(row[c], 64); err != nil {
				return nil, fmt.Errorf("%s: row %d column %s: %w", path, t+2, header[c], err)
			}
		}
	}
	if !hasISO {
		iso = spectral.ISOFromJD(jd)
	}

	return spectral.NewSeries(wave, data, jd, iso)
}

// LoadResponse reads an instrument effective-area curve from a two-column
// wavelength,effective_area CSV. A non-numeric first row is treated as a
// header and skipped.
func LoadResponse(path, name string) (instrument.Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return instrument.Response{}, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return instrument.Response{}, fmt.Errorf("reading %s: %w", path, err)
	}

	r := instrument.Response{Name: name}
	for i, row := range rows {
		if len(row) < 2 {
			return instrument.Response{}, fmt.Errorf("%s: row %d has %d fields, want 2", path, i+1, len(row))
		}
		w, werr := strconv.ParseFloat(row[0], 64)
		a, aerr := strconv.ParseFloat(row[1], 64)
		if werr != nil || aerr != nil {
			if i == 0 {
				continue // header
			}
			return instrument.Response{}, fmt.Errorf("%s: row %d is not numeric", path, i+1)
		}
		r.Wave = append(r.Wave, w)
		r.EffArea = append(r.EffArea, a)
	}

	if err := r.Validate(); err != nil {
		return instrument.Response{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
