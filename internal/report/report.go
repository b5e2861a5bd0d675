// Package report serializes detectability runs for plotting and archival:
// one JSON document per run, per-instrument combination CSVs for
// depth-versus-combination plots, and an SQLite archive of run summaries.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmason86/ESCAPE/internal/pipeline"
)

// WriteJSON writes the full run record as indented JSON.
func WriteJSON(path string, run *pipeline.RunResult) error {
	raw, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

// WriteCSV writes a run summary plus one combination table per instrument
// into dir.
func WriteCSV(dir string, run *pipeline.RunResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeSummary(filepath.Join(dir, "summary.csv"), run); err != nil {
		return err
	}
	for i := range run.Instruments {
		inst := &run.Instruments[i]
		if !inst.OK() {
			continue
		}
		name := fmt.Sprintf("combinations_%s.csv", sanitize(inst.Instrument))
		if err := writeCombinations(filepath.Join(dir, name), inst); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(path string, run *pipeline.RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"instrument", "ok", "best_depth_percent", "slope_per_hour", "significance", "error"}); err != nil {
		return err
	}
	for i := range run.Instruments {
		inst := &run.Instruments[i]
		rec := []string{
			inst.Instrument,
			strconv.FormatBool(inst.OK()),
			formatFloat(inst.BestDepthPercent),
			formatFloat(inst.SlopePerHour),
			formatFloat(inst.Significance),
			inst.Err,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeCombinations(path string, inst *pipeline.InstrumentResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"index", "centers", "depth_percent", "depth_sigma", "measurable"}); err != nil {
		return err
	}
	for i, c := range inst.Combinations {
		centers := make([]string, len(c.Centers))
		for j, wl := range c.Centers {
			centers[j] = formatFloat(wl)
		}
		rec := []string{
			strconv.Itoa(i),
			strings.Join(centers, " "),
			formatFloat(c.Depth),
			formatFloat(c.Sigma),
			strconv.FormatBool(c.Measurable),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
