package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jmason86/ESCAPE/internal/pipeline"
)

// Archive stores run summaries in an SQLite database so repeated parameter
// sweeps can be compared after the fact.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens or creates the archive database and ensures its schema.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started TEXT NOT NULL,
			finished TEXT NOT NULL,
			distance_pc REAL NOT NULL,
			column_density REAL NOT NULL,
			exposure_time_sec REAL NOT NULL,
			num_lines_to_combine INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS instrument_results (
			run_id TEXT NOT NULL REFERENCES runs(id),
			instrument TEXT NOT NULL,
			ok INTEGER NOT NULL,
			best_depth_percent REAL,
			slope_per_hour REAL,
			significance REAL,
			error TEXT
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// SaveRun inserts a run and its per-instrument summaries in one transaction.
func (a *Archive) SaveRun(run *pipeline.RunResult) error {
	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, started, finished, distance_pc, column_density, exposure_time_sec, num_lines_to_combine)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Started.Format(time.RFC3339),
		run.Finished.Format(time.RFC3339),
		run.DistancePC,
		run.ColumnDensity,
		run.ExposureTimeSec,
		run.NumLinesToCombine,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i := range run.Instruments {
		inst := &run.Instruments[i]
		ok := 0
		if inst.OK() {
			ok = 1
		}
		_, err = tx.Exec(
			`INSERT INTO instrument_results (run_id, instrument, ok, best_depth_percent, slope_per_hour, significance, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, inst.Instrument, ok, inst.BestDepthPercent, inst.SlopePerHour, inst.Significance, inst.Err,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", inst.Instrument, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (a *Archive) Close() error { return a.db.Close() }
