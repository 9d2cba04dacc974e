// Package history persists a record of past analysis runs in a SQLite
// database alongside the report artifacts. It is strictly write-behind:
// the pipeline records a run after the summary and never reads history
// during a run, so a history failure can never affect check results.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	SourceRoot string
	Checks     []CheckRecord
}

// CheckRecord is the persisted status of one check within a run.
type CheckRecord struct {
	Name       string
	Status     string
	ReportFile string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	source_root TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_checks (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	name        TEXT NOT NULL,
	status      TEXT NOT NULL,
	report_file TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_run_checks_run_id ON run_checks(run_id);
`

// Store is a handle on the run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts one run and its per-check statuses atomically.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, source_root)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.SourceRoot)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, c := range run.Checks {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_checks (run_id, name, status, report_file)
			VALUES (?, ?, ?, ?)
		`, run.ID, c.Name, c.Status, c.ReportFile)
		if err != nil {
			return fmt.Errorf("inserting check record %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history transaction: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, with their
// check records, up to limit (0 means no limit).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, finished_at, source_root
		FROM runs
		ORDER BY started_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.SourceRoot); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		checks, err := s.listChecks(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Checks = checks
	}

	return runs, nil
}

func (s *Store) listChecks(ctx context.Context, runID string) ([]CheckRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, status, report_file
		FROM run_checks
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying check records: %w", err)
	}
	defer rows.Close()

	var checks []CheckRecord
	for rows.Next() {
		var c CheckRecord
		if err := rows.Scan(&c.Name, &c.Status, &c.ReportFile); err != nil {
			return nil, fmt.Errorf("scanning check record: %w", err)
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}
