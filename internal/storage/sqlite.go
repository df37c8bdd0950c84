package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	createRunsSQLite = `CREATE TABLE IF NOT EXISTS match_runs (
		id               TEXT PRIMARY KEY,
		started_at       INTEGER NOT NULL,
		finished_at      INTEGER NOT NULL,
		seconds_path     TEXT NOT NULL,
		temperature_path TEXT NOT NULL,
		output_path      TEXT,
		step             REAL,
		rounding         INTEGER,
		row_count        INTEGER,
		adjusted         INTEGER,
		status           TEXT NOT NULL,
		error            TEXT
	)`
	createRunsIndexSQLite = `CREATE INDEX IF NOT EXISTS idx_match_runs_started ON match_runs(started_at)`

	insertRunSQLite = `INSERT INTO match_runs (
		id, started_at, finished_at, seconds_path, temperature_path, output_path,
		step, rounding, row_count, adjusted, status, error
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	listRunsSQLite = `SELECT
		id, started_at, finished_at, seconds_path, temperature_path, output_path,
		step, rounding, row_count, adjusted, status, error
	FROM match_runs
	ORDER BY started_at DESC
	LIMIT ?`
)

// SQLiteRecorder persists runs to a local SQLite file.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and ensures the schema.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	for _, stmt := range []string{createRunsSQLite, createRunsIndexSQLite} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &SQLiteRecorder{db: db}, nil
}

// RecordRun inserts a run.
func (r *SQLiteRecorder) RecordRun(ctx context.Context, run Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errMsg sql.NullString
	if run.Error != nil {
		errMsg = sql.NullString{String: *run.Error, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertRunSQLite,
		run.ID.String(),
		run.StartedAt.UnixNano(),
		run.FinishedAt.UnixNano(),
		run.SecondsPath,
		run.TemperaturePath,
		run.OutputPath,
		run.Step,
		run.Rounding,
		run.Rows,
		run.Adjusted,
		run.Status,
		errMsg,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRecentRuns lists runs newest first.
func (r *SQLiteRecorder) ListRecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, listRunsSQLite, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var (
			id                string
			started, finished int64
			outputPath        sql.NullString
			errMsg            sql.NullString
			run               Run
		)
		if err := rows.Scan(
			&id,
			&started,
			&finished,
			&run.SecondsPath,
			&run.TemperaturePath,
			&outputPath,
			&run.Step,
			&run.Rounding,
			&run.Rows,
			&run.Adjusted,
			&run.Status,
			&errMsg,
		); err != nil {
			return nil, err
		}

		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse run id: %w", err)
		}
		run.StartedAt = time.Unix(0, started).UTC()
		run.FinishedAt = time.Unix(0, finished).UTC()
		run.OutputPath = outputPath.String
		if errMsg.Valid {
			msg := errMsg.String
			run.Error = &msg
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

var _ Recorder = (*SQLiteRecorder)(nil)
