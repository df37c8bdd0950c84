package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tempmatch/internal/config"
)

const (
	createRunsPostgres = `CREATE TABLE IF NOT EXISTS match_runs (
        id               UUID PRIMARY KEY,
        started_at       TIMESTAMPTZ NOT NULL,
        finished_at      TIMESTAMPTZ NOT NULL,
        seconds_path     TEXT NOT NULL,
        temperature_path TEXT NOT NULL,
        output_path      TEXT,
        step             DOUBLE PRECISION,
        rounding         INTEGER,
        row_count        INTEGER,
        adjusted         INTEGER,
        status           TEXT NOT NULL,
        error            TEXT
    );`

	insertRunPostgres = `INSERT INTO match_runs (
        id,
        started_at,
        finished_at,
        seconds_path,
        temperature_path,
        output_path,
        step,
        rounding,
        row_count,
        adjusted,
        status,
        error
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
    )
    ON CONFLICT (id) DO UPDATE
    SET
        finished_at = EXCLUDED.finished_at,
        output_path = EXCLUDED.output_path,
        row_count   = EXCLUDED.row_count,
        adjusted    = EXCLUDED.adjusted,
        status      = EXCLUDED.status,
        error       = EXCLUDED.error;`

	listRecentRunsPostgres = `SELECT
        id,
        started_at,
        finished_at,
        seconds_path,
        temperature_path,
        output_path,
        step,
        rounding,
        row_count,
        adjusted,
        status,
        error
    FROM match_runs
    ORDER BY started_at DESC
    LIMIT $1;`
)

// NewPool configures a PostgreSQL connection pool from runtime settings.
func NewPool(ctx context.Context, cfg config.HistoryConfig) (*pgxpool.Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("history.dsn is required")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	return pool, nil
}

// PostgresStore records runs in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wires a pgx pool into a store and ensures the schema.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	s := &PostgresStore{pool: pool}
	p, err := s.getPool()
	if err != nil {
		return nil, err
	}
	if _, err := p.Exec(ctx, createRunsPostgres); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close releases the underlying pool resources.
func (s *PostgresStore) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

func (s *PostgresStore) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// RecordRun persists or updates a run.
func (s *PostgresStore) RecordRun(ctx context.Context, run Run) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	var errMsg interface{}
	if run.Error != nil {
		errMsg = *run.Error
	}

	_, execErr := pool.Exec(ctx, insertRunPostgres,
		run.ID,
		run.StartedAt,
		run.FinishedAt,
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
	if execErr != nil {
		return fmt.Errorf("record run: %w", execErr)
	}
	return nil
}

// ListRecentRuns lists the most recent runs ordered by descending start time.
func (s *PostgresStore) ListRecentRuns(ctx context.Context, limit int) ([]Run, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentRunsPostgres, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent runs: %w", queryErr)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, run)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return runs, nil
}

func scanRun(rows pgx.Rows) (Run, error) {
	var (
		run        Run
		outputPath sql.NullString
		errMsg     sql.NullString
	)

	if err := rows.Scan(
		&run.ID,
		&run.StartedAt,
		&run.FinishedAt,
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
		return Run{}, err
	}

	run.OutputPath = outputPath.String
	if errMsg.Valid {
		msg := errMsg.String
		run.Error = &msg
	}
	return run, nil
}

var _ Recorder = (*PostgresStore)(nil)
