package storage

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates the backing database was not initialised.
var ErrNotConfigured = errors.New("storage: database not configured")

// Recorder persists match run history.
type Recorder interface {
	RecordRun(ctx context.Context, run Run) error
	ListRecentRuns(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// NoopRecorder discards runs; used when history is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ context.Context, _ Run) error { return nil }
func (n *NoopRecorder) ListRecentRuns(_ context.Context, _ int) ([]Run, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }

var _ Recorder = (*NoopRecorder)(nil)
