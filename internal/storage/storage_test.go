package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tempmatch/internal/config"
)

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer rec.Close()

	ctx := context.Background()

	first := NewRun("a/t1.txt", "a/t3.txt", 0.015, 3)
	first.StartedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first.OutputPath = "a/result.csv"
	first.Rows = 10
	first.Adjusted = 2
	first.Finish(nil)

	second := NewRun("b/t1.txt", "b/t3.txt", 0.02, 2)
	second.StartedAt = first.StartedAt.Add(time.Minute)
	second.Finish(errors.New("parse error: no seconds found"))

	for _, run := range []Run{first, second} {
		if err := rec.RecordRun(ctx, run); err != nil {
			t.Fatalf("record run: %v", err)
		}
	}

	runs, err := rec.ListRecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatal("runs should be listed newest first")
	}
	if runs[0].Status != StatusFailed || runs[0].Error == nil || *runs[0].Error != "parse error: no seconds found" {
		t.Fatalf("failed run not restored: %+v", runs[0])
	}
	got := runs[1]
	if got.Status != StatusComplete || got.Error != nil {
		t.Fatalf("complete run not restored: %+v", got)
	}
	if got.OutputPath != "a/result.csv" || got.Rows != 10 || got.Adjusted != 2 || got.Step != 0.015 || got.Rounding != 3 {
		t.Fatalf("fields not restored: %+v", got)
	}
	if !got.StartedAt.Equal(first.StartedAt) {
		t.Fatalf("started_at mismatch: %v vs %v", got.StartedAt, first.StartedAt)
	}

	limited, err := rec.ListRecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit not applied, got %d", len(limited))
	}
}

func TestNoopRecorder(t *testing.T) {
	rec := NewNoopRecorder()
	if err := rec.RecordRun(context.Background(), NewRun("a", "b", 0, 0)); err != nil {
		t.Fatalf("noop should accept runs: %v", err)
	}
	runs, err := rec.ListRecentRuns(context.Background(), 5)
	if err != nil || len(runs) != 0 {
		t.Fatalf("noop should list nothing, got %v %v", runs, err)
	}
}

func TestPostgresStoreNotConfigured(t *testing.T) {
	var s *PostgresStore
	if err := s.RecordRun(context.Background(), Run{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewPool(context.Background(), config.HistoryConfig{}); err == nil {
		t.Fatal("empty dsn should be rejected")
	}
	if _, err := NewPostgresStore(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("nil pool should be rejected, got %v", err)
	}
}
