package app

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"tempmatch/internal/config"
	"tempmatch/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Fs     afero.Fs
	Out    io.Writer
}

// NewApp constructs a new application handle on the OS filesystem.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logger.With().Str("component", "app").Logger(),
		Fs:     afero.NewOsFs(),
		Out:    os.Stdout,
	}
}

func (a *App) openRecorder(ctx context.Context) (storage.Recorder, error) {
	cfg := a.Config.History
	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite:
		return storage.NewSQLiteRecorder(cfg.SQLitePath)
	case config.DriverPostgres:
		pool, err := storage.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	default:
		return storage.NewNoopRecorder(), nil
	}
}

// recorderOrNoop falls back to a no-op recorder when history cannot be opened.
func (a *App) recorderOrNoop(ctx context.Context) storage.Recorder {
	rec, err := a.openRecorder(ctx)
	if err != nil {
		a.Logger.Warn().Err(err).Str("driver", a.Config.History.Driver).Msg("history unavailable; runs will not be recorded")
		return storage.NewNoopRecorder()
	}
	return rec
}

func (a *App) record(ctx context.Context, rec storage.Recorder, run storage.Run) {
	if err := rec.RecordRun(ctx, run); err != nil {
		a.Logger.Error().Err(err).Str("run_id", run.ID.String()).Msg("failed to record run")
	}
}

// MatchOptions hold parameters for a single matching run.
type MatchOptions struct {
	SecondsPath     string
	TemperaturePath string
	OutputPath      string
	Step            *float64
	Rounding        *int
	PreviewRows     int
	PNGPath         string
	DryRun          bool
}

// BatchOptions configure matching many T1 files against one T3 file.
type BatchOptions struct {
	SecondsPaths    []string
	TemperaturePath string
	OutDir          string
	Step            *float64
	Rounding        *int
	Workers         int
}

// HistoryOptions configure the history command.
type HistoryOptions struct {
	Limit int
}
