package app

import (
	"context"
	"path/filepath"

	"tempmatch/internal/pipeline"
	"tempmatch/internal/storage"
)

// Match aligns one T1 file with one T3 file, writes the CSV and optional
// chart, and prints a preview of the result.
func (a *App) Match(ctx context.Context, opts MatchOptions) error {
	step := a.Config.ResolveStep(opts.Step)
	rounding := a.Config.ResolveRounding(opts.Rounding)

	output := opts.OutputPath
	if opts.DryRun {
		output = ""
		a.Logger.Warn().Msg("dry-run: no csv will be written")
	} else if output == "" {
		output = filepath.Join(filepath.Dir(opts.SecondsPath), a.Config.Output.DefaultName)
	}

	rec := a.recorderOrNoop(ctx)
	defer rec.Close()

	res, err := a.runOne(ctx, rec, pipeline.Options{
		SecondsPath:     opts.SecondsPath,
		TemperaturePath: opts.TemperaturePath,
		OutputPath:      output,
		Step:            step,
		Rounding:        rounding,
	})
	if err != nil {
		return err
	}

	if n := a.Config.ResolvePreviewRows(opts.PreviewRows); n > 0 {
		if err := printPreview(a.Out, res, n); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		err := writeChartPNG(a.Fs, opts.PNGPath, res, a.Config.Output.ChartWidth, a.Config.Output.ChartHeight)
		if err != nil {
			return err
		}
		a.Logger.Info().Str("png", opts.PNGPath).Msg("chart written")
	}
	return nil
}

// runOne executes the pipeline and records the run either way.
func (a *App) runOne(ctx context.Context, rec storage.Recorder, opts pipeline.Options) (*pipeline.Result, error) {
	run := storage.NewRun(opts.SecondsPath, opts.TemperaturePath, opts.Step, opts.Rounding)
	logger := a.Logger.With().Str("run_id", run.ID.String()).Str("seconds", opts.SecondsPath).Logger()

	res, err := pipeline.Process(a.Fs, opts)
	run.Finish(err)
	if res != nil {
		run.OutputPath = res.OutputPath
		run.Rows = len(res.Rows)
		run.Adjusted = res.Adjusted
	}
	a.record(ctx, rec, run)

	if err != nil {
		logger.Error().Err(err).Msg("match failed")
		return nil, err
	}

	logger.Info().
		Str("output", res.OutputPath).
		Int("rows", len(res.Rows)).
		Int("adjusted", res.Adjusted).
		Int("runs", res.Runs).
		Msg("match complete")
	return res, nil
}
