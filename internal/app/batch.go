package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"tempmatch/internal/pipeline"
)

// Batch matches every T1 file against the same T3 file. Each input writes
// <out-dir>/<input base>.csv; all inputs are attempted before failures are
// reported.
func (a *App) Batch(ctx context.Context, opts BatchOptions) error {
	if len(opts.SecondsPaths) == 0 {
		return errors.New("at least one T1 file is required")
	}
	if opts.OutDir == "" {
		return errors.New("--out-dir must be provided")
	}

	outputs, err := batchOutputs(opts.OutDir, opts.SecondsPaths, opts.TemperaturePath)
	if err != nil {
		return err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = a.Config.Batch.Workers
	}
	step := a.Config.ResolveStep(opts.Step)
	rounding := a.Config.ResolveRounding(opts.Rounding)

	rec := a.recorderOrNoop(ctx)
	defer rec.Close()

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range opts.SecondsPaths {
		output := outputs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := a.runOne(gctx, rec, pipeline.Options{
				SecondsPath:     input,
				TemperaturePath: opts.TemperaturePath,
				OutputPath:      output,
				Step:            step,
				Rounding:        rounding,
			})
			if err != nil {
				failed.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	total := len(opts.SecondsPaths)
	a.Logger.Info().Int("files", total).Int("failed", int(failed.Load())).Int("workers", workers).Msg("batch finished")
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files failed, check the log", n, total)
	}
	return nil
}

// batchOutputs maps each T1 input to its output path. It fails before any
// work starts when two inputs share an output or an output would replace
// one of the inputs.
func batchOutputs(outDir string, inputs []string, temperaturePath string) ([]string, error) {
	outputs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, input := range inputs {
		base := filepath.Base(input)
		name := strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
		out := filepath.Join(outDir, name)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s", prev, input, out)
		}
		seen[out] = input
		outputs[i] = out
	}

	sources := append([]string{temperaturePath}, inputs...)
	for _, out := range outputs {
		for _, src := range sources {
			if pipeline.SamePath(out, src) {
				return nil, fmt.Errorf("output %s would overwrite input %s", out, src)
			}
		}
	}
	return outputs, nil
}
