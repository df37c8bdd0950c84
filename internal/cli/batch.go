package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"tempmatch/internal/app"
)

var (
	batchTemperature string
	batchOutDir      string
	batchStep        float64
	batchRounding    int
	batchWorkers     int
)

var batchCmd = &cobra.Command{
	Use:   "batch T1_FILE...",
	Short: "Match several T1 files against one T3 file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchTemperature == "" {
			return errors.New("--temperature must be provided")
		}

		opts := app.BatchOptions{
			SecondsPaths:    args,
			TemperaturePath: batchTemperature,
			OutDir:          batchOutDir,
			Workers:         batchWorkers,
		}
		opts.Step, opts.Rounding = smoothingOverrides(cmd, batchStep, batchRounding)

		return getApp().Batch(cmd.Context(), opts)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchTemperature, "temperature", "", "T3 file shared by all inputs")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory receiving one CSV per input")
	batchCmd.Flags().Float64Var(&batchStep, "step", 0.015, "Increment between duplicate temperatures (defaults to config)")
	batchCmd.Flags().IntVar(&batchRounding, "rounding", 3, "Decimals kept for temperatures (defaults to config)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Number of concurrent workers (defaults to config)")
}
