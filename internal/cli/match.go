package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"tempmatch/internal/app"
)

var (
	matchSeconds     string
	matchTemperature string
	matchOut         string
	matchStep        float64
	matchRounding    int
	matchPreview     int
	matchPNG         string
	matchDryRun      bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a T1 seconds file against a T3 time/temperature file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if matchSeconds == "" || matchTemperature == "" {
			return errors.New("--seconds and --temperature must be provided")
		}

		opts := app.MatchOptions{
			SecondsPath:     matchSeconds,
			TemperaturePath: matchTemperature,
			OutputPath:      matchOut,
			PreviewRows:     matchPreview,
			PNGPath:         matchPNG,
			DryRun:          matchDryRun,
		}
		opts.Step, opts.Rounding = smoothingOverrides(cmd, matchStep, matchRounding)

		return getApp().Match(cmd.Context(), opts)
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchSeconds, "seconds", "", "T1 file with seconds")
	matchCmd.Flags().StringVar(&matchTemperature, "temperature", "", "T3 file with Time(min) and Temperature columns")
	matchCmd.Flags().StringVar(&matchOut, "out", "", "CSV output path (defaults to result.csv next to the T1 file)")
	matchCmd.Flags().Float64Var(&matchStep, "step", 0.015, "increment between duplicate temperatures (defaults to config)")
	matchCmd.Flags().IntVar(&matchRounding, "rounding", 3, "decimals kept for temperatures (defaults to config)")
	matchCmd.Flags().IntVar(&matchPreview, "preview", -1, "Rows to preview on stdout, 0 disables (defaults to config)")
	matchCmd.Flags().StringVar(&matchPNG, "png", "", "Path to write a temperature chart")
	matchCmd.Flags().BoolVar(&matchDryRun, "dry-run", false, "Match and preview without writing the CSV")
}

// smoothingOverrides returns pointers only for flags set on the command line.
func smoothingOverrides(cmd *cobra.Command, step float64, rounding int) (*float64, *int) {
	var stepPtr *float64
	var roundingPtr *int
	if cmd.Flags().Changed("step") {
		stepPtr = &step
	}
	if cmd.Flags().Changed("rounding") {
		roundingPtr = &rounding
	}
	return stepPtr, roundingPtr
}
