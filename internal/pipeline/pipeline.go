// Package pipeline matches a T1 seconds series against a T3
// time/temperature series and produces the result table.
package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/afero"

	"tempmatch/internal/match"
	"tempmatch/internal/series"
	"tempmatch/internal/smooth"
	"tempmatch/internal/textio"
)

const (
	// DefaultStep is the micro-ramp increment between duplicate temperatures.
	DefaultStep = 0.015
	// DefaultRounding is the number of decimals kept for temperatures.
	DefaultRounding = 3

	secondsPlaces = 3
	minutesPlaces = 6
)

// Header is the column layout of the result table.
var Header = []string{"T1_Secs", "T2_Min", "Matched_T3_Min", "Raw_Temperature", "Final_Temperature"}

// Options parameterise one matching run.
type Options struct {
	SecondsPath     string
	TemperaturePath string
	OutputPath      string
	Step            float64
	Rounding        int
}

// Validate rejects parameters the smoother cannot honour and outputs that
// would replace an input.
func (o Options) Validate() error {
	if o.SecondsPath == "" || o.TemperaturePath == "" {
		return errors.New("both input paths are required")
	}
	if o.Step < 0 || math.IsNaN(o.Step) || math.IsInf(o.Step, 0) {
		return fmt.Errorf("step must be a finite non-negative number: %v", o.Step)
	}
	if o.Rounding < 0 || o.Rounding > smooth.MaxPlaces {
		return fmt.Errorf("rounding must be between 0 and %d: %d", smooth.MaxPlaces, o.Rounding)
	}
	if out := ResolveOutputPath(o.OutputPath); out != "" {
		for _, in := range []string{o.SecondsPath, o.TemperaturePath} {
			if SamePath(out, in) {
				return fmt.Errorf("output %s would overwrite input %s", out, in)
			}
		}
	}
	return nil
}

// Row is one matched T1 entry. All values are already rounded.
type Row struct {
	Seconds          float64
	Minutes          float64
	MatchedTime      float64
	RawTemperature   float64
	FinalTemperature float64
}

// Result is the outcome of a matching run.
type Result struct {
	Header     []string
	Rows       []Row
	OutputPath string
	Rounding   int
	// Adjusted counts rows whose final temperature differs from the raw one.
	Adjusted int
	// Runs counts runs of equal consecutive matched temperatures.
	Runs int
}

// ProcessMatch runs the pipeline against the OS filesystem.
func ProcessMatch(secondsPath, temperaturePath, outputPath string, step float64, rounding int) (*Result, error) {
	return Process(afero.NewOsFs(), Options{
		SecondsPath:     secondsPath,
		TemperaturePath: temperaturePath,
		OutputPath:      outputPath,
		Step:            step,
		Rounding:        rounding,
	})
}

// Process loads both series from fs, matches every T1 entry to the nearest
// T3 time, smooths duplicate temperatures and, when opts.OutputPath is set,
// writes the table as CSV. Nothing is written if any step fails.
func Process(fs afero.Fs, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	t1Lines, err := textio.ReadLines(fs, opts.SecondsPath)
	if err != nil {
		return nil, err
	}
	secs := series.ParseSeconds(t1Lines)
	if len(secs) == 0 {
		return nil, &ParseError{Reason: reasonNoSeconds}
	}

	t3Lines, err := textio.ReadLines(fs, opts.TemperaturePath)
	if err != nil {
		return nil, err
	}
	times, temps := series.ParseTimeTemperature(t3Lines)
	if len(times) == 0 {
		return nil, &ParseError{Reason: reasonNoTemperature}
	}

	rows, raw, err := buildRows(secs, times, temps, opts.Step, opts.Rounding)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Header:   append([]string(nil), Header...),
		Rows:     rows,
		Rounding: opts.Rounding,
		Runs:     smooth.Runs(raw),
	}
	for _, r := range rows {
		if r.FinalTemperature != r.RawTemperature {
			res.Adjusted++
		}
	}

	if opts.OutputPath != "" {
		path, err := WriteCSV(fs, opts.OutputPath, res)
		if err != nil {
			return nil, err
		}
		res.OutputPath = path
	}
	return res, nil
}

// buildRows returns the rounded rows and the unrounded matched temperatures.
func buildRows(secs, times, temps []float64, step float64, rounding int) ([]Row, []float64, error) {
	minutes := make([]float64, len(secs))
	matchedTimes := make([]float64, len(secs))
	raw := make([]float64, len(secs))

	for i, s := range secs {
		minutes[i] = s / 60.0
		idx, ok := match.Nearest(times, minutes[i])
		if !ok {
			return nil, nil, &ParseError{Reason: reasonEmptyAxis}
		}
		matchedTimes[i] = times[idx]
		raw[i] = temps[idx]
	}

	final := smooth.Adjust(raw, step, rounding)

	rows := make([]Row, len(secs))
	for i := range secs {
		rows[i] = Row{
			Seconds:          smooth.Round(secs[i], secondsPlaces),
			Minutes:          smooth.Round(minutes[i], minutesPlaces),
			MatchedTime:      smooth.Round(matchedTimes[i], minutesPlaces),
			RawTemperature:   smooth.Round(raw[i], rounding),
			FinalTemperature: smooth.Round(final[i], rounding),
		}
	}
	return rows, raw, nil
}
