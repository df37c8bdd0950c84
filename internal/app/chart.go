package app

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/spf13/afero"
	chart "github.com/wcharczuk/go-chart/v2"

	"tempmatch/internal/pipeline"
)

// writeChartPNG plots raw and smoothed temperatures against T2 minutes.
func writeChartPNG(fs afero.Fs, path string, res *pipeline.Result, width, height int) error {
	if len(res.Rows) < 2 {
		return errors.New("chart needs at least two rows")
	}
	for _, row := range res.Rows {
		for _, v := range []float64{row.Minutes, row.RawTemperature, row.FinalTemperature} {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return fmt.Errorf("chart cannot plot non-finite value %v", v)
			}
		}
	}
	if err := ensureDir(fs, path); err != nil {
		return err
	}

	minutes := make([]float64, len(res.Rows))
	raw := make([]float64, len(res.Rows))
	final := make([]float64, len(res.Rows))
	for i, row := range res.Rows {
		minutes[i] = row.Minutes
		raw[i] = row.RawTemperature
		final[i] = row.FinalTemperature
	}

	tempFormat := fmt.Sprintf("%%.%df", res.Rounding)
	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name: "T2 (min)",
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.2f")
			},
		},
		YAxis: chart.YAxis{
			Name: "Temperature",
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, tempFormat)
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Raw",
				XValues: minutes,
				YValues: raw,
			},
			chart.ContinuousSeries{
				Name:    "Final",
				XValues: minutes,
				YValues: final,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func ensureDir(fs afero.Fs, path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return fs.MkdirAll(dir, 0o755)
}
