package pipeline

import (
	"encoding/csv"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

const csvExt = ".csv"

// ResolveOutputPath appends the CSV extension when path lacks it.
func ResolveOutputPath(path string) string {
	if path == "" || strings.HasSuffix(strings.ToLower(path), csvExt) {
		return path
	}
	return path + csvExt
}

// SamePath reports whether a and b name the same file once made absolute.
func SamePath(a, b string) bool {
	return absPath(a) == absPath(b)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Record renders the row with each column's precision.
func (r Row) Record(rounding int) []string {
	return []string{
		formatFixed(r.Seconds, secondsPlaces),
		formatFixed(r.Minutes, minutesPlaces),
		formatFixed(r.MatchedTime, minutesPlaces),
		formatFixed(r.RawTemperature, rounding),
		formatFixed(r.FinalTemperature, rounding),
	}
}

// WriteCSV writes res to path (extension normalised), creating parent
// directories. The table is staged in a temporary file and renamed into
// place so a failed write never leaves a partial file behind.
func WriteCSV(fs afero.Fs, path string, res *Result) (string, error) {
	path = ResolveOutputPath(path)
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeRecords(tmp, res); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Chmod(tmpName, 0o644); err != nil {
		_ = fs.Remove(tmpName)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return "", fmt.Errorf("move output into place: %w", err)
	}
	return path, nil
}

func writeRecords(f afero.File, res *Result) error {
	writer := csv.NewWriter(f)
	if err := writer.Write(res.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range res.Rows {
		if err := writer.Write(row.Record(res.Rounding)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFixed(v float64, places int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return decimal.NewFromFloat(v).StringFixed(int32(places))
}
