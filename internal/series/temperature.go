package series

import (
	"cmp"
	"slices"
	"strings"
)

// Sample is one T3 row.
type Sample struct {
	Time        float64
	Temperature float64
}

// ParseTimeTemperature reads T3 lines into index-aligned times and temps.
//
// Data starts after the first line containing both "time" and "temperature"
// (case-insensitive); lines before it and the header itself are ignored.
// Rows whose first two tokens are not both numeric are dropped. The result is
// stable-sorted by time when the file is out of order.
func ParseTimeTemperature(lines []string) (times, temps []float64) {
	samples := parseSamples(lines)
	if !slices.IsSortedFunc(samples, byTime) {
		slices.SortStableFunc(samples, byTime)
	}

	times = make([]float64, len(samples))
	temps = make([]float64, len(samples))
	for i, s := range samples {
		times[i] = s.Time
		temps[i] = s.Temperature
	}
	return times, temps
}

func parseSamples(lines []string) []Sample {
	var samples []Sample
	started := false
	for line := range NonBlank(lines) {
		if !started {
			started = isHeader(line)
			continue
		}
		if s, ok := parseSample(line); ok {
			samples = append(samples, s)
		}
	}
	return samples
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "time") && strings.Contains(lower, "temperature")
}

func parseSample(line string) (Sample, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Sample{}, false
	}
	t, ok := parseFloat(fields[0])
	if !ok {
		return Sample{}, false
	}
	temp, ok := parseFloat(fields[1])
	if !ok {
		return Sample{}, false
	}
	return Sample{Time: t, Temperature: temp}, true
}

func byTime(a, b Sample) int {
	return cmp.Compare(a.Time, b.Time)
}
