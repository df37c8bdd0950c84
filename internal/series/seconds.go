package series

import (
	"slices"
	"strings"
)

const secsHeader = "secs"

// ParseSeconds extracts every numeric token from T1 lines in file order.
// A bare "Secs" line is skipped; a line starting with "Secs" contributes the
// tokens after its first one.
func ParseSeconds(lines []string) []float64 {
	secs := make([]float64, 0, len(lines))
	for line := range NonBlank(lines) {
		tokens := strings.Fields(line)
		if strings.HasPrefix(strings.ToLower(line), secsHeader) {
			tokens = tokens[1:]
		}
		for v := range Floats(slices.Values(tokens)) {
			secs = append(secs, v)
		}
	}
	return secs
}
