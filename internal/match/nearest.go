package match

import (
	"math"
	"sort"
)

// Nearest returns the index of the element of sorted closest to x.
// Equidistant neighbours resolve to the lower index. The boolean is false
// only when sorted is empty.
func Nearest(sorted []float64, x float64) (int, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}

	i := sort.SearchFloat64s(sorted, x)
	switch i {
	case 0:
		return 0, true
	case n:
		return n - 1, true
	}

	before, after := sorted[i-1], sorted[i]
	if math.Abs(after-x) < math.Abs(x-before) {
		return i, true
	}
	return i - 1, true
}
