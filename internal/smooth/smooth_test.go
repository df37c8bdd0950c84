package smooth

import (
	"math"
	"slices"
	"testing"
)

func TestAdjust(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		step   float64
		places int
		want   []float64
	}{
		{
			name:   "single run",
			values: []float64{10, 10, 10, 12},
			step:   0.015,
			places: 3,
			want:   []float64{10, 10.015, 10.03, 12},
		},
		{
			name:   "independent runs of the same value",
			values: []float64{20, 20, 21, 20, 20, 20},
			step:   0.015,
			places: 3,
			want:   []float64{20, 20.015, 21, 20, 20.015, 20.03},
		},
		{
			name:   "no duplicates",
			values: []float64{1, 2, 3},
			step:   0.5,
			places: 2,
			want:   []float64{1, 2, 3},
		},
		{
			name:   "coarse rounding",
			values: []float64{5, 5, 5},
			step:   0.3,
			places: 0,
			want:   []float64{5, 5, 6},
		},
		{
			name:   "zero step",
			values: []float64{7.25, 7.25},
			step:   0,
			places: 1,
			want:   []float64{7.25, 7.2},
		},
		{
			name:   "float sum lands below a tie",
			values: []float64{2.67, 2.67},
			step:   0.005,
			places: 2,
			want:   []float64{2.67, 2.67},
		},
		{
			name:   "infinite run",
			values: []float64{math.Inf(1), math.Inf(1), 4},
			step:   0.015,
			places: 3,
			want:   []float64{math.Inf(1), math.Inf(1), 4},
		},
		{
			name:   "empty",
			values: nil,
			step:   0.015,
			places: 3,
			want:   []float64{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Adjust(tc.values, tc.step, tc.places)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAdjustLeavesInputUntouched(t *testing.T) {
	in := []float64{3, 3, 3}
	_ = Adjust(in, 1, 0)
	if !slices.Equal(in, []float64{3, 3, 3}) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestAdjustIsStable(t *testing.T) {
	once := Adjust([]float64{20, 20, 20, 20, 25, 25, 30}, 0.015, 3)
	twice := Adjust(once, 0.015, 3)
	if !slices.Equal(once, twice) {
		t.Fatalf("second pass changed values: %v -> %v", once, twice)
	}
	for i := 1; i < 4; i++ {
		if once[i] <= once[i-1] {
			t.Fatalf("run must be strictly increasing: %v", once)
		}
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		x      float64
		places int
		want   float64
	}{
		{1.23456, 3, 1.235},
		{0.5, 0, 0},
		{-0.5, 0, 0},
		{1.5, 0, 2},
		{2.5, 0, 2},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{7.25, 1, 7.2},
		{2.675, 2, 2.67},
		{1e20, 2, 1e20},
		{math.Inf(1), 3, math.Inf(1)},
		{math.Inf(-1), 3, math.Inf(-1)},
		{30, 3, 30},
		{0.0166666667, 6, 0.016667},
	}
	for _, tc := range cases {
		if got := Round(tc.x, tc.places); got != tc.want {
			t.Fatalf("Round(%v, %d) = %v, expected %v", tc.x, tc.places, got, tc.want)
		}
	}
}

func TestRuns(t *testing.T) {
	if got := Runs([]float64{1, 1, 1, 2, 3, 3, 1, 1}); got != 3 {
		t.Fatalf("expected 3 runs, got %d", got)
	}
	if got := Runs(nil); got != 0 {
		t.Fatalf("expected 0 runs, got %d", got)
	}
}
