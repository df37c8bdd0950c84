package match

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func TestNearest(t *testing.T) {
	seq := []float64{0.5, 1.0, 1.5, 3.0}
	cases := []struct {
		x    float64
		want int
	}{
		{-10, 0},
		{0.5, 0},
		{0.7, 0},
		{0.75, 0},
		{0.76, 1},
		{1.25, 1},
		{2.25, 2},
		{2.9, 3},
		{3.0, 3},
		{100, 3},
	}
	for _, tc := range cases {
		got, ok := Nearest(seq, tc.x)
		if !ok {
			t.Fatalf("Nearest(%v) reported no match", tc.x)
		}
		if got != tc.want {
			t.Fatalf("Nearest(%v) = %d, expected %d", tc.x, got, tc.want)
		}
	}
}

func TestNearestEmpty(t *testing.T) {
	for _, x := range []float64{-1, 0, 1e9} {
		if _, ok := Nearest(nil, x); ok {
			t.Fatalf("empty sequence must not match %v", x)
		}
	}
}

func TestNearestIsClosest(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		seq := make([]float64, 1+rng.Intn(20))
		for i := range seq {
			seq[i] = float64(rng.Intn(40)) / 4
		}
		sort.Float64s(seq)
		x := float64(rng.Intn(48)-4) / 4

		idx, ok := Nearest(seq, x)
		if !ok {
			t.Fatal("non-empty sequence must match")
		}
		best := math.Abs(seq[idx] - x)
		for j, v := range seq {
			d := math.Abs(v - x)
			if d < best {
				t.Fatalf("seq=%v x=%v: index %d is closer than %d", seq, x, j, idx)
			}
			if d == best && v < seq[idx] {
				t.Fatalf("seq=%v x=%v: tie should resolve to lower value %v", seq, x, v)
			}
		}
	}
}
