// Package smooth breaks ties between equal consecutive temperatures.
package smooth

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// MaxPlaces bounds the number of decimal places Round accepts.
const MaxPlaces = 32

// Adjust returns a copy of values where every maximal run of exactly equal
// consecutive values becomes a ramp: the first member is kept, member k of
// the run becomes Round(base + k*step, places). Runs of one are untouched.
func Adjust(values []float64, step float64, places int) []float64 {
	adjusted := make([]float64, len(values))
	copy(adjusted, values)

	for i, n := 0, len(adjusted); i < n; {
		j := i + 1
		for j < n && adjusted[j] == adjusted[i] {
			j++
		}
		base := adjusted[i]
		for k := i + 1; k < j; k++ {
			adjusted[k] = Round(base+float64(k-i)*step, places)
		}
		i = j
	}
	return adjusted
}

// Round rounds x to places decimal digits, half to even, on the exact binary
// value of x. Non-finite values are returned unchanged.
func Round(x float64, places int) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	return exact(x).RoundBank(int32(places)).InexactFloat64()
}

// exact returns the decimal equal to the binary value of a finite x.
func exact(x float64) decimal.Decimal {
	frac, exp := math.Frexp(x)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// mant * 2^exp == mant * 5^-exp * 10^exp
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, five), int32(exp))
}

// Runs counts the runs of two or more equal consecutive values.
func Runs(values []float64) int {
	runs := 0
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] && (i == 1 || values[i-1] != values[i-2]) {
			runs++
		}
	}
	return runs
}
