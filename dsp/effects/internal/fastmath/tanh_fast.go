//go:build fastmath

package fastmath

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// tanhSaturation is where float32 tanh already rounds to ±1.
const tanhSaturation = 9

// Tanh returns an approximation of tanh(x) via tanh(x) = (e^2x - 1)/(e^2x + 1),
// evaluated on |x| so the result stays odd-symmetric.
func Tanh(x float32) float32 {
	if x == 0 {
		return x
	}

	ax := math.Abs(float64(x))
	if ax > tanhSaturation {
		return float32(math.Copysign(1, float64(x)))
	}

	e := approx.FastExp(2 * ax)
	y := (e - 1) / (e + 1)

	return float32(math.Copysign(math.Min(y, 1), float64(x)))
}
