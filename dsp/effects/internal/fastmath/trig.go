package fastmath

import "math"

// Sin returns the sine of x.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos returns the cosine of x.
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Pow returns x**y.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}
