package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate float64, amplitude float32, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * float32(math.Sin(step*float64(i)))
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float32, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float32()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float32 {
	return DC(1.0, n)
}

// Ramp returns n values spaced evenly from lo to hi inclusive.
func Ramp(lo, hi float32, n int) []float32 {
	out := make([]float32, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	step := (hi - lo) / float32(n-1)
	for i := range out {
		out[i] = lo + step*float32(i)
	}

	return out
}
