// Package fastmath provides the transcendental functions used by the
// per-sample stages in dsp/effects.
//
// The default build uses the standard library evaluated in float64 and
// rounded to float32. Building with the fastmath tag swaps Tanh for an
// exponential-based approximation from algo-approx.
//
// # Accuracy Characteristics
//
// Tanh (fastmath tag): absolute error below 1e-2 for all inputs, output
// within [-1, 1] and odd-symmetric.
//
// Sin and Cos always use the standard library; they are evaluated once per
// sample on small arguments and are not the bottleneck.
package fastmath
