// Package effectchain wires the chaos stages into a per-sample chain:
// waveshaper, fractal, Lorenz, then gain. Each processed block updates a
// lock-free peak meter that other goroutines can read.
//
// Parameter values arrive through a ParamSource, one set per frame, so a
// smoothed param.Set and a constant param.Fixed can both drive the chain.
// The StatePolicy decides whether chaotic state persists across samples.
package effectchain
