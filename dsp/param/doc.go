// Package param holds the user-facing parameters of the chaos chain and the
// per-sample smoothers that turn target changes into click-free ramps.
//
// Targets may be written from any goroutine. Smoothed values are produced
// only on the processing goroutine via Set.Next.
package param
