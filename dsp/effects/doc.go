// Package effects provides the per-sample stages of the chaos effect chain.
//
// Stages:
//   - Waveshaper: stateless tanh saturation with adjustable drive.
//   - Fractal: audio-modulated quadratic-map recurrence mixed with a wave
//     folder, a slow LFO and a fast-attack/slow-release smoother.
//   - Lorenz: Lorenz-attractor oscillator driving amplitude modulation,
//     phase modulation and direct injection of the chaos signal.
//   - Gain: linear output gain.
//
// All stages operate on float32 samples, keep every output finite for finite
// input and never allocate in ProcessSample, ProcessInPlace or ProcessBuffer.
// The chaotic stages pass input through bit-exactly when their amount is at
// or below BypassThreshold.
//
// Build with the fastmath tag to replace the tanh used by every stage with a
// faster exponential approximation.
package effects
