// Package buffer provides a planar multi-channel float32 audio buffer and a
// pool for allocation-friendly processing. Processors walk a Buffer frame by
// frame (one sample per channel at the same index) and rewrite it in place.
package buffer
