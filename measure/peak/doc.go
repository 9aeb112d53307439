// Package peak provides a lock-free decaying peak meter.
//
// The processing goroutine calls Update once per block with the block's
// largest absolute sample. Any other goroutine may call Value at any time.
// Louder blocks are captured immediately; quieter ones let the reading fall
// geometrically, by 12 dB over the configured decay time.
package peak
