package audio

import (
	"math"
	"math/rand/v2"
)

// WriteOption configures WriteWAV.
type WriteOption func(*writeConfig)

type writeConfig struct {
	dither bool
	seed   uint64
}

// WithDither adds triangular (TPDF) dither of one LSB peak before rounding
// to the output bit depth. The noise sequence is fixed by seed so renders
// are reproducible.
func WithDither(seed uint64) WriteOption {
	return func(cfg *writeConfig) {
		cfg.dither = true
		cfg.seed = seed
	}
}

// quantizer maps [-1, 1] samples onto signed integers of a bit depth.
type quantizer struct {
	full    float64
	lo, hi  int
	offset  int
	rng     *rand.Rand
	dithers bool
}

// pcmOffset is the stored value of silence. 8-bit WAV PCM is unsigned and
// centred on 128; wider depths are signed.
func pcmOffset(bitDepth int) int {
	if bitDepth == 8 {
		return 128
	}

	return 0
}

func newQuantizer(bitDepth int, cfg writeConfig) *quantizer {
	full := math.Exp2(float64(bitDepth-1)) - 1

	q := &quantizer{
		full: full,
		lo:     -int(full) - 1,
		hi:     int(full),
		offset: pcmOffset(bitDepth),
	}

	if cfg.dither {
		q.dithers = true
		q.rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))
	}

	return q
}

// quantize clips x to [-1, 1], adds dither when enabled, rounds and shifts
// into the stored PCM range. NaN becomes silence.
func (q *quantizer) quantize(x float64) int {
	if math.IsNaN(x) {
		x = 0
	}

	scaled := max(-1, min(1, x)) * q.full

	if q.dithers {
		scaled += q.rng.Float64() - q.rng.Float64()
	}

	return max(q.lo, min(q.hi, int(math.Round(scaled)))) + q.offset
}
