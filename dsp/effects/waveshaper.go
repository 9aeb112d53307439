package effects

import (
	"fmt"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/dsp/effects/internal/fastmath"
)

const defaultWaveshaperDrive = 1.0

// WaveshaperOption mutates construction-time parameters.
type WaveshaperOption func(*waveshaperConfig) error

type waveshaperConfig struct {
	drive float32
}

func defaultWaveshaperConfig() waveshaperConfig {
	return waveshaperConfig{drive: defaultWaveshaperDrive}
}

// WithWaveshaperDrive sets the pre-shaper drive, which must be >= 0.
func WithWaveshaperDrive(drive float32) WaveshaperOption {
	return func(cfg *waveshaperConfig) error {
		if drive < 0 || !core.IsFinite(drive) {
			return fmt.Errorf("waveshaper drive must be >= 0 and finite: %f", drive)
		}

		cfg.drive = drive

		return nil
	}
}

// Waveshaper is a stateless tanh saturator: y = tanh(x * drive).
// Drive 1 is close to transparent for small signals; larger values add
// harmonics. The output is bounded to [-1, 1] for every input.
type Waveshaper struct {
	drive float32
}

// NewWaveshaper creates a waveshaper with validated options.
func NewWaveshaper(opts ...WaveshaperOption) (*Waveshaper, error) {
	cfg := defaultWaveshaperConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Waveshaper{drive: cfg.drive}, nil
}

// SetDrive sets the drive. Negative and NaN values are treated as 0.
// It is safe to call once per sample.
func (w *Waveshaper) SetDrive(drive float32) {
	if drive < 0 || isNaN32(drive) {
		drive = 0
	}

	w.drive = drive
}

// Drive returns the current drive.
func (w *Waveshaper) Drive() float32 { return w.drive }

// ProcessSample shapes one sample.
func (w *Waveshaper) ProcessSample(x float32) float32 {
	return fastmath.Tanh(x * w.drive)
}

// ProcessInPlace shapes buf in place.
func (w *Waveshaper) ProcessInPlace(buf []float32) {
	for i := range buf {
		buf[i] = w.ProcessSample(buf[i])
	}
}

// ProcessBuffer shapes every sample of every channel in place.
func (w *Waveshaper) ProcessBuffer(b *buffer.Buffer) {
	for _, ch := range b.Data() {
		w.ProcessInPlace(ch)
	}
}
