package effects

import "github.com/cwbudde/algo-chaosfx/dsp/buffer"

// Gain is the final linear gain stage. It holds no state; the gain value is
// supplied per call so a smoothed parameter can change it every sample.
type Gain struct{}

// NewGain returns a gain stage.
func NewGain() *Gain { return &Gain{} }

// ProcessSample returns x * gain.
func (Gain) ProcessSample(x, gain float32) float32 {
	return x * gain
}

// ProcessInPlace scales buf by gain.
func (g Gain) ProcessInPlace(buf []float32, gain float32) {
	for i := range buf {
		buf[i] = g.ProcessSample(buf[i], gain)
	}
}

// ProcessBuffer scales every channel of b by gain.
func (g Gain) ProcessBuffer(b *buffer.Buffer, gain float32) {
	for _, ch := range b.Data() {
		g.ProcessInPlace(ch, gain)
	}
}
