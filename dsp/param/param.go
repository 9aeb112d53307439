package param

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
)

// Range maps plain values to the normalized [0, 1] domain. Skew 1 is
// linear; values below 1 spend more of the normalized range on low values.
type Range struct {
	Min  float32
	Max  float32
	Skew float64
}

// GainSkew returns the skew that puts the dB midpoint of [minDB, maxDB] at
// normalized 0.5 on a linear-gain range.
func GainSkew(minDB, maxDB float64) float64 {
	minGain := core.DBToLinear(minDB)
	maxGain := core.DBToLinear(maxDB)
	midGain := core.DBToLinear((minDB + maxDB) / 2)

	return math.Log(0.5) / math.Log((midGain-minGain)/(maxGain-minGain))
}

// Clamp limits plain to the range. NaN maps to Min.
func (r Range) Clamp(plain float32) float32 {
	if math.IsNaN(float64(plain)) {
		return r.Min
	}

	return core.Clamp(plain, r.Min, r.Max)
}

// Normalize maps plain to [0, 1].
func (r Range) Normalize(plain float32) float64 {
	span := float64(r.Max - r.Min)
	if span <= 0 {
		return 0
	}

	n := float64(r.Clamp(plain)-r.Min) / span

	return math.Pow(n, r.skew())
}

// Unnormalize maps n in [0, 1] back to a plain value.
func (r Range) Unnormalize(n float64) float32 {
	n = core.Clamp(n, 0, 1)
	if math.IsNaN(n) {
		n = 0
	}

	return r.Clamp(r.Min + float32(math.Pow(n, 1/r.skew())*float64(r.Max-r.Min)))
}

func (r Range) skew() float64 {
	if r.Skew <= 0 || !core.IsFinite(r.Skew) {
		return 1
	}

	return r.Skew
}

// Param is one automatable parameter. The target is stored atomically so
// UI, automation and host threads can write it while the processing
// goroutine reads smoothed values.
type Param struct {
	ID      string
	Name    string
	Unit    string
	Range   Range
	Default float32

	format   func(float32) string
	target   atomic.Uint32
	smoother *Smoother
}

func newParam(id, name, unit string, def float32, r Range, style SmoothingStyle, smoothMs float64, format func(float32) string) *Param {
	p := &Param{
		ID:       id,
		Name:     name,
		Unit:     unit,
		Range:    r,
		Default:  def,
		format:   format,
		smoother: NewSmoother(style, smoothMs, core.DefaultSampleRate),
	}
	p.target.Store(math.Float32bits(def))
	p.smoother.Reset(def)

	return p
}

// Set stores a new plain target, clamped to the range. Safe for concurrent use.
func (p *Param) Set(plain float32) {
	p.target.Store(math.Float32bits(p.Range.Clamp(plain)))
}

// SetNormalized stores a target given in [0, 1].
func (p *Param) SetNormalized(n float64) {
	p.Set(p.Range.Unnormalize(n))
}

// Value returns the current plain target. Safe for concurrent use.
func (p *Param) Value() float32 {
	return math.Float32frombits(p.target.Load())
}

// Normalized returns the current target in [0, 1].
func (p *Param) Normalized() float64 {
	return p.Range.Normalize(p.Value())
}

// String formats the current target for display.
func (p *Param) String() string {
	if p.format != nil {
		return p.format(p.Value())
	}

	return fmt.Sprintf("%.2f%s", p.Value(), p.Unit)
}

// Smoother exposes the processing-side smoother.
func (p *Param) Smoother() *Smoother { return p.smoother }

// next advances the smoother, retargeting it first when Set was called.
func (p *Param) next() float32 {
	target := p.Value()
	if target != p.smoother.Target() {
		p.smoother.SetTarget(target)
	}

	return p.smoother.Next()
}

// snap moves the smoother straight to the current target.
func (p *Param) snap() {
	p.smoother.Reset(p.Value())
}
