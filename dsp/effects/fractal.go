package effects

import (
	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/dsp/effects/internal/fastmath"
)

const (
	defaultFractalAmount = 0.0

	fractalReleaseBase   = 0.9995
	fractalEscapeBound   = 2.0
	fractalCReal         = 0.285
	fractalCImag         = 0.01
	fractalCDepth        = 0.01
	fractalInputCoupling = 0.1
	fractalLFOHz         = 0.1
	fractalLFODepth      = 0.1
	fractalWetScale      = 0.2
	fractalFeedback      = 0.4
	fractalStrengthScale = 2.0
	fractalFoldScale     = 2.5
	fractalCounterWrapS  = 60
)

// FractalOption mutates construction-time parameters.
type FractalOption func(*fractalConfig) error

type fractalConfig struct {
	amount float32
}

func defaultFractalConfig() fractalConfig {
	return fractalConfig{amount: defaultFractalAmount}
}

// WithFractalAmount sets the effect amount in [0, 1].
func WithFractalAmount(amount float32) FractalOption {
	return func(cfg *fractalConfig) error {
		err := validateAmount("fractal", amount)
		if err != nil {
			return err
		}

		cfg.amount = amount

		return nil
	}
}

// FractalState is a snapshot of the iteration state.
type FractalState struct {
	ZReal         float32
	ZImag         float32
	PrevOutput    float32
	SampleCounter int
}

// Fractal runs an audio-modulated quadratic-map recurrence z <- z^2 + c
// alongside a wave folder and a slow LFO, then mixes the result with the dry
// signal. A fast-attack/slow-release smoother and a final tanh keep the
// output in (-1, 1).
//
// Amounts at or below BypassThreshold pass input through untouched and leave
// the state as it is.
type Fractal struct {
	sampleRate       float64
	amount           float32
	releaseSmoothing float32
	counterWrap      int

	zReal         float32
	zImag         float32
	prevOutput    float32
	sampleCounter int
}

// NewFractal creates a fractal stage for sampleRate.
func NewFractal(sampleRate float64, opts ...FractalOption) (*Fractal, error) {
	err := core.ValidateSampleRate("fractal", sampleRate)
	if err != nil {
		return nil, err
	}

	cfg := defaultFractalConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	f := &Fractal{amount: cfg.amount}
	f.applySampleRate(sampleRate)

	return f, nil
}

// SetSampleRate updates the release coefficient and LFO counter period.
// The iteration state is kept.
func (f *Fractal) SetSampleRate(sampleRate float64) error {
	err := core.ValidateSampleRate("fractal", sampleRate)
	if err != nil {
		return err
	}

	f.applySampleRate(sampleRate)

	return nil
}

func (f *Fractal) applySampleRate(sampleRate float64) {
	f.sampleRate = sampleRate
	f.releaseSmoothing = fastmath.Pow(fractalReleaseBase, float32(referenceSampleRate/sampleRate))
	f.counterWrap = counterWrap(sampleRate, fractalCounterWrapS)
	f.sampleCounter %= f.counterWrap
}

// SampleRate returns the sample rate in Hz.
func (f *Fractal) SampleRate() float64 { return f.sampleRate }

// SetAmount sets the amount, clamped to [0, 1]. NaN is treated as 0.
func (f *Fractal) SetAmount(amount float32) { f.amount = clampAmount(amount) }

// Amount returns the current amount.
func (f *Fractal) Amount() float32 { return f.amount }

// ReleaseSmoothing returns the release coefficient for the current sample rate.
func (f *Fractal) ReleaseSmoothing() float32 { return f.releaseSmoothing }

// Reset clears the recurrence, smoother and LFO counter.
func (f *Fractal) Reset() {
	f.zReal = 0
	f.zImag = 0
	f.prevOutput = 0
	f.sampleCounter = 0
}

// Reinit resets the state and sets a new amount, as if freshly constructed
// at the current sample rate.
func (f *Fractal) Reinit(amount float32) {
	f.Reset()
	f.SetAmount(amount)
}

// State returns a snapshot of the internal state.
func (f *Fractal) State() FractalState {
	return FractalState{
		ZReal:         f.zReal,
		ZImag:         f.zImag,
		PrevOutput:    f.prevOutput,
		SampleCounter: f.sampleCounter,
	}
}

// ProcessSample processes one sample.
func (f *Fractal) ProcessSample(x float32) float32 {
	amount := f.amount
	if amount <= BypassThreshold {
		return x
	}

	strength := amount * fractalStrengthScale
	foldStrength := amount * fractalFoldScale

	mod := x * strength
	cReal := fractalCReal + fractalCDepth*fastmath.Sin(mod)
	cImag := fractalCImag + fractalCDepth*fastmath.Cos(mod)

	zr, zi := f.zReal, f.zImag
	f.zReal = zr*zr - zi*zi + cReal + x*fractalInputCoupling
	f.zImag = 2*zr*zi + cImag
	f.stabilize()

	lfoPhase := float32(f.sampleCounter) / float32(f.sampleRate) * fractalLFOHz * twoPi
	lfo := fastmath.Sin(lfoPhase) * fractalLFODepth
	folded := Fold(x+lfo, foldStrength)

	mixed := x*(1-amount) + (f.zReal*fractalWetScale*strength+folded)*amount
	withFeedback := mixed + amount*fractalFeedback*fastmath.Tanh(f.zReal)

	smoothed := withFeedback
	if abs32(withFeedback) <= abs32(f.prevOutput) {
		r := f.releaseSmoothing
		smoothed = withFeedback*(1-r) + f.prevOutput*r
	}

	out := fastmath.Tanh(smoothed)

	f.sampleCounter = (f.sampleCounter + 1) % f.counterWrap
	if core.IsFinite(out) {
		f.prevOutput = out
	} else {
		f.prevOutput = 0
	}

	return out
}

// stabilize halves z until both components are within the escape bound.
// Non-finite state restarts from the origin.
func (f *Fractal) stabilize() {
	if !core.IsFinite(f.zReal) || !core.IsFinite(f.zImag) {
		f.zReal, f.zImag = 0, 0
		return
	}

	for abs32(f.zReal) > fractalEscapeBound || abs32(f.zImag) > fractalEscapeBound {
		f.zReal *= 0.5
		f.zImag *= 0.5
	}
}

// ProcessInPlace processes buf in place.
func (f *Fractal) ProcessInPlace(buf []float32) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// ProcessBuffer processes b frame by frame, feeding every channel of a frame
// through the same state before moving to the next frame.
func (f *Fractal) ProcessBuffer(b *buffer.Buffer) {
	data := b.Data()
	for i := range b.Frames() {
		for _, ch := range data {
			ch[i] = f.ProcessSample(ch[i])
		}
	}
}

// Fold reflects x around ±1/strength whenever it exceeds that threshold.
// A strength <= 0 leaves x unchanged.
func Fold(x, strength float32) float32 {
	if strength <= 0 {
		return x
	}

	threshold := 1 / strength

	switch {
	case x > threshold:
		return 2*threshold - x
	case x < -threshold:
		return -2*threshold - x
	default:
		return x
	}
}
