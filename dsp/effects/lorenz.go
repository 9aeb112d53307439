package effects

import (
	"fmt"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/dsp/effects/internal/fastmath"
)

const (
	defaultLorenzAmount = 0.0

	lorenzSigma = 10.0
	lorenzRho   = 28.0
	lorenzBeta  = 8.0 / 3.0

	lorenzInitialState   = 0.1
	lorenzStateBound     = 100.0
	lorenzConditioning   = 0.1
	lorenzRhoCoupling    = 5.0
	lorenzBaseTimeStep   = 0.005
	lorenzEvolvePeriod   = 4000
	lorenzEvolveCycleS   = 120.0
	lorenzCounterWrapS   = 600
	lorenzPhaseIncrement = 0.001 * 440.0
	lorenzPhaseFMDepth   = 0.01

	lorenzSigmaDrift = 0.5
	lorenzRhoDrift   = 0.5 * lorenzRhoCoupling
	lorenzBetaDrift  = 0.3
)

// LorenzOption mutates construction-time parameters.
type LorenzOption func(*lorenzConfig) error

type lorenzConfig struct {
	amount   float32
	timeStep float32
}

func defaultLorenzConfig() lorenzConfig {
	return lorenzConfig{amount: defaultLorenzAmount}
}

// WithLorenzAmount sets the effect amount in [0, 1].
func WithLorenzAmount(amount float32) LorenzOption {
	return func(cfg *lorenzConfig) error {
		err := validateAmount("lorenz", amount)
		if err != nil {
			return err
		}

		cfg.amount = amount

		return nil
	}
}

// WithLorenzTimeStep overrides the integration step. The step must be > 0.
// Without this option the step is 0.005*44100/sampleRate.
func WithLorenzTimeStep(dt float32) LorenzOption {
	return func(cfg *lorenzConfig) error {
		if dt <= 0 || !core.IsFinite(dt) {
			return fmt.Errorf("lorenz time step must be > 0 and finite: %f", dt)
		}

		cfg.timeStep = dt

		return nil
	}
}

// LorenzState is a snapshot of the attractor and its modulators.
type LorenzState struct {
	X, Y, Z          float32
	Sigma, Rho, Beta float32
	Phase            float32
	EvolutionCounter int
}

// Lorenz drives an explicit-Euler Lorenz attractor with the input signal and
// uses the attractor output to amplitude-modulate, phase-modulate and inject
// into the signal. The attractor parameters drift slowly around the classic
// chaotic regime. State is clamped to ±100 after every step and the output
// is soft clipped with tanh.
type Lorenz struct {
	sampleRate  float64
	amount      float32
	dt          float32
	dtOverride  bool
	phaseInc    float32
	counterWrap int

	x, y, z          float32
	sigma, rho, beta float32
	phase            float32
	evolutionCounter int
}

// NewLorenz creates a Lorenz stage for sampleRate.
func NewLorenz(sampleRate float64, opts ...LorenzOption) (*Lorenz, error) {
	err := core.ValidateSampleRate("lorenz", sampleRate)
	if err != nil {
		return nil, err
	}

	cfg := defaultLorenzConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	l := &Lorenz{
		amount:     cfg.amount,
		dt:         cfg.timeStep,
		dtOverride: cfg.timeStep > 0,
	}
	l.applySampleRate(sampleRate)
	l.Reset()

	return l, nil
}

// SetSampleRate recomputes the default time step, phase increment and
// evolution period. An explicit time step set via SetTimeStep is kept.
func (l *Lorenz) SetSampleRate(sampleRate float64) error {
	err := core.ValidateSampleRate("lorenz", sampleRate)
	if err != nil {
		return err
	}

	l.applySampleRate(sampleRate)

	return nil
}

func (l *Lorenz) applySampleRate(sampleRate float64) {
	l.sampleRate = sampleRate
	if !l.dtOverride {
		l.dt = float32(lorenzBaseTimeStep * referenceSampleRate / sampleRate)
	}

	l.phaseInc = float32(lorenzPhaseIncrement / sampleRate)
	l.counterWrap = counterWrap(sampleRate, lorenzCounterWrapS)
	l.evolutionCounter %= l.counterWrap
}

// SetTimeStep overrides the integration step. Values <= 0 or non-finite
// restore the sample-rate derived default.
func (l *Lorenz) SetTimeStep(dt float32) {
	if dt <= 0 || !core.IsFinite(dt) {
		l.dtOverride = false
		l.dt = float32(lorenzBaseTimeStep * referenceSampleRate / l.sampleRate)

		return
	}

	l.dtOverride = true
	l.dt = dt
}

// TimeStep returns the integration step.
func (l *Lorenz) TimeStep() float32 { return l.dt }

// SampleRate returns the sample rate in Hz.
func (l *Lorenz) SampleRate() float64 { return l.sampleRate }

// SetAmount sets the amount, clamped to [0, 1]. NaN is treated as 0.
func (l *Lorenz) SetAmount(amount float32) { l.amount = clampAmount(amount) }

// Amount returns the current amount.
func (l *Lorenz) Amount() float32 { return l.amount }

// Reset returns the attractor to (0.1, 0.1, 0.1) with canonical parameters
// and clears the phase and evolution counter.
func (l *Lorenz) Reset() {
	l.x, l.y, l.z = lorenzInitialState, lorenzInitialState, lorenzInitialState
	l.sigma, l.rho, l.beta = lorenzSigma, lorenzRho, lorenzBeta
	l.phase = 0
	l.evolutionCounter = 0
}

// Reinit resets the state and sets a new amount, as if freshly constructed
// at the current sample rate.
func (l *Lorenz) Reinit(amount float32) {
	l.Reset()
	l.SetAmount(amount)
}

// State returns a snapshot of the internal state.
func (l *Lorenz) State() LorenzState {
	return LorenzState{
		X: l.x, Y: l.y, Z: l.z,
		Sigma: l.sigma, Rho: l.rho, Beta: l.beta,
		Phase:            l.phase,
		EvolutionCounter: l.evolutionCounter,
	}
}

// ProcessSample processes one sample.
func (l *Lorenz) ProcessSample(x float32) float32 {
	amount := l.amount
	if amount <= BypassThreshold {
		return x
	}

	l.phase += l.phaseInc
	if l.phase > 1 {
		l.phase--
	}

	l.integrate(x)
	l.evolve()

	chaos := l.output()

	am := x * (1 + chaos*amount)
	fm := x * fastmath.Cos((l.phase+chaos*lorenzPhaseFMDepth*amount)*twoPi) * 0.5
	shaped := chaos * chaos * chaos * amount * 0.3

	result := x*(1-amount) + (am*0.5+fm*0.3+shaped)*amount

	return fastmath.Tanh(result)
}

func (l *Lorenz) integrate(input float32) {
	xs := l.x * lorenzConditioning
	ys := l.y * lorenzConditioning
	zs := l.z * lorenzConditioning

	rho := l.rho + input*lorenzRhoCoupling*l.amount

	dx := l.sigma * (ys - xs)
	dy := xs*(rho-zs) - ys
	dz := xs*ys - l.beta*zs

	l.x = clampState(l.x + dx*l.dt)
	l.y = clampState(l.y + dy*l.dt)
	l.z = clampState(l.z + dz*l.dt)
}

// clampState bounds a coordinate to ±100. NaN restarts from the initial value.
func clampState(v float32) float32 {
	if isNaN32(v) {
		return lorenzInitialState
	}

	return core.Clamp(v, -lorenzStateBound, lorenzStateBound)
}

func (l *Lorenz) evolve() {
	if l.evolutionCounter%lorenzEvolvePeriod == 0 {
		t := float32(l.evolutionCounter) / float32(l.sampleRate*lorenzEvolveCycleS)
		a := l.amount

		l.sigma = lorenzSigma + lorenzSigmaDrift*fastmath.Sin(t*0.1*pi32)*a
		l.rho = lorenzRho + lorenzRhoDrift*fastmath.Sin(t*0.07*pi32)*a
		l.beta = lorenzBeta + lorenzBetaDrift*fastmath.Sin(t*0.05*pi32)*a
	}

	l.evolutionCounter = (l.evolutionCounter + 1) % l.counterWrap
}

func (l *Lorenz) output() float32 {
	return 0.5*fastmath.Tanh(l.x/30) + 0.3*fastmath.Tanh(l.y/30) + 0.2*fastmath.Tanh(l.z/50)
}

// ProcessInPlace processes buf in place.
func (l *Lorenz) ProcessInPlace(buf []float32) {
	for i := range buf {
		buf[i] = l.ProcessSample(buf[i])
	}
}

// ProcessBuffer processes b frame by frame, feeding every channel of a frame
// through the same state before moving to the next frame.
func (l *Lorenz) ProcessBuffer(b *buffer.Buffer) {
	data := b.Data()
	for i := range b.Frames() {
		for _, ch := range data {
			ch[i] = l.ProcessSample(ch[i])
		}
	}
}
