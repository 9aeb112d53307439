package param

import (
	"fmt"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
)

// Parameter IDs.
const (
	IDGain    = "gain"
	IDDrive   = "drive"
	IDFractal = "fractal"
	IDChaos   = "chaos"
)

const (
	minGainDB = -30.0
	maxGainDB = 30.0

	minDrive = 1.0
	maxDrive = 50.0

	defaultSmoothingMs = 50.0
)

// Values is one sample's worth of smoothed parameter values.
type Values struct {
	Gain    float32
	Drive   float32
	Fractal float32
	Chaos   float32
}

// DefaultValues returns the parameter defaults: unity gain, drive 1 and both
// chaotic stages off.
func DefaultValues() Values {
	return Values{Gain: 1, Drive: 1}
}

// Fixed is a parameter source that returns the same values every sample.
type Fixed Values

// Next returns the fixed values.
func (f Fixed) Next() Values { return Values(f) }

// Set is the full parameter set of the chaos chain.
type Set struct {
	Gain    *Param
	Drive   *Param
	Fractal *Param
	Chaos   *Param

	all        []*Param
	sampleRate float64
}

// SetOption mutates a set's configuration.
type SetOption func(*setConfig)

type setConfig struct {
	smoothingMs float64
}

// WithSmoothingTime sets the ramp time of every parameter in milliseconds.
// Negative values are ignored; 0 disables smoothing.
func WithSmoothingTime(ms float64) SetOption {
	return func(cfg *setConfig) {
		if ms >= 0 && core.IsFinite(ms) {
			cfg.smoothingMs = ms
		}
	}
}

// NewSet creates the parameter set with defaults, smoothing at the default
// sample rate until SetSampleRate is called.
func NewSet(opts ...SetOption) *Set {
	cfg := setConfig{smoothingMs: defaultSmoothingMs}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	smoothingMs := cfg.smoothingMs

	s := &Set{
		Gain: newParam(IDGain, "Gain", " dB", 1,
			Range{
				Min:  float32(core.DBToLinear(minGainDB)),
				Max:  float32(core.DBToLinear(maxGainDB)),
				Skew: GainSkew(minGainDB, maxGainDB),
			},
			SmoothingLogarithmic, smoothingMs, formatGainDB),
		Drive: newParam(IDDrive, "Drive", "x", minDrive,
			Range{Min: minDrive, Max: maxDrive, Skew: 0.5},
			SmoothingLogarithmic, smoothingMs, formatDrive),
		Fractal: newParam(IDFractal, "Fractal", "%", 0,
			Range{Min: 0, Max: 1, Skew: 1},
			SmoothingLinear, smoothingMs, formatPercent(2)),
		Chaos: newParam(IDChaos, "Chaos", "%", 0,
			Range{Min: 0, Max: 1, Skew: 1},
			SmoothingLinear, smoothingMs, formatPercent(1)),
		sampleRate: core.DefaultSampleRate,
	}
	s.all = []*Param{s.Gain, s.Drive, s.Fractal, s.Chaos}

	return s
}

// Params returns the parameters in display order.
func (s *Set) Params() []*Param { return s.all }

// ByID looks up a parameter by its ID.
func (s *Set) ByID(id string) (*Param, bool) {
	for _, p := range s.all {
		if p.ID == id {
			return p, true
		}
	}

	return nil, false
}

// SetSampleRate recomputes every smoother's ramp length.
func (s *Set) SetSampleRate(sampleRate float64) error {
	err := core.ValidateSampleRate("param set", sampleRate)
	if err != nil {
		return err
	}

	s.sampleRate = sampleRate
	for _, p := range s.all {
		p.smoother.SetSampleRate(sampleRate)
	}

	return nil
}

// SampleRate returns the smoothing sample rate.
func (s *Set) SampleRate() float64 { return s.sampleRate }

// Next advances every smoother by one sample. Processing goroutine only.
func (s *Set) Next() Values {
	return Values{
		Gain:    s.Gain.next(),
		Drive:   s.Drive.next(),
		Fractal: s.Fractal.next(),
		Chaos:   s.Chaos.next(),
	}
}

// Targets returns the current unsmoothed targets.
func (s *Set) Targets() Values {
	return Values{
		Gain:    s.Gain.Value(),
		Drive:   s.Drive.Value(),
		Fractal: s.Fractal.Value(),
		Chaos:   s.Chaos.Value(),
	}
}

// Apply sets all four targets.
func (s *Set) Apply(v Values) {
	s.Gain.Set(v.Gain)
	s.Drive.Set(v.Drive)
	s.Fractal.Set(v.Fractal)
	s.Chaos.Set(v.Chaos)
}

// Snap ends all ramps at their targets.
func (s *Set) Snap() {
	for _, p := range s.all {
		p.snap()
	}
}

// SetByID sets the plain target of the parameter named id.
func (s *Set) SetByID(id string, plain float32) error {
	p, ok := s.ByID(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, id)
	}

	p.Set(plain)

	return nil
}

func formatGainDB(v float32) string {
	return fmt.Sprintf("%.2f dB", core.LinearToDB(float64(v)))
}

func formatDrive(v float32) string {
	return fmt.Sprintf("%.2fx", v)
}

func formatPercent(decimals int) func(float32) string {
	return func(v float32) string {
		return fmt.Sprintf("%.*f%%", decimals, v*100)
	}
}
