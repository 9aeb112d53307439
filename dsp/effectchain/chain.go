package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/dsp/effects"
	"github.com/cwbudde/algo-chaosfx/dsp/param"
	"github.com/cwbudde/algo-chaosfx/measure/peak"
)

var (
	// ErrChannelMismatch is returned when a block has more channels than the
	// chain was prepared for.
	ErrChannelMismatch = errors.New("effectchain: channel count exceeds prepared maximum")
	// ErrUnknownStatePolicy is returned for an unrecognised StatePolicy.
	ErrUnknownStatePolicy = errors.New("effectchain: unknown state policy")
)

// ParamSource yields one set of smoothed parameter values per frame.
// *param.Set and param.Fixed implement it.
type ParamSource interface {
	Next() param.Values
}

type stageSet struct {
	shaper  *effects.Waveshaper
	fractal *effects.Fractal
	lorenz  *effects.Lorenz
}

func newStageSet(sampleRate float64) (stageSet, error) {
	shaper, err := effects.NewWaveshaper()
	if err != nil {
		return stageSet{}, err
	}

	fractal, err := effects.NewFractal(sampleRate)
	if err != nil {
		return stageSet{}, err
	}

	lorenz, err := effects.NewLorenz(sampleRate)
	if err != nil {
		return stageSet{}, err
	}

	return stageSet{shaper: shaper, fractal: fractal, lorenz: lorenz}, nil
}

func (s *stageSet) setSampleRate(sampleRate float64) error {
	err := s.fractal.SetSampleRate(sampleRate)
	if err != nil {
		return err
	}

	return s.lorenz.SetSampleRate(sampleRate)
}

func (s *stageSet) reset() {
	s.fractal.Reset()
	s.lorenz.Reset()
}

// update applies per-frame parameter values, keeping chaotic state.
func (s *stageSet) update(v param.Values) {
	s.shaper.SetDrive(v.Drive)
	s.fractal.SetAmount(v.Fractal)
	s.lorenz.SetAmount(v.Chaos)
}

// rebuild applies per-frame parameter values to freshly initialised stages.
func (s *stageSet) rebuild(v param.Values) {
	s.shaper.SetDrive(v.Drive)
	s.fractal.Reinit(v.Fractal)
	s.lorenz.Reinit(v.Chaos)
}

func (s *stageSet) process(x, gain float32) float32 {
	x = s.shaper.ProcessSample(x)
	x = s.fractal.ProcessSample(x)
	x = s.lorenz.ProcessSample(x)

	return effects.Gain{}.ProcessSample(x, gain)
}

// Chain runs waveshaper, fractal, Lorenz and gain on every sample, in that
// order, and feeds each block's peak into a shared meter.
type Chain struct {
	sampleRate  float64
	policy      StatePolicy
	maxChannels int

	sets      []stageSet
	meter     *peak.Meter
	blockPeak float32
}

// New creates a chain for sampleRate.
func New(sampleRate float64, opts ...Option) (*Chain, error) {
	err := core.ValidateSampleRate("effectchain", sampleRate)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	meter, err := peak.NewMeter(sampleRate, peak.WithDecay(cfg.meterDecay))
	if err != nil {
		return nil, err
	}

	n := cfg.maxChannels
	if cfg.policy == StatePolicyReference {
		n = 1
	}

	sets := make([]stageSet, n)
	for i := range sets {
		sets[i], err = newStageSet(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("effectchain: build stages: %w", err)
		}
	}

	return &Chain{
		sampleRate:  sampleRate,
		policy:      cfg.policy,
		maxChannels: cfg.maxChannels,
		sets:        sets,
		meter:       meter,
	}, nil
}

// SetSampleRate propagates a new sample rate to every chaotic stage and the
// meter. Chaotic state is kept.
func (c *Chain) SetSampleRate(sampleRate float64) error {
	err := core.ValidateSampleRate("effectchain", sampleRate)
	if err != nil {
		return err
	}

	for i := range c.sets {
		err := c.sets[i].setSampleRate(sampleRate)
		if err != nil {
			return err
		}
	}

	err = c.meter.SetSampleRate(sampleRate)
	if err != nil {
		return err
	}

	c.sampleRate = sampleRate

	return nil
}

// SampleRate returns the sample rate in Hz.
func (c *Chain) SampleRate() float64 { return c.sampleRate }

// Policy returns the state policy.
func (c *Chain) Policy() StatePolicy { return c.policy }

// MaxChannels returns the largest channel count Process accepts.
func (c *Chain) MaxChannels() int { return c.maxChannels }

// Meter returns the chain's peak meter. Its Value method may be called
// from any goroutine.
func (c *Chain) Meter() *peak.Meter { return c.meter }

// BlockPeak returns the peak absolute output of the last processed block.
func (c *Chain) BlockPeak() float32 { return c.blockPeak }

// Reset returns every chaotic stage to its initial state and clears the meter.
func (c *Chain) Reset() {
	for i := range c.sets {
		c.sets[i].reset()
	}

	c.meter.Reset()
	c.blockPeak = 0
}

// Process runs the chain over b in place, pulling one set of parameter
// values per frame from params, and updates the meter with the block peak.
func (c *Chain) Process(b *buffer.Buffer, params ParamSource) (float32, error) {
	return c.ProcessChannels(b.Data(), params)
}

// ProcessChannels is Process for planar channel slices of equal length.
func (c *Chain) ProcessChannels(channels [][]float32, params ParamSource) (float32, error) {
	if len(channels) > c.maxChannels {
		return 0, fmt.Errorf("%w: got %d, max %d", ErrChannelMismatch, len(channels), c.maxChannels)
	}

	frames := 0
	if len(channels) > 0 {
		frames = len(channels[0])
	}

	for ch := range channels {
		if len(channels[ch]) != frames {
			return 0, fmt.Errorf("%w: channel %d has %d frames, want %d", buffer.ErrRaggedChannels, ch, len(channels[ch]), frames)
		}
	}

	var blockPeak float32

	for i := range frames {
		v := params.Next()

		switch c.policy {
		case StatePolicyReference:
			set := &c.sets[0]
			set.rebuild(v)

			for _, data := range channels {
				y := set.process(data[i], v.Gain)
				data[i] = y
				blockPeak = max(blockPeak, abs32(y))
			}
		default:
			for ch, data := range channels {
				set := &c.sets[ch]
				set.update(v)

				y := set.process(data[i], v.Gain)
				data[i] = y
				blockPeak = max(blockPeak, abs32(y))
			}
		}
	}

	c.blockPeak = blockPeak
	c.meter.Update(blockPeak)

	return blockPeak, nil
}

// ProcessSample runs one sample of channel ch through the chain without
// touching the meter.
func (c *Chain) ProcessSample(ch int, x float32, v param.Values) (float32, error) {
	if ch < 0 || ch >= c.maxChannels {
		return 0, fmt.Errorf("%w: channel %d, max %d", ErrChannelMismatch, ch, c.maxChannels)
	}

	set := &c.sets[0]
	if c.policy == StatePolicyReference {
		set.rebuild(v)
	} else {
		set = &c.sets[ch]
		set.update(v)
	}

	return set.process(x, v.Gain), nil
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}

	return x
}
