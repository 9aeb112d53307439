// Package plugin adapts the chaos chain to a host: it owns the parameter
// set, prepares the chain for the host's sample rate and channel count, and
// exposes the peak meter to a display.
package plugin

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/dsp/effectchain"
	"github.com/cwbudde/algo-chaosfx/dsp/param"
	"github.com/cwbudde/algo-chaosfx/internal/logging"
	"github.com/cwbudde/algo-chaosfx/measure/peak"
	"github.com/sirupsen/logrus"
)

// ErrNotPrepared is returned by Process before Prepare succeeded.
var ErrNotPrepared = errors.New("plugin: processor not prepared")

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the lifecycle logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Processor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithChainOptions passes options to every chain the processor builds.
func WithChainOptions(opts ...effectchain.Option) Option {
	return func(p *Processor) {
		p.chainOpts = append(p.chainOpts, opts...)
	}
}

// WithParams uses an existing parameter set, for example one shared with
// an automation driver.
func WithParams(set *param.Set) Option {
	return func(p *Processor) {
		if set != nil {
			p.params = set
		}
	}
}

// Processor is the host-facing wrapper around effectchain.Chain.
type Processor struct {
	log       logrus.FieldLogger
	params    *param.Set
	chainOpts []effectchain.Option

	chain       *effectchain.Chain
	sampleRate  float64
	maxChannels int
}

// New returns an unprepared processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		log:    logging.Discard(),
		params: param.NewSet(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Prepare builds the chain for sampleRate and up to maxChannels channels.
// Calling it again with the same channel count only updates the sample
// rate; a different channel count rebuilds the chain.
func (p *Processor) Prepare(sampleRate float64, maxChannels int) error {
	if p.chain != nil && maxChannels == p.maxChannels {
		return p.SetSampleRate(sampleRate)
	}

	opts := append([]effectchain.Option{effectchain.WithMaxChannels(maxChannels)}, p.chainOpts...)

	chain, err := effectchain.New(sampleRate, opts...)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"sample_rate": sampleRate,
			"channels":    maxChannels,
		}).WithError(err).Error("prepare failed")

		return fmt.Errorf("plugin: prepare: %w", err)
	}

	err = p.params.SetSampleRate(sampleRate)
	if err != nil {
		return fmt.Errorf("plugin: prepare: %w", err)
	}

	p.params.Snap()
	p.chain = chain
	p.sampleRate = sampleRate
	p.maxChannels = maxChannels

	p.log.WithFields(logrus.Fields{
		"sample_rate":  sampleRate,
		"channels":     maxChannels,
		"state_policy": chain.Policy().String(),
		"meter_decay":  chain.Meter().DecayMs(),
	}).Info("processor prepared")

	return nil
}

// SetSampleRate propagates a host sample-rate change to the chain and the
// parameter smoothers. It is a no-op when the rate is unchanged.
func (p *Processor) SetSampleRate(sampleRate float64) error {
	if p.chain == nil {
		return ErrNotPrepared
	}

	if sampleRate == p.sampleRate {
		return nil
	}

	err := p.chain.SetSampleRate(sampleRate)
	if err != nil {
		return fmt.Errorf("plugin: sample rate: %w", err)
	}

	err = p.params.SetSampleRate(sampleRate)
	if err != nil {
		return fmt.Errorf("plugin: sample rate: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"from": p.sampleRate,
		"to":   sampleRate,
	}).Info("sample rate changed")

	p.sampleRate = sampleRate

	return nil
}

// Process runs one host block in place.
func (p *Processor) Process(b *buffer.Buffer) error {
	return p.ProcessChannels(b.Data())
}

// ProcessChannels runs one host block of planar channels in place.
func (p *Processor) ProcessChannels(channels [][]float32) error {
	if p.chain == nil {
		return ErrNotPrepared
	}

	_, err := p.chain.ProcessChannels(channels, p.params)

	return err
}

// Reset clears chaotic state and the meter, as on a host transport reset.
func (p *Processor) Reset() {
	if p.chain == nil {
		return
	}

	p.chain.Reset()
	p.params.Snap()
	p.log.Info("processor reset")
}

// Params returns the parameter set. Targets may be set from any goroutine.
func (p *Processor) Params() *param.Set { return p.params }

// Meter returns the peak meter, or nil before Prepare.
func (p *Processor) Meter() *peak.Meter {
	if p.chain == nil {
		return nil
	}

	return p.chain.Meter()
}

// MeterValue returns the current meter reading, 0 before Prepare.
func (p *Processor) MeterValue() float32 {
	m := p.Meter()
	if m == nil {
		return 0
	}

	return m.Value()
}

// SampleRate returns the prepared sample rate.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// LoadPreset reads a JSON preset and applies it as new targets.
func (p *Processor) LoadPreset(r io.Reader) (param.Preset, error) {
	preset, err := param.LoadPreset(r)
	if err != nil {
		return param.Preset{}, err
	}

	p.params.Apply(preset.Values())

	p.log.WithFields(logrus.Fields{
		"preset":  preset.Name,
		"gain_db": preset.GainDB,
		"drive":   preset.Drive,
		"fractal": preset.Fractal,
		"chaos":   preset.Chaos,
	}).Info("preset loaded")

	return preset, nil
}
