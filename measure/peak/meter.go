package peak

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
)

const (
	// DefaultDecayMs is the time for the reading to fall by 12 dB.
	DefaultDecayMs = 150.0

	decayTarget = 0.25
)

// MeterOption mutates construction-time parameters.
type MeterOption func(*meterConfig) error

type meterConfig struct {
	decayMs float64
}

func defaultMeterConfig() meterConfig {
	return meterConfig{decayMs: DefaultDecayMs}
}

// WithDecay sets the 12 dB decay time in milliseconds. It must be > 0.
func WithDecay(ms float64) MeterOption {
	return func(cfg *meterConfig) error {
		if ms <= 0 || !core.IsFinite(ms) {
			return fmt.Errorf("peak meter decay must be > 0 and finite: %f", ms)
		}

		cfg.decayMs = ms

		return nil
	}
}

// Meter is a single-writer, many-reader decaying peak meter. The reading is
// stored as float32 bits in an atomic word so readers never see a torn value.
type Meter struct {
	value atomic.Uint32

	sampleRate  float64
	decayMs     float64
	decayWeight float32
}

// NewMeter creates a meter for sampleRate. The reading starts at 0.
func NewMeter(sampleRate float64, opts ...MeterOption) (*Meter, error) {
	err := core.ValidateSampleRate("peak meter", sampleRate)
	if err != nil {
		return nil, err
	}

	cfg := defaultMeterConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	m := &Meter{decayMs: cfg.decayMs}
	m.applySampleRate(sampleRate)

	return m, nil
}

// DecayWeight returns the per-update decay factor for the given rate and
// decay time: 0.25^(1 / (sampleRate * decayMs / 1000)).
func DecayWeight(sampleRate, decayMs float64) float32 {
	return float32(math.Pow(decayTarget, 1/(sampleRate*decayMs/1000)))
}

// SetSampleRate recomputes the decay weight. The current reading is kept.
func (m *Meter) SetSampleRate(sampleRate float64) error {
	err := core.ValidateSampleRate("peak meter", sampleRate)
	if err != nil {
		return err
	}

	m.applySampleRate(sampleRate)

	return nil
}

func (m *Meter) applySampleRate(sampleRate float64) {
	m.sampleRate = sampleRate
	m.decayWeight = DecayWeight(sampleRate, m.decayMs)
}

// SampleRate returns the sample rate in Hz.
func (m *Meter) SampleRate() float64 { return m.sampleRate }

// DecayMs returns the 12 dB decay time in milliseconds.
func (m *Meter) DecayMs() float64 { return m.decayMs }

// Weight returns the current per-update decay factor.
func (m *Meter) Weight() float32 { return m.decayWeight }

// Update folds one block's peak into the reading and returns the new value.
// Non-finite or negative peaks count as silence. Only the processing
// goroutine may call Update.
func (m *Meter) Update(blockPeak float32) float32 {
	if blockPeak < 0 || !core.IsFinite(blockPeak) {
		blockPeak = 0
	}

	cur := m.Value()

	next := blockPeak
	if blockPeak <= cur {
		next = max(blockPeak, cur*m.decayWeight)
	}

	m.value.Store(math.Float32bits(next))

	return next
}

// Value returns the current reading. Safe for concurrent use.
func (m *Meter) Value() float32 {
	return math.Float32frombits(m.value.Load())
}

// ValueDB returns the current reading in dBFS, or -Inf when silent.
func (m *Meter) ValueDB() float64 {
	return core.LinearToDB(float64(m.Value()))
}

// Reset sets the reading back to 0.
func (m *Meter) Reset() {
	m.value.Store(0)
}
