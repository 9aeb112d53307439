package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/measure/peak"
)

const maxSupportedChannels = 64

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	policy      StatePolicy
	meterDecay  float64
	maxChannels int
}

func defaultConfig() config {
	return config{
		policy:      StatePolicyContinuous,
		meterDecay:  peak.DefaultDecayMs,
		maxChannels: core.DefaultChannels,
	}
}

// WithStatePolicy selects how chaotic state is carried between samples.
func WithStatePolicy(p StatePolicy) Option {
	return func(cfg *config) error {
		if !validStatePolicy(p) {
			return fmt.Errorf("%w: %d", ErrUnknownStatePolicy, int(p))
		}

		cfg.policy = p

		return nil
	}
}

// WithMeterDecay sets the peak meter's 12 dB decay time in milliseconds.
func WithMeterDecay(ms float64) Option {
	return func(cfg *config) error {
		if ms <= 0 || !core.IsFinite(ms) {
			return fmt.Errorf("effectchain meter decay must be > 0 and finite: %f", ms)
		}

		cfg.meterDecay = ms

		return nil
	}
}

// WithMaxChannels sets how many channels Process accepts. Per-channel state
// is allocated up front so processing never allocates.
func WithMaxChannels(n int) Option {
	return func(cfg *config) error {
		if n < 1 || n > maxSupportedChannels {
			return fmt.Errorf("effectchain max channels must be in [1, %d]: %d", maxSupportedChannels, n)
		}

		cfg.maxChannels = n

		return nil
	}
}
