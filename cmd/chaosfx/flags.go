package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/dsp/effectchain"
	"github.com/cwbudde/algo-chaosfx/plugin"
	"github.com/sirupsen/logrus"
)

// ChainFlags are the parameter and chain flags shared by render and play.
// Unset parameter flags keep the preset or default value.
type ChainFlags struct {
	Preset      string   `help:"JSON preset applied before the individual flags." type:"existingfile"`
	GainDB      *float64 `name:"gain-db" help:"Output gain in dB (-30..30)."`
	Drive       *float64 `help:"Waveshaper drive (1..50)."`
	Fractal     *float64 `help:"Fractal stage amount (0..1)."`
	Chaos       *float64 `help:"Lorenz stage amount (0..1)."`
	StatePolicy string   `help:"Chaotic state handling." default:"continuous" enum:"continuous,reference"`
	MeterDecay  float64  `help:"Peak meter decay time in ms." default:"150"`
}

// newProcessor builds and prepares a processor from the flags.
func (f *ChainFlags) newProcessor(log logrus.FieldLogger, cfg core.ProcessorConfig) (*plugin.Processor, error) {
	policy, err := effectchain.ParseStatePolicy(f.StatePolicy)
	if err != nil {
		return nil, err
	}

	proc := plugin.New(
		plugin.WithLogger(log),
		plugin.WithChainOptions(
			effectchain.WithStatePolicy(policy),
			effectchain.WithMeterDecay(f.MeterDecay),
		),
	)

	err = proc.Prepare(cfg.SampleRate, cfg.Channels)
	if err != nil {
		return nil, err
	}

	if f.Preset != "" {
		file, err := os.Open(f.Preset)
		if err != nil {
			return nil, err
		}

		_, err = proc.LoadPreset(file)
		file.Close()

		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", f.Preset, err)
		}
	}

	params := proc.Params()

	if f.GainDB != nil {
		params.Gain.Set(float32(core.DBToLinear(*f.GainDB)))
	}

	if f.Drive != nil {
		params.Drive.Set(float32(*f.Drive))
	}

	if f.Fractal != nil {
		params.Fractal.Set(float32(*f.Fractal))
	}

	if f.Chaos != nil {
		params.Chaos.Set(float32(*f.Chaos))
	}

	params.Snap()

	return proc, nil
}
