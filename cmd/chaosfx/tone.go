package main

import (
	"fmt"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/internal/audio"
	"github.com/cwbudde/algo-chaosfx/internal/playback"
	"github.com/sirupsen/logrus"
)

// ToneCmd writes a sine test tone.
type ToneCmd struct {
	Out        string  `arg:"" help:"Output WAV file." type:"path"`
	Freq       float64 `help:"Frequency in Hz." default:"440"`
	Seconds    float64 `help:"Length in seconds." default:"1"`
	Amp        float32 `help:"Peak amplitude." default:"0.5"`
	SampleRate int     `help:"Sample rate in Hz." default:"48000"`
	Channels   int     `help:"Channel count." default:"2"`
	BitDepth   int     `help:"Bit depth." default:"16"`
}

// Run implements the tone command.
func (c *ToneCmd) Run(app *App) error {
	if c.Seconds <= 0 {
		return fmt.Errorf("tone seconds must be > 0: %f", c.Seconds)
	}

	if c.Channels <= 0 {
		return fmt.Errorf("tone channels must be > 0: %d", c.Channels)
	}

	tone, err := playback.NewTone(c.Freq, c.Amp, float64(c.SampleRate))
	if err != nil {
		return err
	}

	b := buffer.New(c.Channels, int(c.Seconds*float64(c.SampleRate)))
	tone.Fill(b)

	err = audio.WriteWAVFile(c.Out, &audio.Clip{SampleRate: c.SampleRate, BitDepth: c.BitDepth, Buffer: b})
	if err != nil {
		return err
	}

	app.Log.WithFields(logrus.Fields{
		"out":  c.Out,
		"freq": c.Freq,
		"amp":  c.Amp,
	}).Info("tone written")

	return nil
}
