package main

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/internal/audio"
	"github.com/cwbudde/algo-chaosfx/internal/automation"
	"github.com/cwbudde/algo-chaosfx/internal/ui"
	"github.com/cwbudde/algo-chaosfx/measure/analysis"
	"github.com/sirupsen/logrus"
)

// RenderCmd processes a WAV file offline.
type RenderCmd struct {
	In  string `arg:"" help:"Input WAV file." type:"existingfile"`
	Out string `arg:"" help:"Output WAV file." type:"path"`

	ChainFlags `embed:""`

	Automation string `help:"Lua script defining automate(t), evaluated once per block." type:"existingfile"`
	BlockSize  int    `help:"Frames per processing block." default:"512"`
	BitDepth   int    `help:"Output bit depth; 0 keeps the input's." default:"0"`
	Dither     bool   `help:"Add TPDF dither when writing the output."`
	Quiet      bool   `short:"q" help:"Do not print the output report."`
}

// Run implements the render command.
func (c *RenderCmd) Run(app *App) error {
	start := time.Now()

	clip, err := audio.ReadWAVFile(c.In)
	if err != nil {
		return err
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(clip.SampleRate)),
		core.WithBlockSize(c.BlockSize),
		core.WithChannels(clip.Buffer.Channels()),
	)

	proc, err := c.newProcessor(app.Log, cfg)
	if err != nil {
		return err
	}

	var script *automation.Script

	if c.Automation != "" {
		script, err = automation.LoadFile(c.Automation)
		if err != nil {
			return err
		}
		defer script.Close()
	}

	frames := clip.Buffer.Frames()
	channels := cfg.Channels
	pool := buffer.NewPool(channels, cfg.BlockSize)

	for pos := 0; pos < frames; pos += cfg.BlockSize {
		n := min(cfg.BlockSize, frames-pos)

		if script != nil {
			err = script.Apply(proc.Params(), float64(pos)/cfg.SampleRate)
			if err != nil {
				return err
			}
		}

		block := pool.Get(n)
		for ch := range channels {
			copy(block.Channel(ch), clip.Buffer.Channel(ch)[pos:pos+n])
		}

		err = proc.Process(block)
		if err != nil {
			pool.Put(block)
			return err
		}

		for ch := range channels {
			copy(clip.Buffer.Channel(ch)[pos:pos+n], block.Channel(ch))
		}

		pool.Put(block)
	}

	if c.BitDepth != 0 {
		clip.BitDepth = c.BitDepth
	}

	var writeOpts []audio.WriteOption
	if c.Dither {
		writeOpts = append(writeOpts, audio.WithDither(uint64(frames)))
	}

	err = audio.WriteWAVFile(c.Out, clip, writeOpts...)
	if err != nil {
		return err
	}

	app.Log.WithFields(logrus.Fields{
		"in":       c.In,
		"out":      c.Out,
		"frames":   frames,
		"channels": channels,
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("render complete")

	if c.Quiet {
		return nil
	}

	reports, err := analysis.AnalyzeChannels(clip.Buffer.Data(), cfg.SampleRate)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(app.Out, ui.RenderReports(c.Out, reports))

	return err
}
