package main

import (
	"fmt"

	"github.com/cwbudde/algo-chaosfx/internal/audio"
	"github.com/cwbudde/algo-chaosfx/internal/ui"
	"github.com/cwbudde/algo-chaosfx/measure/analysis"
)

// AnalyzeCmd prints a report for each channel of a WAV file.
type AnalyzeCmd struct {
	In          string  `arg:"" help:"WAV file to analyze." type:"existingfile"`
	Fundamental float64 `help:"Fundamental frequency in Hz for harmonic distortion; 0 skips it."`
	FFTSize     int     `name:"fft-size" help:"Spectrum FFT size." default:"8192"`
}

// Run implements the analyze command.
func (c *AnalyzeCmd) Run(app *App) error {
	clip, err := audio.ReadWAVFile(c.In)
	if err != nil {
		return err
	}

	reports, err := analysis.AnalyzeChannels(clip.Buffer.Data(), float64(clip.SampleRate),
		analysis.WithFundamental(c.Fundamental),
		analysis.WithFFTSize(c.FFTSize),
	)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(app.Out, ui.RenderReports(c.In, reports))

	return err
}
