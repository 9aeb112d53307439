// Command chaosfx runs the chaos effect chain offline on WAV files or live
// on the default audio device.
//
// Usage:
//
//	chaosfx render in.wav out.wav --drive 8 --chaos 0.4
//	chaosfx render in.wav out.wav --preset dirty.json --automation sweep.lua
//	chaosfx analyze out.wav --fundamental 440
//	chaosfx tone sine.wav --freq 440 --seconds 2
//	chaosfx play --freq 110 --fractal 0.5
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-chaosfx/internal/logging"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	LogLevel  string `help:"Log level." default:"info" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format." default:"text" enum:"text,json"`

	Render  RenderCmd  `cmd:"" help:"Process a WAV file through the chain."`
	Analyze AnalyzeCmd `cmd:"" help:"Print level and spectrum statistics of a WAV file."`
	Tone    ToneCmd    `cmd:"" help:"Write a sine test tone."`
	Play    PlayCmd    `cmd:"" help:"Play a file or tone through the chain in real time."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// App carries process-wide state into command Run methods.
type App struct {
	Log *logrus.Logger
	Out io.Writer
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("chaosfx"),
		kong.Description("Chaotic waveshaping, fractal folding and Lorenz modulation for audio."),
		kong.UsageOnError(),
	)

	log, err := logging.New(os.Stderr, cli.LogLevel, cli.LogFormat)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&App{Log: log, Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
