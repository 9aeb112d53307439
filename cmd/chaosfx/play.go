package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-chaosfx/dsp/core"
	"github.com/cwbudde/algo-chaosfx/internal/audio"
	"github.com/cwbudde/algo-chaosfx/internal/playback"
	"github.com/cwbudde/algo-chaosfx/internal/ui"
	"github.com/cwbudde/algo-chaosfx/plugin"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const plainMeterInterval = time.Second

// PlayCmd plays a looping file or a tone through the chain.
type PlayCmd struct {
	In string `arg:"" optional:"" help:"WAV file to loop; a tone is played when omitted." type:"existingfile"`

	ChainFlags `embed:""`

	Freq       float64       `help:"Tone frequency in Hz." default:"110"`
	Amp        float32       `help:"Tone peak amplitude." default:"0.5"`
	SampleRate int           `help:"Tone sample rate in Hz." default:"48000"`
	BlockSize  int           `help:"Frames rendered per device request." default:"512"`
	Duration   time.Duration `help:"Stop after this long; 0 plays until interrupted."`
	Plain      bool          `help:"Log the meter instead of showing the terminal UI."`
}

// Run implements the play command.
func (c *PlayCmd) Run(app *App) error {
	src, title, cfg, err := c.source()
	if err != nil {
		return err
	}

	proc, err := c.newProcessor(app.Log, cfg)
	if err != nil {
		return err
	}

	stream, err := playback.NewStream(proc, src, cfg.Channels, cfg.BlockSize)
	if err != nil {
		return err
	}

	player, err := playback.NewPlayer(int(cfg.SampleRate), stream)
	if err != nil {
		return err
	}
	defer player.Close()

	player.Start()

	app.Log.WithFields(logrus.Fields{
		"source":      title,
		"sample_rate": cfg.SampleRate,
		"channels":    cfg.Channels,
	}).Info("playback started")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Duration)
		defer cancel()
	}

	if !c.Plain && term.IsTerminal(int(os.Stdout.Fd())) {
		return runMeterUI(ctx, proc, player, title)
	}

	return logMeter(ctx, app.Log, proc, player)
}

func (c *PlayCmd) source() (playback.Source, string, core.ProcessorConfig, error) {
	if c.In == "" {
		cfg := core.ApplyProcessorOptions(
			core.WithSampleRate(float64(c.SampleRate)),
			core.WithBlockSize(c.BlockSize),
		)

		tone, err := playback.NewTone(c.Freq, c.Amp, cfg.SampleRate)
		if err != nil {
			return nil, "", cfg, err
		}

		return tone, fmt.Sprintf("tone %.0f Hz", c.Freq), cfg, nil
	}

	clip, err := audio.ReadWAVFile(c.In)
	if err != nil {
		return nil, "", core.ProcessorConfig{}, err
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(clip.SampleRate)),
		core.WithBlockSize(c.BlockSize),
		core.WithChannels(clip.Buffer.Channels()),
	)

	loop, err := playback.NewLoop(clip.Buffer)
	if err != nil {
		return nil, "", cfg, err
	}

	return loop, c.In, cfg, nil
}

func runMeterUI(ctx context.Context, proc *plugin.Processor, player *playback.Player, title string) error {
	program := tea.NewProgram(ui.NewModel(proc, title), tea.WithAltScreen(), tea.WithContext(ctx))

	go watchPlayer(ctx, player, func(err error) {
		program.Send(ui.PlaybackErrMsg{Err: err})
	})

	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	if err != nil {
		return err
	}

	if m, ok := final.(ui.Model); ok && m.Err != nil {
		return m.Err
	}

	return nil
}

func logMeter(ctx context.Context, log logrus.FieldLogger, proc *plugin.Processor, player *playback.Player) error {
	ticker := time.NewTicker(plainMeterInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("playback stopped")
			return nil
		case <-ticker.C:
			if err := player.Err(); err != nil {
				return err
			}

			log.WithField("peak_db", fmt.Sprintf("%.1f", core.LinearToDB(float64(proc.MeterValue())))).Info("meter")
		}
	}
}

// watchPlayer reports the first playback error through report.
func watchPlayer(ctx context.Context, player *playback.Player, report func(error)) {
	ticker := time.NewTicker(ui.RefreshInterval * 10)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := player.Err(); err != nil {
				report(err)
				return
			}
		}
	}
}
