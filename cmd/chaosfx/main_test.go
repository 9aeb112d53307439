package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-chaosfx/internal/audio"
	"github.com/cwbudde/algo-chaosfx/internal/logging"
	"github.com/cwbudde/algo-chaosfx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("chaosfx"), kong.Exit(func(int) { t.Fatal("kong exited") }))
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ctx.Run(&App{Log: logging.Discard(), Out: &out}))

	return out.String()
}

func TestToneRenderAnalyze(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	run(t, "tone", in, "--freq", "750", "--seconds", "0.25", "--sample-rate", "48000", "--channels", "1")

	report := run(t, "render", in, out, "--drive", "8", "--chaos", "0.3", "--fractal", "0.2", "--block-size", "100")
	assert.Contains(t, report, out)
	assert.Contains(t, report, "Channel 1")

	clip, err := audio.ReadWAVFile(out)
	require.NoError(t, err)
	assert.Equal(t, 48000, clip.SampleRate)
	assert.Equal(t, 12000, clip.Buffer.Frames())
	testutil.RequireBounded(t, clip.Buffer.Channel(0), 1)

	analyzed := run(t, "analyze", out, "--fundamental", "750")
	assert.Contains(t, analyzed, "THD")
}

func TestRenderDefaultsAreTransparent(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	run(t, "tone", in, "--seconds", "0.05", "--amp", "0.1", "--bit-depth", "24")
	run(t, "render", in, out, "-q")

	src, err := audio.ReadWAVFile(in)
	require.NoError(t, err)

	dst, err := audio.ReadWAVFile(out)
	require.NoError(t, err)
	assert.Equal(t, 24, dst.BitDepth)

	// Drive 1 and unity gain leave only the tanh curve: tanh(0.1) ~ 0.0997.
	for ch := range src.Buffer.Channels() {
		testutil.RequireSliceNearlyEqual(t, dst.Buffer.Channel(ch), src.Buffer.Channel(ch), 5e-4)
	}
}

func TestRenderWithPresetAndAutomation(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	preset := filepath.Join(dir, "preset.json")
	script := filepath.Join(dir, "auto.lua")

	require.NoError(t, os.WriteFile(preset, []byte(`{"name":"dirty","gainDb":-6,"drive":12,"fractal":0.5,"chaos":0}`), 0o600))
	require.NoError(t, os.WriteFile(script, []byte(`function automate(t) return { chaos = t * 4 } end`), 0o600))

	run(t, "tone", in, "--seconds", "0.2")
	run(t, "render", in, out, "--preset", preset, "--automation", script, "--state-policy", "reference", "-q")

	clip, err := audio.ReadWAVFile(out)
	require.NoError(t, err)
	testutil.RequireBounded(t, clip.Buffer.Channel(0), 1)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "chaosfx "+version+"\n", run(t, "version"))
}

func TestToneValidation(t *testing.T) {
	cmd := &ToneCmd{Out: filepath.Join(t.TempDir(), "x.wav"), Freq: 440, Seconds: 0, SampleRate: 48000, Channels: 1}
	require.Error(t, cmd.Run(&App{Log: logging.Discard(), Out: &bytes.Buffer{}}))

	cmd.Seconds = 1
	cmd.Freq = 30000
	require.Error(t, cmd.Run(&App{Log: logging.Discard(), Out: &bytes.Buffer{}}))
}
