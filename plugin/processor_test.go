package plugin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/dsp/effectchain"
	"github.com/cwbudde/algo-chaosfx/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessorRequiresPrepare(t *testing.T) {
	p := New()

	require.ErrorIs(t, p.Process(buffer.New(2, 8)), ErrNotPrepared)
	require.ErrorIs(t, p.SetSampleRate(48000), ErrNotPrepared)
	assert.Nil(t, p.Meter())
	assert.Zero(t, p.MeterValue())

	p.Reset()
}

func TestProcessorPrepareAndProcess(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := New(WithLogger(logger))

	require.NoError(t, p.Prepare(44100, 2))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "processor prepared", hook.LastEntry().Message)
	assert.Equal(t, 44100.0, hook.LastEntry().Data["sample_rate"])

	p.Params().Drive.Set(4)
	p.Params().Fractal.Set(0.5)
	p.Params().Chaos.Set(0.5)

	b, err := buffer.FromChannels([][]float32{
		testutil.DeterministicSine(440, 44100, 0.8, 4096),
		testutil.DeterministicSine(660, 44100, 0.8, 4096),
	})
	require.NoError(t, err)

	require.NoError(t, p.Process(b))

	for ch := range b.Channels() {
		testutil.RequireFinite(t, b.Channel(ch))
	}

	assert.Positive(t, p.MeterValue())
}

func TestProcessorSampleRateChange(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := New(WithLogger(logger))
	require.NoError(t, p.Prepare(44100, 2))

	require.NoError(t, p.Prepare(96000, 2))
	assert.Equal(t, 96000.0, p.SampleRate())
	assert.Equal(t, 96000.0, p.Meter().SampleRate())
	assert.Equal(t, "sample rate changed", hook.LastEntry().Message)

	hook.Reset()
	require.NoError(t, p.SetSampleRate(96000))
	assert.Empty(t, hook.Entries)

	require.Error(t, p.SetSampleRate(-1))
}

func TestProcessorRebuildsForChannelCount(t *testing.T) {
	p := New()
	require.NoError(t, p.Prepare(48000, 1))
	require.ErrorIs(t, p.Process(buffer.New(2, 4)), effectchain.ErrChannelMismatch)

	require.NoError(t, p.Prepare(48000, 2))
	require.NoError(t, p.Process(buffer.New(2, 4)))
}

func TestProcessorPrepareFailureIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := New(WithLogger(logger))

	require.Error(t, p.Prepare(0, 2))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestProcessorReset(t *testing.T) {
	p := New(WithChainOptions(effectchain.WithMeterDecay(500)))
	require.NoError(t, p.Prepare(44100, 1))
	assert.Equal(t, 500.0, p.Meter().DecayMs())

	p.Params().Drive.Set(10)
	require.NoError(t, p.ProcessChannels([][]float32{testutil.Ones(64)}))
	require.Positive(t, p.MeterValue())

	p.Reset()
	assert.Zero(t, p.MeterValue())
	assert.False(t, p.Params().Drive.Smoother().IsSmoothing())
}

func TestProcessorLoadPreset(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := New(WithLogger(logger))

	preset, err := p.LoadPreset(strings.NewReader(`{"name":"wild","drive":12,"fractal":0.9,"chaos":0.7,"gainDb":-6}`))
	require.NoError(t, err)
	assert.Equal(t, "wild", preset.Name)
	assert.Equal(t, float32(12), p.Params().Drive.Value())
	assert.Equal(t, "wild", hook.LastEntry().Data["preset"])

	_, err = p.LoadPreset(bytes.NewBufferString("{"))
	require.Error(t, err)
}

func TestProcessorReferencePolicy(t *testing.T) {
	p := New(WithChainOptions(effectchain.WithStatePolicy(effectchain.StatePolicyReference)))
	require.NoError(t, p.Prepare(44100, 2))

	p.Params().Chaos.Set(1)
	p.Params().Fractal.Set(1)

	b := buffer.New(2, 512)
	copy(b.Channel(0), testutil.DeterministicNoise(3, 1, 512))
	copy(b.Channel(1), testutil.DeterministicNoise(4, 1, 512))

	require.NoError(t, p.Process(b))
	testutil.RequireBounded(t, b.Channel(0), 1)
	testutil.RequireBounded(t, b.Channel(1), 1)
}
