package playback

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/internal/testutil"
	"github.com/cwbudde/algo-chaosfx/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}

	return out
}

func TestStreamMatchesDirectProcessing(t *testing.T) {
	const (
		sr       = 48000.0
		channels = 2
		frames   = 64
	)

	streamProc := plugin.New()
	require.NoError(t, streamProc.Prepare(sr, channels))
	streamProc.Params().Drive.Set(4)
	streamProc.Params().Snap()

	tone, err := NewTone(440, 0.5, sr)
	require.NoError(t, err)

	s, err := NewStream(streamProc, tone, channels, frames)
	require.NoError(t, err)

	// 2.5 blocks forces a partial copy across render boundaries.
	p := make([]byte, frames*channels*bytesPerSample*5/2)
	n, err := s.Read(p)
	require.NoError(t, err)
	require.Equal(t, len(p), n)

	directProc := plugin.New()
	require.NoError(t, directProc.Prepare(sr, channels))
	directProc.Params().Drive.Set(4)
	directProc.Params().Snap()

	ref, err := NewTone(440, 0.5, sr)
	require.NoError(t, err)

	b := buffer.New(channels, frames)
	var want []float32

	for range 3 {
		ref.Fill(b)
		require.NoError(t, directProc.Process(b))
		want = append(want, b.Interleave(nil)...)
	}

	got := decode(p)
	testutil.RequireBitIdentical(t, got, want[:len(got)])
	assert.Positive(t, streamProc.MeterValue())
}

func TestStreamUnpreparedProcessor(t *testing.T) {
	tone, err := NewTone(100, 0.1, 44100)
	require.NoError(t, err)

	s, err := NewStream(plugin.New(), tone, 1, 16)
	require.NoError(t, err)

	_, err = s.Read(make([]byte, 8))
	require.ErrorIs(t, err, plugin.ErrNotPrepared)
}

func TestStreamValidation(t *testing.T) {
	tone, err := NewTone(100, 0.1, 44100)
	require.NoError(t, err)

	_, err = NewStream(plugin.New(), tone, 0, 16)
	require.Error(t, err)

	_, err = NewStream(plugin.New(), tone, 1, 0)
	require.Error(t, err)
}

func TestToneValidation(t *testing.T) {
	_, err := NewTone(100, 1, 0)
	require.Error(t, err)

	_, err = NewTone(0, 1, 44100)
	require.Error(t, err)

	_, err = NewTone(30000, 1, 44100)
	require.Error(t, err)
}

func TestToneMatchesSine(t *testing.T) {
	tone, err := NewTone(1000, 0.5, 48000)
	require.NoError(t, err)

	b := buffer.New(2, 480)
	tone.Fill(b)

	want := testutil.DeterministicSine(1000, 48000, 0.5, 480)
	testutil.RequireSliceNearlyEqual(t, b.Channel(0), want, 1e-4)
	testutil.RequireBitIdentical(t, b.Channel(0), b.Channel(1))
}

func TestLoopWrapsAndSpreadsChannels(t *testing.T) {
	clip, err := buffer.FromChannels([][]float32{{1, 2, 3}})
	require.NoError(t, err)

	loop, err := NewLoop(clip)
	require.NoError(t, err)

	b := buffer.New(2, 4)
	loop.Fill(b)
	assert.Equal(t, []float32{1, 2, 3, 1}, b.Channel(0))
	assert.Equal(t, []float32{1, 2, 3, 1}, b.Channel(1))

	loop.Fill(b)
	assert.Equal(t, []float32{2, 3, 1, 2}, b.Channel(0))

	_, err = NewLoop(buffer.New(1, 0))
	require.Error(t, err)

	_, err = NewLoop(nil)
	require.Error(t, err)
}
