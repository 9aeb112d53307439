package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizerRoundsAndClips(t *testing.T) {
	q := newQuantizer(16, writeConfig{})

	assert.Equal(t, 32767, q.quantize(1))
	assert.Equal(t, -32767, q.quantize(-1))
	assert.Equal(t, 32767, q.quantize(4))
	assert.Equal(t, 0, q.quantize(0))
	assert.Equal(t, 16384, q.quantize(0.5))
}

func TestQuantizerDitherStaysWithinOneLSB(t *testing.T) {
	q := newQuantizer(16, writeConfig{dither: true, seed: 7})
	want := 0.25 * 32767

	sum := 0.0

	for range 10000 {
		v := q.quantize(0.25)
		assert.InDelta(t, want, float64(v), 1.5)
		sum += float64(v)
	}

	// TPDF noise is zero mean.
	assert.InDelta(t, want, sum/10000, 0.05)
}

func TestWriteWAVDitherIsReproducible(t *testing.T) {
	buf, err := buffer.FromChannels([][]float32{testutil.DeterministicSine(100, 8000, 0.01, 800)})
	require.NoError(t, err)

	dir := t.TempDir()
	clip := &Clip{SampleRate: 8000, Buffer: buf}

	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "b.wav")
	plain := filepath.Join(dir, "plain.wav")

	require.NoError(t, WriteWAVFile(a, clip, WithDither(3)))
	require.NoError(t, WriteWAVFile(b, clip, WithDither(3)))
	require.NoError(t, WriteWAVFile(plain, clip))

	da, err := os.ReadFile(a)
	require.NoError(t, err)

	db, err := os.ReadFile(b)
	require.NoError(t, err)

	dp, err := os.ReadFile(plain)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(da, db))
	assert.False(t, bytes.Equal(da, dp))

	got, err := ReadWAVFile(a)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got.Buffer.Channel(0), buf.Channel(0), 2.0/32768)
}
