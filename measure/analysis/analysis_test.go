package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-chaosfx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRate = 48000.0
	// 128 bins of an 8192-point FFT at 48 kHz.
	testFreq = 750.0
)

func TestAnalyzeSineLevels(t *testing.T) {
	x := testutil.DeterministicSine(testFreq, testRate, 0.5, 8192)

	r, err := Analyze(x, testRate)
	require.NoError(t, err)

	assert.Equal(t, 8192, r.Samples)
	assert.Zero(t, r.NonFinite)
	assert.InDelta(t, 0.5, r.Peak, 1e-3)
	assert.InDelta(t, 0.5/math.Sqrt2, r.RMS, 1e-3)
	assert.InDelta(t, 3.01, r.CrestDB, 0.05)
	assert.InDelta(t, 0, r.DC, 1e-4)
	assert.InDelta(t, -6.02, r.PeakDB, 0.05)
	assert.InDelta(t, testFreq, r.Centroid, 10)
}

func TestAnalyzeDC(t *testing.T) {
	r, err := Analyze(testutil.DC(0.25, 1000), testRate)
	require.NoError(t, err)

	assert.InDelta(t, 0.25, r.DC, 1e-7)
	assert.InDelta(t, 0, r.CrestDB, 1e-9)
}

func TestAnalyzeCountsNonFinite(t *testing.T) {
	x := []float32{0.5, float32(math.NaN()), float32(math.Inf(1)), -0.25}

	r, err := Analyze(x, testRate)
	require.NoError(t, err)

	assert.Equal(t, 2, r.NonFinite)
	assert.InDelta(t, 0.5, r.Peak, 1e-9)
}

func TestAnalyzeTHD(t *testing.T) {
	fund := testutil.DeterministicSine(testFreq, testRate, 0.5, 8192)
	third := testutil.DeterministicSine(3*testFreq, testRate, 0.05, 8192)

	x := make([]float32, len(fund))
	for i := range x {
		x[i] = fund[i] + third[i]
	}

	r, err := Analyze(x, testRate, WithFundamental(testFreq), WithFFTSize(8192))
	require.NoError(t, err)

	assert.InDelta(t, 0.1, r.THD, 0.005)
	assert.InDelta(t, -20, r.THDDB, 0.5)
	assert.Equal(t, testFreq, r.Fundamental)

	pure, err := Analyze(fund, testRate, WithFundamental(testFreq))
	require.NoError(t, err)
	assert.Less(t, pure.THD, 0.01)
}

func TestAnalyzeWithoutFundamentalSkipsTHD(t *testing.T) {
	r, err := Analyze(testutil.DeterministicSine(testFreq, testRate, 0.5, 4096), testRate)
	require.NoError(t, err)

	assert.Zero(t, r.THD)
	assert.Zero(t, r.Fundamental)
}

func TestAnalyzeEmptyAndErrors(t *testing.T) {
	r, err := Analyze(nil, testRate)
	require.NoError(t, err)
	assert.Zero(t, r.Samples)
	assert.True(t, math.IsInf(r.PeakDB, -1))

	_, err = Analyze([]float32{1}, 0)
	require.Error(t, err)

	_, err = AnalyzeChannels([][]float32{{1}}, -1)
	require.Error(t, err)
}

func TestAnalyzeChannels(t *testing.T) {
	reports, err := AnalyzeChannels([][]float32{testutil.DC(0.5, 64), testutil.DC(-0.25, 64)}, testRate)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.InDelta(t, 0.5, reports[0].Peak, 1e-9)
	assert.InDelta(t, -0.25, reports[1].DC, 1e-9)
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{{1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {8192, 8192}}
	for _, tc := range tests {
		assert.Equal(t, tc.want, nextPowerOf2(tc.in), "n=%d", tc.in)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	x := testutil.DeterministicNoise(1, 0.5, 48000)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_, _ = Analyze(x, testRate, WithFundamental(1000))
	}
}
