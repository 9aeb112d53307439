package analysis

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultFFTSize      = 8192
	maxFFTSize          = 1 << 16
	defaultMaxHarmonics = 10
	// Hann main lobe is four bins wide; two bins either side captures it.
	captureBins = 2
)

// Report summarizes one channel of audio.
type Report struct {
	Samples    int
	SampleRate float64
	NonFinite  int

	Peak    float64
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	CrestDB float64
	DC      float64

	// Centroid is the power-weighted mean frequency in Hz.
	Centroid float64

	// Fundamental, THD and THDDB are set only when a fundamental was given.
	Fundamental float64
	THD         float64
	THDDB       float64
}

// Option mutates analysis settings.
type Option func(*config)

type config struct {
	fundamental  float64
	fftSize      int
	maxHarmonics int
}

// WithFundamental enables harmonic distortion measurement around hz.
func WithFundamental(hz float64) Option {
	return func(cfg *config) {
		if hz > 0 && core.IsFinite(hz) {
			cfg.fundamental = hz
		}
	}
}

// WithFFTSize sets the FFT length. Values that are not a power of two are
// rounded up; the result is capped at 65536.
func WithFFTSize(n int) Option {
	return func(cfg *config) {
		if n > 1 {
			cfg.fftSize = min(nextPowerOf2(n), maxFFTSize)
		}
	}
}

// WithMaxHarmonics sets the highest harmonic included in THD.
func WithMaxHarmonics(n int) Option {
	return func(cfg *config) {
		if n >= 2 {
			cfg.maxHarmonics = n
		}
	}
}

// Analyze measures samples recorded at sampleRate. Non-finite samples are
// counted and treated as silence for every other metric.
func Analyze(samples []float32, sampleRate float64, opts ...Option) (Report, error) {
	err := core.ValidateSampleRate("analysis", sampleRate)
	if err != nil {
		return Report{}, err
	}

	cfg := config{fftSize: defaultFFTSize, maxHarmonics: defaultMaxHarmonics}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	r := Report{
		Samples:     len(samples),
		SampleRate:  sampleRate,
		Fundamental: cfg.fundamental,
		PeakDB:      math.Inf(-1),
		RMSDB:       math.Inf(-1),
	}

	if len(samples) == 0 {
		return r, nil
	}

	x := core.Widen(nil, samples)

	for i, v := range x {
		if !core.IsFinite(v) {
			r.NonFinite++
			x[i] = 0
		}
	}

	n := float64(len(x))
	r.Peak = vecmath.MaxAbs(x)
	r.RMS = math.Sqrt(vecmath.DotProduct(x, x) / n)
	r.DC = vecmath.Sum(x) / n
	r.PeakDB = core.LinearToDB(r.Peak)
	r.RMSDB = core.LinearToDB(r.RMS)

	if r.RMS > 0 {
		r.CrestDB = r.PeakDB - r.RMSDB
	}

	power, err := powerSpectrum(x, cfg.fftSize)
	if err != nil {
		return Report{}, err
	}

	binHz := sampleRate / float64(2*(len(power)-1))
	r.Centroid = centroid(power, binHz)

	if cfg.fundamental > 0 {
		r.THD = thd(power, binHz, cfg.fundamental, cfg.maxHarmonics)
		r.THDDB = core.LinearToDB(r.THD)
	}

	return r, nil
}

// AnalyzeChannels runs Analyze on every channel.
func AnalyzeChannels(channels [][]float32, sampleRate float64, opts ...Option) ([]Report, error) {
	out := make([]Report, len(channels))

	for ch, data := range channels {
		r, err := Analyze(data, sampleRate, opts...)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}

		out[ch] = r
	}

	return out, nil
}

// powerSpectrum returns |X[k]|^2 for k in [0, N/2] of a Hann-windowed FFT of
// the first fftSize samples of x, zero padded when x is shorter.
func powerSpectrum(x []float64, fftSize int) ([]float64, error) {
	size := min(fftSize, nextPowerOf2(len(x)))
	size = max(size, 2)

	frame := make([]float64, size)
	copy(frame, x)

	used := min(len(x), size)
	vecmath.MulBlockInPlace(frame[:used], hann(used))

	in := make([]complex128, size)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	out := make([]complex128, size)

	err = plan.Forward(out, in)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	return power, nil
}

func centroid(power []float64, binHz float64) float64 {
	freqs := make([]float64, len(power))
	for k := range freqs {
		freqs[k] = float64(k) * binHz
	}

	total := vecmath.Sum(power[1:])
	if total <= 0 {
		return 0
	}

	return vecmath.DotProduct(freqs[1:], power[1:]) / total
}

// thd returns sqrt(sum of harmonic power / fundamental power). Harmonics
// beyond Nyquist are skipped.
func thd(power []float64, binHz, fundamental float64, maxHarmonics int) float64 {
	maxBin := len(power) - 1

	k0 := int(math.Round(fundamental / binHz))
	if k0 < 1 || k0 > maxBin {
		return 0
	}

	p1 := bandPower(power, k0)
	if p1 <= 0 {
		return 0
	}

	var harmonics float64

	for h := 2; h <= maxHarmonics; h++ {
		k := int(math.Round(float64(h) * fundamental / binHz))
		if k > maxBin {
			break
		}

		harmonics += bandPower(power, k)
	}

	return math.Sqrt(harmonics / p1)
}

func bandPower(power []float64, center int) float64 {
	lo := max(center-captureBins, 1)
	hi := min(center+captureBins, len(power)-1)

	return vecmath.Sum(power[lo : hi+1])
}

// hann returns a symmetric Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}

	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}

	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
