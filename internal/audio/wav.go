// Package audio reads and writes PCM WAV files as planar float32 buffers.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned when the input is not a PCM WAV stream.
var ErrInvalidWAV = errors.New("audio: invalid wav file")

// DefaultBitDepth is the bit depth used when a Clip does not specify one.
const DefaultBitDepth = 16

const wavFormatPCM = 1

// Clip is decoded audio with its sample rate.
type Clip struct {
	SampleRate int
	BitDepth   int
	Buffer     *buffer.Buffer
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}

	return float64(c.Buffer.Frames()) / float64(c.SampleRate)
}

// ReadWAV decodes a PCM WAV stream into a planar float32 buffer scaled to
// [-1, 1).
func ReadWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	err := dec.FwdToPCM()
	if err != nil {
		return nil, fmt.Errorf("audio: seek to pcm: %w", err)
	}

	format := dec.Format()
	bitDepth := int(dec.SampleBitDepth())

	if bitDepth <= 0 || format == nil || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrInvalidWAV, bitDepth)
	}

	bytesPerSample := (bitDepth-1)/8 + 1
	samples := int(dec.PCMLen()) / bytesPerSample
	samples -= samples % format.NumChannels

	ib := &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, samples),
		SourceBitDepth: bitDepth,
	}

	n, err := dec.PCMBuffer(ib)
	if err != nil {
		return nil, fmt.Errorf("audio: decode pcm: %w", err)
	}

	n -= n % format.NumChannels
	scale := 1 / math.Pow(2, float64(bitDepth-1))
	offset := pcmOffset(bitDepth)

	interleaved := make([]float32, n)
	for i, v := range ib.Data[:n] {
		interleaved[i] = float32(float64(v-offset) * scale)
	}

	buf := buffer.New(format.NumChannels, 0)

	err = buf.Deinterleave(interleaved, format.NumChannels)
	if err != nil {
		return nil, err
	}

	return &Clip{SampleRate: format.SampleRate, BitDepth: bitDepth, Buffer: buf}, nil
}

// ReadWAVFile opens and decodes path.
func ReadWAVFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := ReadWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return clip, nil
}

// WriteWAV encodes the clip as PCM. Samples outside [-1, 1] are clipped.
// Supported bit depths are 8, 16, 24 and 32.
func WriteWAV(w io.WriteSeeker, c *Clip, opts ...WriteOption) error {
	var cfg writeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	bitDepth := c.BitDepth
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("audio: unsupported bit depth: %d", bitDepth)
	}

	if c.SampleRate <= 0 {
		return fmt.Errorf("audio: sample rate must be > 0: %d", c.SampleRate)
	}

	channels := c.Buffer.Channels()
	if channels == 0 {
		return errors.New("audio: clip has no channels")
	}

	interleaved := c.Buffer.Interleave(nil)
	q := newQuantizer(bitDepth, cfg)

	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: c.SampleRate},
		Data:           make([]int, len(interleaved)),
		SourceBitDepth: bitDepth,
	}

	for i, v := range interleaved {
		ib.Data[i] = q.quantize(float64(v))
	}

	enc := wav.NewEncoder(w, c.SampleRate, bitDepth, channels, wavFormatPCM)

	err := enc.Write(ib)
	if err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("audio: finalize: %w", err)
	}

	return nil
}

// WriteWAVFile encodes the clip to path, replacing any existing file.
func WriteWAVFile(path string, c *Clip, opts ...WriteOption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = WriteWAV(f, c, opts...)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
