package buffer

import (
	"errors"
	"fmt"
)

// ErrRaggedChannels is returned when channel slices differ in length.
var ErrRaggedChannels = errors.New("buffer channels differ in length")

// Buffer holds planar multi-channel float32 audio. Every channel has the
// same number of frames; a frame is one sample per channel at the same index.
type Buffer struct {
	channels [][]float32
	frames   int
}

// New returns a zero-filled Buffer with the given channel and frame counts.
func New(channels, frames int) *Buffer {
	if channels < 0 {
		channels = 0
	}

	if frames < 0 {
		frames = 0
	}

	b := &Buffer{channels: make([][]float32, channels), frames: frames}
	for ch := range b.channels {
		b.channels[ch] = make([]float32, frames)
	}

	return b
}

// FromChannels wraps existing channel slices without copying.
// Mutations through the Buffer are visible in the slices and vice versa.
func FromChannels(channels [][]float32) (*Buffer, error) {
	frames := 0
	if len(channels) > 0 {
		frames = len(channels[0])
	}

	for ch, data := range channels {
		if len(data) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d", ErrRaggedChannels, ch, len(data), frames)
		}
	}

	return &Buffer{channels: channels, frames: frames}, nil
}

// Channels returns the number of channels.
func (b *Buffer) Channels() int { return len(b.channels) }

// Frames returns the number of frames per channel.
func (b *Buffer) Frames() int { return b.frames }

// Channel returns the samples of channel ch.
func (b *Buffer) Channel(ch int) []float32 { return b.channels[ch] }

// Data returns the underlying channel slices.
func (b *Buffer) Data() [][]float32 { return b.channels }

// Resize sets the channel and frame counts, reusing capacity when possible.
// Newly exposed samples are zeroed.
func (b *Buffer) Resize(channels, frames int) {
	if channels < 0 {
		channels = 0
	}

	if frames < 0 {
		frames = 0
	}

	if cap(b.channels) < channels {
		grown := make([][]float32, channels)
		copy(grown, b.channels)
		b.channels = grown
	}

	kept := len(b.channels)
	b.channels = b.channels[:channels]

	// Channels shrunk away earlier keep their backing array but not their
	// samples.
	for ch := kept; ch < channels; ch++ {
		b.channels[ch] = b.channels[ch][:0]
	}

	for ch, data := range b.channels {
		oldLen := len(data)
		if cap(data) < frames {
			s := make([]float32, frames)
			copy(s, data)
			data = s
		}

		data = data[:frames]
		for i := oldLen; i < frames; i++ {
			data[i] = 0
		}

		b.channels[ch] = data
	}

	b.frames = frames
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for _, data := range b.channels {
		for i := range data {
			data[i] = 0
		}
	}
}

// Frame gathers the samples of frame i into dst, one per channel.
func (b *Buffer) Frame(i int, dst []float32) []float32 {
	dst = dst[:0]
	for _, data := range b.channels {
		dst = append(dst, data[i])
	}

	return dst
}

// SetFrame scatters src into frame i. Extra values in src are ignored.
func (b *Buffer) SetFrame(i int, src []float32) {
	for ch, data := range b.channels {
		if ch >= len(src) {
			return
		}

		data[i] = src[ch]
	}
}

// ProcessFrames gathers each frame into scratch, calls fn with it and
// scatters the result back. scratch must hold at least Channels() values.
func (b *Buffer) ProcessFrames(scratch []float32, fn func(i int, frame []float32)) {
	for i := range b.frames {
		frame := b.Frame(i, scratch)
		fn(i, frame)
		b.SetFrame(i, frame)
	}
}

// Interleave writes the buffer as interleaved frames into dst and returns it,
// growing dst when its capacity is too small.
func (b *Buffer) Interleave(dst []float32) []float32 {
	n := len(b.channels) * b.frames
	if cap(dst) < n {
		dst = make([]float32, n)
	}

	dst = dst[:n]
	stride := len(b.channels)

	for ch, data := range b.channels {
		for i, v := range data {
			dst[i*stride+ch] = v
		}
	}

	return dst
}

// Deinterleave loads interleaved samples into the buffer, resizing it to
// len(src)/channels frames.
func (b *Buffer) Deinterleave(src []float32, channels int) error {
	if channels <= 0 {
		return fmt.Errorf("buffer channel count must be > 0: %d", channels)
	}

	if len(src)%channels != 0 {
		return fmt.Errorf("interleaved length %d is not a multiple of %d channels", len(src), channels)
	}

	b.Resize(channels, len(src)/channels)

	for ch, data := range b.channels {
		for i := range data {
			data[i] = src[i*channels+ch]
		}
	}

	return nil
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	out := New(len(b.channels), b.frames)
	for ch, data := range b.channels {
		copy(out.channels[ch], data)
	}

	return out
}
