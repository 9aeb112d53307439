package playback

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
)

// Source fills the next block of input audio. Implementations write every
// channel of b and keep their position between calls.
type Source interface {
	Fill(b *buffer.Buffer)
}

// Tone is a sine source writing the same signal to every channel.
type Tone struct {
	freq       float64
	amp        float32
	sampleRate float64
	phase      float64
}

// NewTone returns a sine at freq Hz with peak amplitude amp.
func NewTone(freq float64, amp float32, sampleRate float64) (*Tone, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("tone sample rate must be > 0: %f", sampleRate)
	}

	if freq <= 0 || freq >= sampleRate/2 {
		return nil, fmt.Errorf("tone frequency must be in (0, %f): %f", sampleRate/2, freq)
	}

	return &Tone{freq: freq, amp: amp, sampleRate: sampleRate}, nil
}

// Fill implements Source.
func (t *Tone) Fill(b *buffer.Buffer) {
	inc := 2 * math.Pi * t.freq / t.sampleRate

	for i := range b.Frames() {
		v := t.amp * float32(math.Sin(t.phase))
		for ch := range b.Channels() {
			b.Channel(ch)[i] = v
		}

		t.phase += inc
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
}

// Loop replays a clip endlessly. Output channels beyond the clip's reuse its
// last channel.
type Loop struct {
	clip *buffer.Buffer
	pos  int
}

// NewLoop returns a looping source over clip.
func NewLoop(clip *buffer.Buffer) (*Loop, error) {
	if clip == nil || clip.Channels() == 0 || clip.Frames() == 0 {
		return nil, errors.New("loop clip must not be empty")
	}

	return &Loop{clip: clip}, nil
}

// Fill implements Source.
func (l *Loop) Fill(b *buffer.Buffer) {
	last := l.clip.Channels() - 1

	for i := range b.Frames() {
		for ch := range b.Channels() {
			src := min(ch, last)
			b.Channel(ch)[i] = l.clip.Channel(src)[l.pos]
		}

		l.pos++
		if l.pos == l.clip.Frames() {
			l.pos = 0
		}
	}
}
