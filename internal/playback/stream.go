package playback

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
	"github.com/cwbudde/algo-chaosfx/plugin"
)

const bytesPerSample = 4

// Stream renders src through proc block by block and serves the result as
// interleaved float32 little-endian bytes.
type Stream struct {
	proc *plugin.Processor
	src  Source

	block       *buffer.Buffer
	interleaved []float32
	encoded     []byte
	pending     []byte
}

// NewStream prepares a stream of blocks of blockFrames frames. proc must be
// prepared for at least channels channels.
func NewStream(proc *plugin.Processor, src Source, channels, blockFrames int) (*Stream, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("stream channel count must be > 0: %d", channels)
	}

	if blockFrames <= 0 {
		return nil, fmt.Errorf("stream block size must be > 0: %d", blockFrames)
	}

	return &Stream{
		proc:        proc,
		src:         src,
		block:       buffer.New(channels, blockFrames),
		interleaved: make([]float32, channels*blockFrames),
		encoded:     make([]byte, channels*blockFrames*bytesPerSample),
	}, nil
}

// Channels returns the stream's channel count.
func (s *Stream) Channels() int { return s.block.Channels() }

// Read implements io.Reader. It never returns io.EOF.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0

	for n < len(p) {
		if len(s.pending) == 0 {
			err := s.render()
			if err != nil {
				return n, err
			}
		}

		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	return n, nil
}

func (s *Stream) render() error {
	s.src.Fill(s.block)

	err := s.proc.Process(s.block)
	if err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	s.interleaved = s.block.Interleave(s.interleaved)
	for i, v := range s.interleaved {
		binary.LittleEndian.PutUint32(s.encoded[i*bytesPerSample:], math.Float32bits(v))
	}

	s.pending = s.encoded

	return nil
}
