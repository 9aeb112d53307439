package buffer

import "sync"

// Pool recycles block buffers of one channel count for render loops that
// process a long signal in fixed-size pieces.
type Pool struct {
	pool      sync.Pool
	channels  int
	maxFrames int
}

// NewPool returns a Pool of channels-wide buffers preallocated for up to
// maxFrames frames.
func NewPool(channels, maxFrames int) *Pool {
	p := &Pool{channels: max(channels, 0), maxFrames: max(maxFrames, 0)}
	p.pool.New = func() any {
		return New(p.channels, p.maxFrames)
	}

	return p
}

// Channels returns the channel count of pooled buffers.
func (p *Pool) Channels() int { return p.channels }

// Get returns a zeroed buffer of frames frames. Larger requests than the
// preallocated size grow the buffer.
func (p *Pool) Get(frames int) *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	b.Resize(p.channels, frames)
	b.Zero()

	return b
}

// Put returns b to the pool. Buffers of another channel count are dropped.
// The caller must not use b afterwards.
func (p *Pool) Put(b *Buffer) {
	if b == nil || b.Channels() != p.channels {
		return
	}

	p.pool.Put(b)
}
