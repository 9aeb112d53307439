//go:build !headless

package playback

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player plays a Stream on the default output device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// NewPlayer opens the output device. oto allows one context per process.
func NewPlayer(sampleRate int, s *Stream) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: s.Channels(),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	<-ready

	return &Player{ctx: ctx, player: ctx.NewPlayer(s)}, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil && !p.player.IsPlaying() {
		p.player.Play()
	}
}

// IsPlaying reports whether audio is running.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.player != nil && p.player.IsPlaying()
}

// Err returns the error that stopped playback, if any.
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}

	return p.player.Err()
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}

	err := p.player.Close()
	p.player = nil

	return err
}
