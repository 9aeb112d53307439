//go:build headless

package playback

// Player is unavailable in headless builds.
type Player struct{}

// NewPlayer always fails with ErrUnavailable.
func NewPlayer(int, *Stream) (*Player, error) { return nil, ErrUnavailable }

// Start does nothing.
func (p *Player) Start() {}

// IsPlaying always reports false.
func (p *Player) IsPlaying() bool { return false }

// Err always returns nil.
func (p *Player) Err() error { return nil }

// Close does nothing.
func (p *Player) Close() error { return nil }
