package playback

import "errors"

// ErrUnavailable is returned when no audio device can be opened.
var ErrUnavailable = errors.New("playback: audio output unavailable")
