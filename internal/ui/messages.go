package ui

import "time"

// TickMsg triggers a meter refresh.
type TickMsg time.Time

// PlaybackErrMsg reports that audio output stopped with an error.
type PlaybackErrMsg struct {
	Err error
}
