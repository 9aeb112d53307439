// Package playback streams a generated or loaded signal through the chaos
// processor to the default audio device.
//
// Stream is the device-independent part: an io.Reader that renders blocks
// on demand and encodes them as interleaved little-endian float32. Player
// hands a Stream to oto. Builds with the headless tag get a Player that
// always reports ErrUnavailable.
package playback
