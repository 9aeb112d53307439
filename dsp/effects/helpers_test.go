package effects

import (
	"testing"

	"github.com/cwbudde/algo-chaosfx/dsp/buffer"
)

func newTestBuffer(t *testing.T, channels ...[]float32) *buffer.Buffer {
	t.Helper()

	b, err := buffer.FromChannels(channels)
	if err != nil {
		t.Fatalf("FromChannels: %v", err)
	}

	return b
}
