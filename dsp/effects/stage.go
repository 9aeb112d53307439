package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
)

// BypassThreshold is the amount at or below which the chaotic stages pass
// input through untouched and leave their state alone.
const BypassThreshold = 0.001

// referenceSampleRate is the rate the stage time constants were tuned at.
const referenceSampleRate = 44100.0

const (
	pi32  = math.Pi
	twoPi = 2 * math.Pi
)

// clampAmount maps an amount into [0, 1]; NaN maps to 0.
func clampAmount(amount float32) float32 {
	if isNaN32(amount) {
		return 0
	}

	return core.Clamp(amount, 0, 1)
}

func validateAmount(owner string, amount float32) error {
	if amount < 0 || amount > 1 || !core.IsFinite(amount) {
		return fmt.Errorf("%s amount must be in [0, 1]: %f", owner, amount)
	}

	return nil
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}

	return x
}

// counterWrap returns the number of samples in seconds at sampleRate, at least 1.
func counterWrap(sampleRate float64, seconds int) int {
	return max(1, int(sampleRate)*seconds)
}

func isNaN32(x float32) bool { return math.IsNaN(float64(x)) }
