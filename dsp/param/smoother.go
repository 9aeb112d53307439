package param

import "math"

// SmoothingStyle selects how a Smoother ramps towards a new target.
type SmoothingStyle int

const (
	// SmoothingNone jumps to the target immediately.
	SmoothingNone SmoothingStyle = iota
	// SmoothingLinear ramps with a constant additive step.
	SmoothingLinear
	// SmoothingLogarithmic ramps with a constant multiplicative step. It is
	// meant for strictly positive values such as linear gain; ramps that
	// touch zero or negative values fall back to linear.
	SmoothingLogarithmic
)

func (s SmoothingStyle) String() string {
	switch s {
	case SmoothingNone:
		return "none"
	case SmoothingLinear:
		return "linear"
	case SmoothingLogarithmic:
		return "logarithmic"
	default:
		return "unknown"
	}
}

// Smoother ramps from its current value to a target over a fixed time.
// A ramp always lands exactly on the target.
type Smoother struct {
	style  SmoothingStyle
	timeMs float64
	steps  int

	current   float64
	target    float64
	step      float64
	logStep   bool
	stepsLeft int
}

// NewSmoother creates a smoother that reaches a new target in timeMs at
// sampleRate. The initial value is 0.
func NewSmoother(style SmoothingStyle, timeMs, sampleRate float64) *Smoother {
	s := &Smoother{style: style, timeMs: max(0, timeMs)}
	s.SetSampleRate(sampleRate)

	return s
}

// SetSampleRate recomputes the ramp length. A ramp in progress restarts
// from the current value.
func (s *Smoother) SetSampleRate(sampleRate float64) {
	steps := 0
	if sampleRate > 0 && s.style != SmoothingNone {
		steps = int(math.Round(sampleRate * s.timeMs / 1000))
	}

	s.steps = steps

	if s.stepsLeft > 0 {
		s.SetTarget(float32(s.target))
	}
}

// Steps returns the ramp length in samples.
func (s *Smoother) Steps() int { return s.steps }

// Style returns the smoothing style.
func (s *Smoother) Style() SmoothingStyle { return s.style }

// SetTarget starts a ramp from the current value to target.
func (s *Smoother) SetTarget(target float32) {
	t := float64(target)
	s.target = t

	if s.steps <= 0 || t == s.current {
		s.current = t
		s.stepsLeft = 0

		return
	}

	n := float64(s.steps)
	s.stepsLeft = s.steps

	if s.style == SmoothingLogarithmic && s.current > 0 && t > 0 {
		s.logStep = true
		s.step = math.Exp((math.Log(t) - math.Log(s.current)) / n)

		return
	}

	s.logStep = false
	s.step = (t - s.current) / n
}

// Target returns the value the smoother is heading to.
func (s *Smoother) Target() float32 { return float32(s.target) }

// Reset jumps to value and stops any ramp.
func (s *Smoother) Reset(value float32) {
	s.current = float64(value)
	s.target = s.current
	s.stepsLeft = 0
}

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool { return s.stepsLeft > 0 }

// Current returns the last produced value without advancing.
func (s *Smoother) Current() float32 { return float32(s.current) }

// Next advances one sample and returns the new value.
func (s *Smoother) Next() float32 {
	if s.stepsLeft == 0 {
		return float32(s.current)
	}

	s.stepsLeft--

	switch {
	case s.stepsLeft == 0:
		s.current = s.target
	case s.logStep:
		s.current *= s.step
	default:
		s.current += s.step
	}

	return float32(s.current)
}
