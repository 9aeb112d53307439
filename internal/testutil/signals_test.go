package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorsAreDeterministic(t *testing.T) {
	assert.Equal(t, DeterministicSine(440, 44100, 0.5, 100), DeterministicSine(440, 44100, 0.5, 100))
	assert.Equal(t, DeterministicNoise(42, 1, 64), DeterministicNoise(42, 1, 64))
	assert.NotEqual(t, DeterministicNoise(1, 1, 16), DeterministicNoise(2, 1, 16))
}

func TestDeterministicSineShape(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.8, 48)
	require.Len(t, s, 48)
	assert.Zero(t, s[0])
	assert.InDelta(t, 0.8, float64(s[12]), 1e-6)
	RequireBounded(t, s, 0.8)
}

func TestDeterministicNoiseAmplitude(t *testing.T) {
	RequireBounded(t, DeterministicNoise(7, 0.25, 1000), 0.25)
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name string
		got  []float32
		want []float32
	}{
		{"impulse", Impulse(5, 3), []float32{0, 0, 0, 1, 0}},
		{"impulse out of range", Impulse(3, 10), []float32{0, 0, 0}},
		{"dc", DC(0.5, 3), []float32{0.5, 0.5, 0.5}},
		{"ones", Ones(2), []float32{1, 1}},
		{"ramp", Ramp(-10, 10, 5), []float32{-10, -5, 0, 5, 10}},
		{"single ramp", Ramp(3, 7, 1), []float32{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
