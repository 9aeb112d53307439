package fastmath

import (
	"math"
	"testing"
)

func TestTanhBoundedAndOdd(t *testing.T) {
	for _, x := range []float32{-1e6, -50, -9.5, -3, -0.5, 0, 0.5, 3, 9.5, 50, 1e6} {
		y := Tanh(x)
		if y < -1 || y > 1 || math.IsNaN(float64(y)) {
			t.Fatalf("Tanh(%v) = %v, want value in [-1, 1]", x, y)
		}

		if Tanh(-x) != -y {
			t.Fatalf("Tanh is not odd at %v: %v vs %v", x, Tanh(-x), y)
		}
	}
}

func TestTanhAccuracy(t *testing.T) {
	for x := float32(-6); x <= 6; x += 0.01 {
		want := math.Tanh(float64(x))
		if diff := math.Abs(float64(Tanh(x)) - want); diff > 1e-2 {
			t.Fatalf("Tanh(%v) error %v exceeds 1e-2", x, diff)
		}
	}
}

func TestTanhZero(t *testing.T) {
	if Tanh(0) != 0 {
		t.Fatalf("Tanh(0) = %v, want 0", Tanh(0))
	}
}

func TestTrig(t *testing.T) {
	if Sin(0) != 0 || Cos(0) != 1 {
		t.Fatalf("Sin(0)=%v Cos(0)=%v", Sin(0), Cos(0))
	}

	if Pow(2, 3) != 8 {
		t.Fatalf("Pow(2, 3) = %v", Pow(2, 3))
	}
}
