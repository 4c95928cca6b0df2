package tuner_test

import (
	"math"
	"testing"

	"mateline.dev/x/chess/pkg/search/eval/classical/tuner"
)

func TestSigmoidBounds(t *testing.T) {
	tests := []struct {
		k, score float64
	}{
		{1.0, 0},
		{1.0, 100},
		{1.0, -100},
		{0.5, 4000},
		{0.5, -4000},
	}

	for _, test := range tests {
		s := tuner.Sigmoid(test.k, test.score)
		if s <= 0 || s >= 1 {
			t.Errorf("Sigmoid(%v, %v) = %v, want a value strictly between 0 and 1", test.k, test.score, s)
		}
	}

	if s := tuner.Sigmoid(1.0, 0); math.Abs(s-0.5) > 1e-9 {
		t.Errorf("Sigmoid(k, 0) = %v, want 0.5", s)
	}
}

// TestSigmoidSaturatesAtExtremes checks that the sigmoid is within
// 1e-12 of its asymptotes for very large magnitude scores, for any K.
func TestSigmoidSaturatesAtExtremes(t *testing.T) {
	for _, k := range []float64{0.25, 1.0, 2.5} {
		if s := tuner.Sigmoid(k, 1e9); math.Abs(s-1.0) > 1e-12 {
			t.Errorf("Sigmoid(%v, 1e9) = %v, want within 1e-12 of 1.0", k, s)
		}
		if s := tuner.Sigmoid(k, -1e9); math.Abs(s-0.0) > 1e-12 {
			t.Errorf("Sigmoid(%v, -1e9) = %v, want within 1e-12 of 0.0", k, s)
		}
	}
}

func TestSigmoidMonotonicInScore(t *testing.T) {
	k := 1.0
	prev := tuner.Sigmoid(k, -1000)
	for score := -900.0; score <= 1000; score += 100 {
		cur := tuner.Sigmoid(k, score)
		if cur <= prev {
			t.Fatalf("Sigmoid(%v, %v) = %v is not greater than Sigmoid at the previous score %v", k, score, cur, prev)
		}
		prev = cur
	}
}

func TestSigmoidSymmetric(t *testing.T) {
	k := 1.3
	for _, score := range []float64{0, 50, 400, 1200} {
		a := tuner.Sigmoid(k, score)
		b := tuner.Sigmoid(k, -score)
		if math.Abs((a+b)-1) > 1e-9 {
			t.Errorf("Sigmoid(%v, %v) + Sigmoid(%v, %v) = %v, want 1", k, score, k, -score, a+b)
		}
	}
}
