package anim

import (
	"math"
	"testing"
)

func TestEasing_Boundaries(t *testing.T) {
	easings := map[string]Easing{
		"linear":     Linear,
		"in-quad":    InQuad,
		"out-quad":   OutQuad,
		"inout-quad": InOutQuad,
	}

	for name, ease := range easings {
		if got := ease(0); math.Abs(got) > tolerance {
			t.Errorf("%s: ease(0) = %f, want 0", name, got)
		}
		if got := ease(1); math.Abs(got-1) > tolerance {
			t.Errorf("%s: ease(1) = %f, want 1", name, got)
		}
	}
}

func TestEasing_Shapes(t *testing.T) {
	// Ease-in lags the diagonal, ease-out leads it
	if InQuad(0.5) >= 0.5 {
		t.Errorf("InQuad(0.5) = %f, want < 0.5", InQuad(0.5))
	}
	if OutQuad(0.5) <= 0.5 {
		t.Errorf("OutQuad(0.5) = %f, want > 0.5", OutQuad(0.5))
	}
	// Ease-in-out crosses the diagonal at the midpoint
	if got := InOutQuad(0.5); math.Abs(got-0.5) > tolerance {
		t.Errorf("InOutQuad(0.5) = %f, want 0.5", got)
	}
}

func TestEasing_Monotonic(t *testing.T) {
	easings := []Easing{Linear, InQuad, OutQuad, InOutQuad}
	for i, ease := range easings {
		prev := ease(0)
		for step := 1; step <= 100; step++ {
			cur := ease(float64(step) / 100)
			if cur < prev {
				t.Errorf("easing %d not monotonic at t=%f", i, float64(step)/100)
				break
			}
			prev = cur
		}
	}
}

func TestEasingFor(t *testing.T) {
	cases := []struct {
		easeIn, easeOut bool
		at              float64
		want            float64
	}{
		{false, false, 0.25, 0.25},       // linear
		{true, false, 0.5, 0.25},         // in-quad
		{false, true, 0.5, 0.75},         // out-quad
		{true, true, 0.25, 2 * 0.25 * 0.25}, // in-out-quad, first half
	}

	for _, c := range cases {
		ease := EasingFor(c.easeIn, c.easeOut)
		if got := ease(c.at); math.Abs(got-c.want) > tolerance {
			t.Errorf("EasingFor(%v,%v)(%f) = %f, want %f", c.easeIn, c.easeOut, c.at, got, c.want)
		}
	}
}
