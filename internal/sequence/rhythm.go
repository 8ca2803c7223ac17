package sequence

import "math"

// RhythmPattern selects how the speed multiplier varies across a sequence.
type RhythmPattern string

const (
	// RhythmUniform plays every item at the base speed.
	RhythmUniform RhythmPattern = "uniform"
	// RhythmAccelerating speeds up toward the end of the sequence.
	RhythmAccelerating RhythmPattern = "accelerating"
	// RhythmDecelerating slows down toward the end of the sequence.
	RhythmDecelerating RhythmPattern = "decelerating"
	// RhythmOscillating swells in the middle and relaxes at both ends.
	RhythmOscillating RhythmPattern = "oscillating"
)

// Per-item rhythm speeds are clamped to a narrower band than playback
// parameters allow: extreme speed swings inside one sequence are visually
// jarring.
const (
	MinRhythmSpeed = 0.5
	MaxRhythmSpeed = 3.0
)

// RhythmConfig is a tempo curve applied across a whole sequence.
type RhythmConfig struct {
	Pattern   RhythmPattern `json:"pattern"`
	BaseSpeed float64       `json:"base_speed"`
	// Variation is the speed swing added on top of BaseSpeed by the
	// non-uniform patterns.
	Variation float64 `json:"variation"`
}

// ApplyRhythm returns a new sequence with each item's speed recomputed
// from its normalized position under the configured curve, and all start
// times re-derived left to right. The input sequence is not modified.
func ApplyRhythm(seq []Item, cfg RhythmConfig) []Item {
	out := make([]Item, len(seq))
	copy(out, seq)

	n := len(out)
	var start float64
	for i := range out {
		progress := 0.0
		if n > 1 {
			progress = float64(i) / float64(n-1)
		}

		speed := cfg.BaseSpeed
		switch cfg.Pattern {
		case RhythmAccelerating:
			speed = cfg.BaseSpeed + progress*cfg.Variation
		case RhythmDecelerating:
			speed = cfg.BaseSpeed + (1-progress)*cfg.Variation
		case RhythmOscillating:
			speed = cfg.BaseSpeed + math.Sin(progress*math.Pi)*cfg.Variation
		}
		speed = clampRhythmSpeed(speed)

		out[i].Speed = speed
		out[i].Duration = out[i].Action.Duration / speed
		out[i].StartTime = start
		start += out[i].Duration
	}
	return out
}

func clampRhythmSpeed(speed float64) float64 {
	if speed < MinRhythmSpeed {
		return MinRhythmSpeed
	}
	if speed > MaxRhythmSpeed {
		return MaxRhythmSpeed
	}
	return speed
}
