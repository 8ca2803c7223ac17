// Package sequence turns ordered lists of sign actions into time-stamped
// playback sequences, and provides rhythm re-timing and redundancy
// optimization over them.
package sequence

import "github.com/ayusman/mudra/internal/pose"

// Item is one entry of a timed sequence: an action bound to resolved
// parameters, with its effective speed, scaled duration and start time
// relative to the sequence origin. Items are derived values; they are
// recomputed whenever rhythm or speed changes and never mutated on their
// own.
type Item struct {
	Action *pose.SignAction `json:"action"`
	Params pose.Params      `json:"params"`
	// Speed is the effective speed multiplier for this item. It starts as
	// the resolved parameter speed and may be rewritten by rhythm.
	Speed float64 `json:"speed"`
	// Duration is the action's nominal duration divided by Speed.
	Duration float64 `json:"duration"`
	// StartTime is the offset in seconds from the sequence origin.
	StartTime float64 `json:"start_time"`
}

// New builds a timed sequence from an ordered action list, accumulating
// each start time as the running sum of prior durations. A nil or empty
// action list yields an empty sequence.
func New(actions []*pose.SignAction, params pose.Params) []Item {
	params = params.Clamped()

	items := make([]Item, 0, len(actions))
	var start float64
	for _, a := range actions {
		if a == nil {
			continue
		}
		d := a.Duration / params.Speed
		items = append(items, Item{
			Action:    a,
			Params:    params,
			Speed:     params.Speed,
			Duration:  d,
			StartTime: start,
		})
		start += d
	}
	return items
}

// NewParallel builds one independent sequence per track, all sharing the
// same origin. Two-handed signs are modeled as two tracks on one clock.
func NewParallel(tracks [][]*pose.SignAction, params pose.Params) [][]Item {
	out := make([][]Item, len(tracks))
	for i, actions := range tracks {
		out[i] = New(actions, params)
	}
	return out
}

// TotalDuration returns the authoritative length of a sequence: the last
// item's start time plus its duration, or 0 for an empty sequence. The
// length is never recomputed by summing durations, which would accumulate
// float drift.
func TotalDuration(seq []Item) float64 {
	if len(seq) == 0 {
		return 0
	}
	last := seq[len(seq)-1]
	return last.StartTime + last.Duration
}

// Validate reports whether every item of a sequence is playable: a valid
// action and in-range parameters. It reports rather than failing so
// callers can batch-check a sequence before enqueueing it.
func Validate(seq []Item) bool {
	for _, item := range seq {
		if !item.Action.Valid() {
			return false
		}
		if !item.Params.Valid() {
			return false
		}
		if item.Duration <= 0 {
			return false
		}
	}
	return true
}
