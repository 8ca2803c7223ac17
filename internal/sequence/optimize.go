package sequence

import (
	"math"

	"github.com/ayusman/mudra/internal/pose"
)

// DefaultSimilarityThreshold is the similarity above which two adjacent
// actions are considered visually redundant.
const DefaultSimilarityThreshold = 0.9

// maxFingerDelta is the largest plausible sum of absolute joint-angle
// differences for one finger: three joints at 90 degrees each.
const maxFingerDelta = 270.0

// Optimize collapses adjacent near-duplicate actions. It walks the
// sequence once, scoring each item against the last retained item (not
// the last input item). When the score exceeds the threshold the new item
// replaces the retained one only if its duration is longer, keeping the
// more significant pose; otherwise it is dropped. Greedy and
// order-dependent, not globally optimal. Start times are re-derived for
// the surviving items.
func Optimize(seq []Item, threshold float64) []Item {
	if len(seq) == 0 {
		return []Item{}
	}

	kept := make([]Item, 0, len(seq))
	kept = append(kept, seq[0])

	for _, item := range seq[1:] {
		last := &kept[len(kept)-1]
		if Similarity(last.Action, item.Action) > threshold {
			if item.Duration > last.Duration {
				*last = item
			}
			continue
		}
		kept = append(kept, item)
	}

	var start float64
	for i := range kept {
		kept[i].StartTime = start
		start += kept[i].Duration
	}
	return kept
}

// Similarity scores how visually alike two actions are, in [0,1].
// Finger shape contributes half the score: per matching finger,
// 1 - sum(|angle differences|)/270, averaged over the five fingers.
// Palm orientation contributes the other half: 1 - angle/pi between the
// two palm rotations. Self-similarity is always 1.
func Similarity(a, b *pose.SignAction) float64 {
	if a == nil || b == nil {
		return 0
	}

	var fingerScore float64
	for i := 0; i < pose.NumFingers; i++ {
		ja := a.Hand.Fingers[i].Joints
		jb := b.Hand.Fingers[i].Joints
		delta := math.Abs(ja.Base-jb.Base) +
			math.Abs(ja.Middle-jb.Middle) +
			math.Abs(ja.Distal-jb.Distal)
		fingerScore += (1 - delta/maxFingerDelta) / pose.NumFingers
	}

	rotScore := 1 - a.Hand.Palm.Rotation.AngleTo(b.Hand.Palm.Rotation)/math.Pi

	score := 0.5*fingerScore + 0.5*rotScore
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
