package sequence

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/pose"
)

func actionWithHand(id string, duration float64, hand pose.HandPose) *pose.SignAction {
	return &pose.SignAction{ID: id, Name: id, Hand: hand, Duration: duration}
}

func TestSimilarity_SelfIsMaximal(t *testing.T) {
	hands := []pose.HandPose{
		pose.NeutralHand(),
		pose.FistHand(),
		pose.ThumbsUpHand(),
		pose.PinchHand(),
	}
	for i, h := range hands {
		a := actionWithHand("a", 1.0, h)
		if got := Similarity(a, a); math.Abs(got-1) > 1e-9 {
			t.Errorf("hand %d: self-similarity = %f, want 1", i, got)
		}
	}
}

func TestSimilarity_DistinctPosesScoreLower(t *testing.T) {
	open := actionWithHand("open", 1.0, pose.OpenPalmHand())
	fist := actionWithHand("fist", 1.0, pose.FistHand())

	got := Similarity(open, fist)
	if got >= 0.9 {
		t.Errorf("open vs fist similarity = %f, want < 0.9", got)
	}
	if got < 0 || got > 1 {
		t.Errorf("similarity = %f, out of [0,1]", got)
	}
}

func TestSimilarity_NilIsZero(t *testing.T) {
	a := actionWithHand("a", 1.0, pose.FistHand())
	if got := Similarity(a, nil); got != 0 {
		t.Errorf("similarity with nil = %f, want 0", got)
	}
}

func TestOptimize_LongerDurationWins(t *testing.T) {
	// Identical poses, so similarity is 1.0 > threshold. The later item
	// has the longer duration and must replace the retained one.
	hand := pose.FistHand()
	seq := New([]*pose.SignAction{
		actionWithHand("a", 1.0, hand),
		actionWithHand("b", 2.0, hand),
	}, pose.DefaultParams())

	out := Optimize(seq, DefaultSimilarityThreshold)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Action.ID != "b" {
		t.Errorf("retained = %q, want %q", out[0].Action.ID, "b")
	}
}

func TestOptimize_ShorterDuplicateDropped(t *testing.T) {
	hand := pose.FistHand()
	seq := New([]*pose.SignAction{
		actionWithHand("a", 2.0, hand),
		actionWithHand("b", 1.0, hand),
	}, pose.DefaultParams())

	out := Optimize(seq, DefaultSimilarityThreshold)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Action.ID != "a" {
		t.Errorf("retained = %q, want %q", out[0].Action.ID, "a")
	}
}

func TestOptimize_DistinctPosesKept(t *testing.T) {
	seq := New([]*pose.SignAction{
		actionWithHand("open", 1.0, pose.OpenPalmHand()),
		actionWithHand("fist", 1.0, pose.FistHand()),
		actionWithHand("thumbs-up", 1.0, pose.ThumbsUpHand()),
	}, pose.DefaultParams())

	out := Optimize(seq, DefaultSimilarityThreshold)
	if len(out) != 3 {
		t.Errorf("len = %d, want all 3 distinct poses kept", len(out))
	}
}

func TestOptimize_ComparesAgainstRetained(t *testing.T) {
	// a and b are duplicates; c is distinct. After b is folded into a,
	// c is scored against the retained a, not against b.
	hand := pose.FistHand()
	seq := New([]*pose.SignAction{
		actionWithHand("a", 1.0, hand),
		actionWithHand("b", 0.5, hand),
		actionWithHand("c", 1.0, pose.OpenPalmHand()),
	}, pose.DefaultParams())

	out := Optimize(seq, DefaultSimilarityThreshold)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Action.ID != "a" || out[1].Action.ID != "c" {
		t.Errorf("retained = [%q, %q], want [a, c]", out[0].Action.ID, out[1].Action.ID)
	}
}

func TestOptimize_RederivesStartTimes(t *testing.T) {
	hand := pose.FistHand()
	seq := New([]*pose.SignAction{
		actionWithHand("a", 1.0, hand),
		actionWithHand("b", 2.0, hand),
		actionWithHand("c", 1.0, pose.OpenPalmHand()),
	}, pose.DefaultParams())

	out := Optimize(seq, DefaultSimilarityThreshold)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].StartTime != 0 {
		t.Errorf("first start = %f, want 0", out[0].StartTime)
	}
	if out[1].StartTime != out[0].Duration {
		t.Errorf("second start = %f, want %f", out[1].StartTime, out[0].Duration)
	}
}

func TestOptimize_Empty(t *testing.T) {
	if got := Optimize(nil, DefaultSimilarityThreshold); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
