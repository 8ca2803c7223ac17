package pose

import "math"

// Canonical finger shapes used to assemble the builtin hand poses below.
// Angle choices follow the usual authoring convention of 0-90 degrees per
// joint, with a folded finger close to fully curled.

// ExtendedFinger returns a straight finger pose.
func ExtendedFinger(f Finger) FingerPose {
	return FingerPose{Finger: f, State: StateExtended}
}

// BentFinger returns a half-curled finger pose.
func BentFinger(f Finger) FingerPose {
	return FingerPose{
		Finger: f,
		Joints: JointAngles{Base: 45, Middle: 45, Distal: 30},
		State:  StateBent,
	}
}

// FoldedFinger returns a fully curled finger pose.
func FoldedFinger(f Finger) FingerPose {
	return FingerPose{
		Finger: f,
		Joints: JointAngles{Base: 90, Middle: 90, Distal: 75},
		State:  StateFolded,
	}
}

// NeutralHand returns the rest pose: all fingers extended, identity palm
// rotation at the origin. Playback starts from this pose when nothing has
// played yet.
func NeutralHand() HandPose {
	var h HandPose
	for i := 0; i < NumFingers; i++ {
		h.Fingers[i] = ExtendedFinger(Finger(i))
	}
	h.Palm = PalmPose{Rotation: QuatIdentity(), Openness: 0.5}
	return h
}

// OpenPalmHand returns a flat hand with spread fingers, palm forward.
func OpenPalmHand() HandPose {
	h := NeutralHand()
	for i := 0; i < NumFingers; i++ {
		fp := h.Fingers[i]
		fp.Spread = 10
		h.Fingers[i] = fp
	}
	h.Palm.Openness = 1
	return h
}

// FistHand returns a closed fist: all fingers folded, thumb bent across.
func FistHand() HandPose {
	var h HandPose
	for i := 0; i < NumFingers; i++ {
		h.Fingers[i] = FoldedFinger(Finger(i))
	}
	h.Fingers[Thumb] = BentFinger(Thumb)
	h.Palm = PalmPose{Rotation: QuatIdentity(), Openness: 0}
	return h
}

// PointHand returns a pointing hand: index extended, the rest folded.
func PointHand() HandPose {
	h := FistHand()
	h.Fingers[Index] = ExtendedFinger(Index)
	h.Palm.Openness = 0.2
	return h
}

// ThumbsUpHand returns a fist with the thumb extended and the palm rotated
// a quarter turn so the thumb points up.
func ThumbsUpHand() HandPose {
	h := FistHand()
	h.Fingers[Thumb] = FingerPose{Finger: Thumb, Spread: 30, State: StateRotated}
	h.Palm.Rotation = QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/2)
	return h
}

// VictoryHand returns index and middle extended with a small spread,
// remaining fingers folded.
func VictoryHand() HandPose {
	h := FistHand()
	index := ExtendedFinger(Index)
	index.Spread = 15
	middle := ExtendedFinger(Middle)
	middle.Spread = -15
	h.Fingers[Index] = index
	h.Fingers[Middle] = middle
	h.Palm.Openness = 0.4
	return h
}

// PinchHand returns thumb and index bent toward each other, the rest
// extended. Common base shape for precision signs.
func PinchHand() HandPose {
	h := NeutralHand()
	h.Fingers[Thumb] = FingerPose{
		Finger: Thumb,
		Joints: JointAngles{Base: 30, Middle: 40, Distal: 20},
		State:  StateBent,
	}
	h.Fingers[Index] = FingerPose{
		Finger: Index,
		Joints: JointAngles{Base: 40, Middle: 50, Distal: 25},
		State:  StateBent,
	}
	h.Palm.Openness = 0.6
	return h
}

// FlatHand returns a flat hand tilted palm-down, as used by several
// directional signs.
func FlatHand() HandPose {
	h := OpenPalmHand()
	h.Palm.Rotation = QuatFromAxisAngle(Vec3{X: 1}, math.Pi/2)
	h.Palm.Tilt = 0.5
	return h
}
