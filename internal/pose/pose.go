// Package pose defines the immutable hand-pose data model for the Mudra
// sign-language avatar engine: per-finger joint angles, the palm transform,
// and the SignAction gesture definitions built from them.
package pose

// Finger identifies one of the five fingers of a hand.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	// NumFingers is the number of fingers on a hand pose.
	NumFingers = 5
)

// String returns the lowercase finger name.
func (f Finger) String() string {
	switch f {
	case Thumb:
		return "thumb"
	case Index:
		return "index"
	case Middle:
		return "middle"
	case Ring:
		return "ring"
	case Pinky:
		return "pinky"
	}
	return "unknown"
}

// FingerByName returns the finger for a lowercase name and whether it matched.
func FingerByName(name string) (Finger, bool) {
	switch name {
	case "thumb":
		return Thumb, true
	case "index":
		return Index, true
	case "middle":
		return Middle, true
	case "ring":
		return Ring, true
	case "pinky":
		return Pinky, true
	}
	return 0, false
}

// FingerState is a discrete display hint for a finger's shape.
// The continuous joint angles are authoritative; the state tag is only a
// semantic label for UI and catalog browsing.
type FingerState string

const (
	// StateExtended marks a straight finger.
	StateExtended FingerState = "extended"
	// StateBent marks a partially curled finger.
	StateBent FingerState = "bent"
	// StateFolded marks a fully curled finger.
	StateFolded FingerState = "folded"
	// StateRotated marks a finger rotated out of the palm plane.
	StateRotated FingerState = "rotated"
)

// JointAngles holds the three joint angles of one finger in degrees,
// from the knuckle outward. Values are conventionally 0-90 but are not
// clamped here.
type JointAngles struct {
	Base   float64 `json:"base"`
	Middle float64 `json:"middle"`
	Distal float64 `json:"distal"`
}

// FingerPose is the pose of a single finger: which finger it is, its three
// joint angles, an optional sideways spread angle, and a display state hint.
type FingerPose struct {
	Finger Finger      `json:"finger"`
	Joints JointAngles `json:"joints"`
	Spread float64     `json:"spread,omitempty"`
	State  FingerState `json:"state"`
}

// PalmPose is the wrist/palm anchor transform: a unit rotation and a 3D
// position, plus optional tilt and openness scalars in [0,1].
type PalmPose struct {
	Rotation Quat    `json:"rotation"`
	Position Vec3    `json:"position"`
	Tilt     float64 `json:"tilt,omitempty"`
	Openness float64 `json:"openness,omitempty"`
}

// HandPose is a fully resolved hand: exactly one FingerPose per finger,
// indexed by Finger, plus the palm transform.
type HandPose struct {
	Fingers [NumFingers]FingerPose `json:"fingers"`
	Palm    PalmPose               `json:"palm"`
}

// FingerPose returns the pose of the given finger.
func (h HandPose) FingerPose(f Finger) FingerPose {
	return h.Fingers[f]
}

// WithFinger returns a copy of the hand pose with one finger replaced.
// Poses tagged with an out-of-range finger are ignored.
func (h HandPose) WithFinger(fp FingerPose) HandPose {
	if fp.Finger < 0 || fp.Finger >= NumFingers {
		return h
	}
	h.Fingers[fp.Finger] = fp
	return h
}

// Keyframe is a fully resolved pose tagged with an absolute time in
// seconds. Keyframes are ephemeral: computed per render tick for the
// mixer collaborator and never persisted.
type Keyframe struct {
	Time float64  `json:"time"`
	Hand HandPose `json:"hand"`
}
