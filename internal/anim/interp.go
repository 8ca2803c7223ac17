// Package anim provides the pure interpolation kernel for the Mudra
// engine: linear and spherical interpolation, finger and hand pose
// blending, weighted multi-pose blending, and easing curves.
//
// All functions are stateless and return new values; inputs are never
// mutated. For in-range numeric input nothing here returns an error;
// errors are reserved for structurally invalid input such as mismatched
// slice lengths.
package anim

import (
	"errors"
	"math"

	"github.com/ayusman/mudra/internal/pose"
)

// ErrLengthMismatch is returned when paired slices differ in length.
var ErrLengthMismatch = errors.New("poses and weights length mismatch")

// ErrEmptyInput is returned when a blend is requested over zero poses.
var ErrEmptyInput = errors.New("no poses to blend")

// StateSwitchThreshold is the blend factor at which the discrete finger
// state tag snaps from the source pose's state to the target's.
const StateSwitchThreshold = 0.5

// Lerp linearly interpolates between a and b. t is not clamped; callers
// clamp upstream when they need to.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec linearly interpolates each component of two vectors.
func LerpVec(a, b pose.Vec3, t float64) pose.Vec3 {
	return pose.Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// Slerp spherically interpolates between two unit rotations. When the
// rotations lie in opposite hemispheres one endpoint is negated first so
// the interpolation takes the shortest arc. Nearly parallel rotations fall
// back to normalized linear interpolation to avoid division by a vanishing
// sine.
func Slerp(q1, q2 pose.Quat, t float64) pose.Quat {
	dot := q1.Dot(q2)
	if dot < 0 {
		q2 = q2.Neg()
		dot = -dot
	}

	if dot > 0.9995 {
		return pose.Quat{
			W: Lerp(q1.W, q2.W, t),
			X: Lerp(q1.X, q2.X, t),
			Y: Lerp(q1.Y, q2.Y, t),
			Z: Lerp(q1.Z, q2.Z, t),
		}.Normalize()
	}

	if dot > 1 {
		dot = 1
	}
	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	w1 := math.Sin((1-t)*theta) / sinTheta
	w2 := math.Sin(t*theta) / sinTheta

	return pose.Quat{
		W: q1.W*w1 + q2.W*w2,
		X: q1.X*w1 + q2.X*w2,
		Y: q1.Y*w1 + q2.Y*w2,
		Z: q1.Z*w1 + q2.Z*w2,
	}
}

// BlendFingerPose interpolates the three joint angles and spread of two
// finger poses independently. The discrete state tag is not smoothed: it
// snaps to the target's state once t exceeds StateSwitchThreshold. The
// snap is intentionally discontinuous; the tag is a display hint and the
// continuous angles stay authoritative throughout the blend.
func BlendFingerPose(a, b pose.FingerPose, t float64) pose.FingerPose {
	out := pose.FingerPose{
		Finger: a.Finger,
		Joints: pose.JointAngles{
			Base:   Lerp(a.Joints.Base, b.Joints.Base, t),
			Middle: Lerp(a.Joints.Middle, b.Joints.Middle, t),
			Distal: Lerp(a.Joints.Distal, b.Joints.Distal, t),
		},
		Spread: Lerp(a.Spread, b.Spread, t),
		State:  a.State,
	}
	if t > StateSwitchThreshold {
		out.State = b.State
	}
	return out
}

// BlendPalmPose interpolates the palm transform: slerp for rotation,
// lerp for position, tilt and openness.
func BlendPalmPose(a, b pose.PalmPose, t float64) pose.PalmPose {
	return pose.PalmPose{
		Rotation: Slerp(a.Rotation, b.Rotation, t),
		Position: LerpVec(a.Position, b.Position, t),
		Tilt:     Lerp(a.Tilt, b.Tilt, t),
		Openness: Lerp(a.Openness, b.Openness, t),
	}
}

// BlendHandPose blends every finger and the palm of two hand poses.
func BlendHandPose(a, b pose.HandPose, t float64) pose.HandPose {
	var out pose.HandPose
	for i := 0; i < pose.NumFingers; i++ {
		out.Fingers[i] = BlendFingerPose(a.Fingers[i], b.Fingers[i], t)
	}
	out.Palm = BlendPalmPose(a.Palm, b.Palm, t)
	return out
}

// WeightedBlend combines several hand poses under the given weights.
// Weights are normalized to sum to 1 before blending; they do not need to
// be normalized by the caller. Returns ErrLengthMismatch when the slices
// differ in length and ErrEmptyInput for zero poses.
//
// Joint angles, spread, position and palm scalars are weighted sums. The
// rotation is accumulated by repeated slerp toward each pose at its share
// of the running weight, which reduces to plain slerp for two poses.
// Discrete finger states follow the heaviest-weighted pose.
func WeightedBlend(poses []pose.HandPose, weights []float64) (pose.HandPose, error) {
	if len(poses) != len(weights) {
		return pose.HandPose{}, ErrLengthMismatch
	}
	if len(poses) == 0 {
		return pose.HandPose{}, ErrEmptyInput
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	norm := make([]float64, len(weights))
	for i, w := range weights {
		if total != 0 {
			norm[i] = w / total
		} else {
			norm[i] = 1 / float64(len(weights))
		}
	}

	out := poses[0]
	accumulated := norm[0]
	for i := 1; i < len(poses); i++ {
		accumulated += norm[i]
		if accumulated == 0 {
			continue
		}
		out = BlendHandPose(out, poses[i], norm[i]/accumulated)
	}

	// State tags follow the dominant pose rather than the blend path.
	heaviest := 0
	for i, w := range norm {
		if w > norm[heaviest] {
			heaviest = i
		}
	}
	for i := 0; i < pose.NumFingers; i++ {
		out.Fingers[i].State = poses[heaviest].Fingers[i].State
	}

	return out, nil
}
