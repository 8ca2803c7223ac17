package pose

import "math"

// Vec3 is an immutable 3D vector. All methods return new values.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Quat is an immutable unit quaternion representing a rotation.
// All methods return new values; nothing is mutated in place.
type Quat struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a rotation of angle radians around the given
// axis. The axis does not need to be normalized.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	length := math.Sqrt(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z)
	if length == 0 {
		return QuatIdentity()
	}
	s := math.Sin(angle/2) / length
	return Quat{
		W: math.Cos(angle / 2),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// Dot returns the four-component dot product of q and o.
func (q Quat) Dot(o Quat) float64 {
	return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
}

// Neg returns the antipodal quaternion, which represents the same rotation.
func (q Quat) Neg() Quat {
	return Quat{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Normalize returns q scaled to unit length. The identity rotation is
// returned for a zero quaternion.
func (q Quat) Normalize() Quat {
	length := math.Sqrt(q.Dot(q))
	if length == 0 {
		return QuatIdentity()
	}
	return Quat{W: q.W / length, X: q.X / length, Y: q.Y / length, Z: q.Z / length}
}

// AngleTo returns the shortest rotation angle in radians between the two
// rotations, in [0, pi].
func (q Quat) AngleTo(o Quat) float64 {
	d := math.Abs(q.Dot(o))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}
