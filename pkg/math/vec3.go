package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Common axes. The world is Y-up with +Z as the neutral forward.
var (
	Up      = Vec3{0, 1, 0}
	Forward = Vec3{0, 0, 1}
	Right   = Vec3{1, 0, 0}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// IsZero reports whether the vector is shorter than Epsilon.
func (v Vec3) IsZero() bool {
	return v.Length() < Epsilon
}

// ProjectOnPlane removes the component of v along the plane normal.
// normal must be a unit vector.
func (v Vec3) ProjectOnPlane(normal Vec3) Vec3 {
	return v.Sub(normal.Scale(v.Dot(normal)))
}

// SignedAngle returns the angle in degrees from v to other measured around
// axis, after both are flattened onto the plane perpendicular to axis.
// Positive values rotate v toward other by a right-handed turn about axis.
// Returns 0 when either flattened vector is degenerate.
func (v Vec3) SignedAngle(other, axis Vec3) float32 {
	from := v.ProjectOnPlane(axis)
	to := other.ProjectOnPlane(axis)
	if from.IsZero() || to.IsZero() {
		return 0
	}
	from = from.Normalize()
	to = to.Normalize()
	sin := axis.Dot(from.Cross(to))
	cos := from.Dot(to)
	return RadToDeg(float32(math.Atan2(float64(sin), float64(cos))))
}
