package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	if !q.IsIdentity() {
		t.Error("IsIdentity() should be true for the identity")
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisDegrees(Up, 90)
	got := q.Rotate(Forward)
	want := Vec3{1, 0, 0}
	if got.Sub(want).Length() > 0.0001 {
		t.Errorf("Rotate(+90 about Y) = %v, want %v", got, want)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisDegrees(Up, 30)
	b := QuatFromAxisDegrees(Up, 15)
	got := a.Mul(b).Rotate(Forward)
	want := QuatFromAxisDegrees(Up, 45).Rotate(Forward)
	if got.Sub(want).Length() > 0.0001 {
		t.Errorf("composed rotation = %v, want %v", got, want)
	}
}

func TestQuatLookRotation(t *testing.T) {
	dir := Vec3{-1, 0, 1}
	got := QuatLookRotation(dir).Rotate(Forward)
	want := dir.Normalize()
	if got.Sub(want).Length() > 0.0001 {
		t.Errorf("LookRotation forward = %v, want %v", got, want)
	}
}
