package math

import (
	"testing"
)

func TestVec2Normalize(t *testing.T) {
	got := Vec2{3, 4}.Normalize()
	if Abs(got.X-0.6) > 1e-6 || Abs(got.Y-0.8) > 1e-6 {
		t.Errorf("Vec2.Normalize() = %v, want {0.6 0.8}", got)
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero Vec2.Normalize() = %v, want zero", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3ProjectOnPlane(t *testing.T) {
	v := Vec3{1, 5, 2}
	got := v.ProjectOnPlane(Up)
	want := Vec3{1, 0, 2}
	if got != want {
		t.Errorf("ProjectOnPlane() = %v, want %v", got, want)
	}
}

func TestSignedAngle(t *testing.T) {
	tests := []struct {
		name string
		to   Vec3
		want float32
	}{
		{"same", Vec3{0, 0, 1}, 0},
		{"right", Vec3{1, 0, 0}, 90},
		{"left", Vec3{-1, 0, 0}, -90},
		{"ignores height", Vec3{1, 10, 1}, 45},
		{"degenerate", Vec3{0, 3, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Forward.SignedAngle(tt.to, Up)
			if Abs(got-tt.want) > 0.001 {
				t.Errorf("SignedAngle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(2, 0, 1); got != 1 {
		t.Errorf("Clamp(2, 0, 1) = %v, want 1", got)
	}
	if got := Clamp(-1, 0, 1); got != 0 {
		t.Errorf("Clamp(-1, 0, 1) = %v, want 0", got)
	}
	if got := Clamp(0.3, 0, 1); got != 0.3 {
		t.Errorf("Clamp(0.3, 0, 1) = %v, want 0.3", got)
	}
}
