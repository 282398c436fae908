// Package camera provides a headless third-person camera rig that feeds
// the actor's camera-forward direction and honours camera-follow hints.
package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-motion/pkg/math"
)

// ThirdPersonCamera follows a target from behind. Only the horizontal
// orientation matters to motion behaviors.
type ThirdPersonCamera struct {
	// Camera orientation
	Yaw   float32 // Horizontal rotation around target (radians)
	Pitch float32 // Vertical angle (radians)

	// FollowSpeed is how fast a follow hint turns the camera, in degrees
	// per second. Zero snaps.
	FollowSpeed float32

	// Sensitivity
	YawSensitivity float32
}

// NewThirdPersonCamera creates a camera looking along +Z.
func NewThirdPersonCamera() *ThirdPersonCamera {
	return &ThirdPersonCamera{
		Yaw:            0.0,
		Pitch:          0.85, // ~48 degrees
		FollowSpeed:    360,
		YawSensitivity: 0.005,
	}
}

// HandleYaw rotates camera horizontally around target.
func (c *ThirdPersonCamera) HandleYaw(deltaX float32) {
	c.Yaw -= deltaX * c.YawSensitivity
}

// Forward returns the camera's forward direction on the XZ plane.
func (c *ThirdPersonCamera) Forward() math.Vec3 {
	return math.Vec3{
		X: float32(gomath.Sin(float64(c.Yaw))),
		Z: float32(gomath.Cos(float64(c.Yaw))),
	}
}

// Right returns the camera's right direction on the XZ plane.
func (c *ThirdPersonCamera) Right() math.Vec3 {
	return math.Up.Cross(c.Forward())
}

// LookAlong points the camera along the horizontal part of dir. A
// degenerate dir is ignored.
func (c *ThirdPersonCamera) LookAlong(dir math.Vec3) {
	flat := dir.ProjectOnPlane(math.Up)
	if flat.IsZero() {
		return
	}
	c.Yaw = float32(gomath.Atan2(float64(flat.X), float64(flat.Z)))
}

// Follow turns the camera toward hint by at most FollowSpeed*dt degrees.
// A nil hint leaves the camera alone. It returns the degrees turned.
func (c *ThirdPersonCamera) Follow(hint *math.Vec3, dt float32) float32 {
	if hint == nil || hint.ProjectOnPlane(math.Up).IsZero() {
		return 0
	}
	delta := c.Forward().SignedAngle(*hint, math.Up)
	if c.FollowSpeed > 0 {
		delta = math.Clamp(delta, -c.FollowSpeed*dt, c.FollowSpeed*dt)
	}
	c.Yaw = wrap(c.Yaw + math.DegToRad(delta))
	return delta
}

// wrap keeps yaw within (-pi, pi].
func wrap(yaw float32) float32 {
	for yaw > gomath.Pi {
		yaw -= 2 * gomath.Pi
	}
	for yaw <= -gomath.Pi {
		yaw += 2 * gomath.Pi
	}
	return yaw
}
