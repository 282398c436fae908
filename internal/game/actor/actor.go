// Package actor holds the shared per-actor state that motion behaviors read
// and mutate, and the narrow interfaces to the host animation, input and
// spell systems.
package actor

import (
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// ID identifies an actor for message addressing.
type ID uint32

// Stance is a coarse actor mode gating which behaviors may activate.
type Stance uint8

const (
	StanceTraversal Stance = iota
	StanceSpellCasting
)

func (s Stance) String() string {
	switch s {
	case StanceTraversal:
		return "traversal"
	case StanceSpellCasting:
		return "spell-casting"
	default:
		return "unknown"
	}
}

// Target is a locked combat target.
type Target struct {
	ID       ID
	Position math.Vec3
}

// ForcedInput is a snapshot of smoothed input handed from an outgoing
// locomotion behavior to the next one so its blend tree does not snap.
type ForcedInput struct {
	Input     math.Vec2
	Magnitude float32
}

// State is owned by the controller and borrowed by the active behavior for
// the duration of its Update. Only the active behavior writes the smoothed
// input fields.
type State struct {
	ID ID

	// Transform
	Position math.Vec3
	Rotation math.Quat

	// Authoritative inputs to activation predicates
	Stance   Stance
	Grounded bool

	// Raw directional input (X lateral, Y forward) and its magnitude trend
	Input          math.Vec2
	InputMagnitude float32

	// Written back by the active locomotion behavior
	SmoothedInput     math.Vec2
	SmoothedMagnitude float32

	Target        *Target    // nil when nothing is locked
	CameraForward *math.Vec3 // nil when there is no camera
	CameraHint    *math.Vec3 // camera-follow request, nil when none

	ForcedInput *ForcedInput

	// Shared animation playback rate; 1 is normal speed.
	PlaybackRate float32

	AimWeight       float32
	ResumeMagnitude float32
}

// NewState creates a grounded, traversal-stance actor facing +Z.
func NewState(id ID) *State {
	return &State{
		ID:           id,
		Rotation:     math.QuatIdentity(),
		Stance:       StanceTraversal,
		Grounded:     true,
		PlaybackRate: 1,
	}
}

// Forward returns the actor's facing direction.
func (s *State) Forward() math.Vec3 {
	return s.Rotation.Rotate(math.Forward)
}

// Rotate composes delta onto the current orientation.
func (s *State) Rotate(delta math.Quat) {
	s.Rotation = delta.Mul(s.Rotation).Normalize()
}

// HasTarget reports whether a combat target is locked.
func (s *State) HasTarget() bool {
	return s.Target != nil
}

// DirectionToTarget returns the horizontal direction toward the locked
// target, or the zero vector when there is none.
func (s *State) DirectionToTarget() math.Vec3 {
	if s.Target == nil {
		return math.Vec3{}
	}
	return s.Target.Position.Sub(s.Position).ProjectOnPlane(math.Up)
}

// CameraRelative converts the raw input axes into a world direction using
// the camera's horizontal basis, or the actor's own basis without a camera.
func (s *State) CameraRelative(in math.Vec2) math.Vec3 {
	fwd := s.Forward()
	if s.CameraForward != nil && !s.CameraForward.ProjectOnPlane(math.Up).IsZero() {
		fwd = *s.CameraForward
	}
	fwd = fwd.ProjectOnPlane(math.Up).Normalize()
	right := math.Up.Cross(fwd)
	return right.Scale(in.X).Add(fwd.Scale(in.Y))
}
