// Package steering turns an actor's forward direction toward a target
// direction at a bounded angular speed.
package steering

import (
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// NominalTick is the frame duration MaxSpeed is expressed against (60 Hz).
const NominalTick = float32(1.0 / 60)

// Mode selects how the solver behaves once it is close to the target.
type Mode int

const (
	// Unlinked always clamps the step to the maximum speed.
	Unlinked Mode = iota
	// Linked latches once the remaining angle fits in one step; from then
	// on the solver snaps to the target every tick. Used for camera
	// alignment, where the target moves continuously.
	Linked
	// ReachOnce clamps like Unlinked but stops steering for good once the
	// target has been reached. It settles once per activation and does not
	// track later divergence.
	ReachOnce
)

func (m Mode) String() string {
	switch m {
	case Unlinked:
		return "unlinked"
	case Linked:
		return "linked"
	case ReachOnce:
		return "reach-once"
	default:
		return "unknown"
	}
}

// Delta is a rotation to compose with the actor's current orientation.
type Delta struct {
	Degrees  float32
	Rotation math.Quat
}

// None is the zero rotation delta.
func None() Delta {
	return Delta{Rotation: math.QuatIdentity()}
}

// Solver computes per-tick rotation deltas. It is owned by one behavior
// and must be Reset on every activation.
type Solver struct {
	Mode Mode
	// MaxSpeed is in degrees per nominal tick. Zero means "instant" and is
	// handled by callers through Instant.
	MaxSpeed float32
	Up       math.Vec3

	linked  bool
	reached bool
}

// New creates a solver about the world up axis.
func New(mode Mode, maxSpeed float32) *Solver {
	return &Solver{Mode: mode, MaxSpeed: maxSpeed, Up: math.Up}
}

// Reset clears the link and reached latches.
func (s *Solver) Reset() {
	s.linked = false
	s.reached = false
}

// Linked reports whether the hysteresis latch has engaged.
func (s *Solver) Linked() bool {
	return s.linked
}

// Reached reports whether a ReachOnce solver has settled.
func (s *Solver) Reached() bool {
	return s.reached
}

// MaxStep returns the largest step allowed for a frame of dt seconds.
func (s *Solver) MaxStep(dt float32) float32 {
	if dt <= 0 {
		return 0
	}
	return s.MaxSpeed * (dt / NominalTick)
}

// StepAngle returns the signed step in degrees for a remaining signed
// angle delta.
func (s *Solver) StepAngle(delta, dt float32) float32 {
	if s.Mode == ReachOnce && s.reached {
		return 0
	}
	maxStep := s.MaxStep(dt)
	if maxStep <= 0 {
		return 0
	}

	angle := math.Abs(delta)
	sign := math.Sign(delta)

	switch s.Mode {
	case Linked:
		if !s.linked && angle <= maxStep {
			s.linked = true
		}
		if s.linked {
			return delta
		}
		return sign * math.Min(maxStep, angle)
	case ReachOnce:
		step := math.Min(maxStep, angle)
		if angle <= step {
			s.reached = true
		}
		return sign * step
	default:
		return sign * math.Min(maxStep, angle)
	}
}

// Step returns the rotation that moves forward toward target for one
// frame. A degenerate target is a no-op.
func (s *Solver) Step(forward, target math.Vec3, dt float32) Delta {
	if target.ProjectOnPlane(s.Up).IsZero() || forward.ProjectOnPlane(s.Up).IsZero() {
		return None()
	}
	deg := s.StepAngle(forward.SignedAngle(target, s.Up), dt)
	if deg == 0 {
		return None()
	}
	return Delta{Degrees: deg, Rotation: math.QuatFromAxisDegrees(s.Up, deg)}
}

// Instant returns the full rotation from forward to target about up. It is
// what callers use when the configured speed is zero.
func Instant(forward, target, up math.Vec3) Delta {
	deg := forward.SignedAngle(target, up)
	if deg == 0 {
		return None()
	}
	return Delta{Degrees: deg, Rotation: math.QuatFromAxisDegrees(up, deg)}
}

// Turn picks between s.Step and Instant based on MaxSpeed. An instant
// ReachOnce turn counts as reached.
func (s *Solver) Turn(forward, target math.Vec3, dt float32) Delta {
	if s.MaxSpeed == 0 {
		if s.Mode == ReachOnce {
			if s.reached {
				return None()
			}
			s.reached = true
		}
		return Instant(forward, target, s.Up)
	}
	return s.Step(forward, target, dt)
}
