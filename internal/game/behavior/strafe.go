package behavior

import (
	"github.com/Faultbox/midgard-motion/internal/engine/smoothing"
	"github.com/Faultbox/midgard-motion/internal/engine/steering"
)

// DefaultStrafeConfig matches the default base-layer graph.
func DefaultStrafeConfig() LocomotionConfig {
	return LocomotionConfig{
		Enabled:   true,
		TurnSpeed: 8,
		Smoothing: smoothing.DefaultSettings(),
		Phases: Phases{
			Start:     300,
			StartAlt:  301,
			Stop:      302,
			Interrupt: 309,
		},
		Anim: AnimIDs{
			RampIn:      []string{"Strafe.Enter", "Strafe.Resume"},
			RampOut:     []string{"Strafe.Halt"},
			Steady:      []string{"Strafe.Loop"},
			Exit:        []string{"Idle"},
			Stopped:     []string{"Idle"},
			Interrupted: []string{"Strafe.Interrupt"},
		},
	}
}

// Strafe is locked-target locomotion: the actor keeps facing its target
// while the input axes drive a strafe blend tree.
type Strafe struct {
	locomotion
}

// NewStrafe creates a strafe locomotion behavior.
func NewStrafe(cfg LocomotionConfig) *Strafe {
	return &Strafe{locomotion: newLocomotion("strafe", cfg, steering.Unlinked)}
}

func (b *Strafe) TestActivate() bool {
	return b.gates() && b.env.State.HasTarget()
}

func (b *Strafe) Activate(previous Activatable) bool {
	b.start(previous)
	return true
}

func (b *Strafe) TestUpdate() bool {
	if b.JustActivated() {
		return true
	}
	return b.keepRunning() && b.env.State.HasTarget()
}

func (b *Strafe) Update(dt float32, frame int64) {
	defer b.endFrame()
	st := b.env.State
	layer := b.env.Animator.Layer()

	b.reportInterrupt(b.env, layer, b.sets.interrupted, b.cfg.Phases.Interrupt, nil)

	st.AimWeight = b.blend.Update(progressOf(layer))

	if st.HasTarget() {
		dir := st.DirectionToTarget()
		if d := b.turn.Turn(st.Forward(), dir, dt); d.Degrees != 0 {
			st.Rotate(d.Rotation)
		}
		st.CameraHint = &dir
	}

	b.smoothInput(dt, frame, layer)
}
