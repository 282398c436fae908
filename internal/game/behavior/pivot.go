package behavior

import (
	"github.com/Faultbox/midgard-motion/internal/engine/smoothing"
	"github.com/Faultbox/midgard-motion/internal/engine/steering"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// DefaultPivotConfig matches the default base-layer graph.
func DefaultPivotConfig() LocomotionConfig {
	return LocomotionConfig{
		Enabled:   true,
		TurnSpeed: 10,
		Smoothing: smoothing.DefaultSettings(),
		Phases: Phases{
			Start:     200,
			StartAlt:  201,
			Stop:      202,
			Interrupt: 209,
		},
		Anim: AnimIDs{
			Exit:        []string{"Idle"},
			Stopped:     []string{"Idle"},
			Interrupted: []string{"Pivot.Interrupt"},
		},
	}
}

// Pivot is free walk/run locomotion: the actor turns to face the
// camera-relative input direction.
type Pivot struct {
	locomotion

	heading math.Vec3
}

// NewPivot creates a pivot locomotion behavior.
func NewPivot(cfg LocomotionConfig) *Pivot {
	return &Pivot{locomotion: newLocomotion("pivot", cfg, steering.Unlinked)}
}

func (b *Pivot) TestActivate() bool {
	return b.gates() && !b.env.State.HasTarget()
}

func (b *Pivot) Activate(previous Activatable) bool {
	st := b.env.State
	b.heading = st.CameraRelative(st.Input)
	if b.heading.IsZero() {
		b.heading = st.Forward()
	}
	b.start(previous)
	return true
}

func (b *Pivot) TestUpdate() bool {
	if b.JustActivated() {
		return true
	}
	return b.keepRunning() && !b.env.State.HasTarget()
}

func (b *Pivot) Update(dt float32, frame int64) {
	defer b.endFrame()
	st := b.env.State
	layer := b.env.Animator.Layer()

	b.reportInterrupt(b.env, layer, b.sets.interrupted, b.cfg.Phases.Interrupt, nil)

	st.AimWeight = b.blend.Update(progressOf(layer))

	// Hold the last heading while stopping so the actor does not spin on
	// dead-zone noise.
	if dir := st.CameraRelative(st.Input); !dir.IsZero() && !b.smoother.Stopping() {
		b.heading = dir
	}
	if d := b.turn.Turn(st.Forward(), b.heading, dt); d.Degrees != 0 {
		st.Rotate(d.Rotation)
	}

	b.smoothInput(dt, frame, layer)
}
