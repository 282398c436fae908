package behavior

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

func TestIdleStartVariant(t *testing.T) {
	tests := []struct {
		stance actor.Stance
		want   actor.Phase
	}{
		{actor.StanceTraversal, 100},
		{actor.StanceSpellCasting, 101},
	}

	for _, tt := range tests {
		t.Run(tt.stance.String(), func(t *testing.T) {
			env, anim, _ := newTestEnv()
			env.State.Stance = tt.stance

			b := NewIdle(DefaultIdleConfig())
			b.Awake(env)
			b.Activate(nil)
			if cmd, _ := anim.last(); cmd.Phase != tt.want {
				t.Errorf("start phase = %d, want %d", cmd.Phase, tt.want)
			}
		})
	}
}

func TestIdleUpdateLatch(t *testing.T) {
	env, _, _ := newTestEnv()
	b := NewIdle(DefaultIdleConfig())
	b.Awake(env)
	b.Activate(nil)

	env.State.Grounded = false
	if !b.TestUpdate() {
		t.Error("TestUpdate() = false on the activation frame")
	}
	b.Update(tick, 1)
	if b.TestUpdate() {
		t.Error("TestUpdate() = true while airborne after the first update")
	}
}

func TestIdleFollowsCamera(t *testing.T) {
	env, _, _ := newTestEnv()
	cam := math.Right
	env.State.CameraForward = &cam

	b := NewIdle(DefaultIdleConfig())
	b.Awake(env)
	b.Activate(nil)
	b.Update(tick, 1)

	remaining := env.State.Forward().SignedAngle(math.Right, math.Up)
	if gomath.Abs(float64(remaining-84)) > 1e-2 {
		t.Errorf("remaining angle = %v, want 84", remaining)
	}
	if b.Steering().Linked() {
		t.Error("camera solver linked far from the target")
	}

	for f := int64(2); f <= 20; f++ {
		b.Update(tick, f)
	}
	if !b.Steering().Linked() {
		t.Error("camera solver never linked")
	}
	if got := env.State.Forward().SignedAngle(math.Right, math.Up); gomath.Abs(float64(got)) > 1e-2 {
		t.Errorf("final angle = %v, want 0", got)
	}
}

func TestIdleStanceChangeEnds(t *testing.T) {
	env, _, _ := newTestEnv()
	b := NewIdle(DefaultIdleConfig())
	b.Awake(env)
	b.Activate(nil)
	b.Update(tick, 1)

	env.State.Stance = actor.StanceSpellCasting
	if b.TestUpdate() {
		t.Error("TestUpdate() = true after the stance changed")
	}
}
