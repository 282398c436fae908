package behavior

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/engine/blend"
	"github.com/Faultbox/midgard-motion/internal/engine/steering"
	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// IdleConfig tunes the idle behavior.
type IdleConfig struct {
	Enabled bool `yaml:"enabled"`
	// FollowCamera keeps the actor aligned with the camera while idle.
	FollowCamera bool `yaml:"follow_camera"`
	// CameraSpeed and TargetSpeed are degrees per nominal tick; zero turns
	// instantly.
	CameraSpeed float32 `yaml:"camera_speed"`
	TargetSpeed float32 `yaml:"target_speed"`
	Phases      Phases  `yaml:"phases"`
	Anim        AnimIDs `yaml:"anim"`
}

// DefaultIdleConfig matches the default base-layer graph.
func DefaultIdleConfig() IdleConfig {
	return IdleConfig{
		Enabled:      true,
		FollowCamera: true,
		CameraSpeed:  6,
		TargetSpeed:  8,
		Phases: Phases{
			Start:     100,
			StartAlt:  101,
			Interrupt: 109,
		},
	}
}

// Idle is the catch-all behavior that runs when nothing else does. It
// keeps the actor facing the camera or its locked target.
type Idle struct {
	Lifecycle

	cfg  IdleConfig
	sets animSets
	env  *Env

	camera *steering.Solver
	combat *steering.Solver
	blend  *blend.Estimator

	stance        actor.Stance
	cachedForward math.Vec3
}

// NewIdle creates an idle behavior.
func NewIdle(cfg IdleConfig) *Idle {
	sets := cfg.Anim.build()
	return &Idle{
		Lifecycle: Lifecycle{Enabled: cfg.Enabled},
		cfg:       cfg,
		sets:      sets,
		camera:    steering.New(steering.Linked, cfg.CameraSpeed),
		combat:    steering.New(steering.Unlinked, cfg.TargetSpeed),
		blend:     blend.NewEstimator(sets.curves),
	}
}

func (b *Idle) Name() string { return "idle" }

func (b *Idle) Trigger() Trigger { return TriggerDefault }

func (b *Idle) Awake(env *Env) {
	b.env = env
	b.log = namedLogger(env, b.Name())
}

func (b *Idle) BlendWeight() float32 { return b.blend.Weight() }

// Steering returns the camera-follow solver.
func (b *Idle) Steering() *steering.Solver { return b.camera }

// TestActivate only checks the gates; being the catch-all, the controller
// tests it once no input-triggered behavior started.
func (b *Idle) TestActivate() bool {
	return b.Enabled && b.env.State.Grounded
}

func (b *Idle) Activate(previous Activatable) bool {
	st := b.env.State

	b.camera.Reset()
	b.combat.Reset()
	b.blend.Reset()
	b.stance = st.Stance

	switch {
	case st.HasTarget() && !st.DirectionToTarget().IsZero():
		b.cachedForward = st.DirectionToTarget()
	case st.CameraForward != nil:
		b.cachedForward = *st.CameraForward
	default:
		b.cachedForward = st.Forward()
	}

	phase := b.cfg.Phases.Start
	if b.stance == actor.StanceSpellCasting {
		phase = b.cfg.Phases.StartAlt
	}
	emit(b.env, phase, 0, 0)
	b.begin()

	b.log.Debug("activated",
		zap.Stringer("stance", b.stance),
		zap.Int("phase", int(phase)))
	return true
}

func (b *Idle) TestUpdate() bool {
	if b.JustActivated() {
		return true
	}
	st := b.env.State
	if !st.Grounded || st.Stance != b.stance {
		return false
	}
	return !b.interruptSettled(b.env.Animator.Layer(), b.sets.interrupted, b.sets.exit)
}

func (b *Idle) Update(dt float32, frame int64) {
	defer b.endFrame()
	st := b.env.State
	layer := b.env.Animator.Layer()

	b.reportInterrupt(b.env, layer, b.sets.interrupted, b.cfg.Phases.Interrupt, nil)

	st.AimWeight = b.blend.Update(progressOf(layer))

	var d steering.Delta
	switch {
	case st.HasTarget():
		dir := st.DirectionToTarget()
		d = b.combat.Turn(st.Forward(), dir, dt)
		st.CameraHint = &dir
	case b.cfg.FollowCamera && st.CameraForward != nil:
		d = b.camera.Turn(st.Forward(), *st.CameraForward, dt)
	default:
		d = b.camera.Turn(st.Forward(), b.cachedForward, dt)
	}
	if d.Degrees != 0 {
		st.Rotate(d.Rotation)
	}
}

func (b *Idle) Deactivate() {
	b.env.State.CameraHint = nil
	b.end()
	b.log.Debug("deactivated")
}
