package behavior

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/engine/blend"
	"github.com/Faultbox/midgard-motion/internal/engine/smoothing"
	"github.com/Faultbox/midgard-motion/internal/engine/steering"
	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// LocomotionConfig tunes the pivot and strafe behaviors.
type LocomotionConfig struct {
	Enabled bool `yaml:"enabled"`
	// TurnSpeed is degrees per nominal tick; zero turns instantly.
	TurnSpeed float32            `yaml:"turn_speed"`
	Smoothing smoothing.Settings `yaml:"smoothing"`
	Phases    Phases             `yaml:"phases"`
	Anim      AnimIDs            `yaml:"anim"`
}

// locomotion is the part pivot and strafe share: the activation gates, the
// input smoother with its stop-delay, and forced-input handover.
type locomotion struct {
	Lifecycle

	name string
	cfg  LocomotionConfig
	sets animSets
	env  *Env

	turn     *steering.Solver
	smoother *smoothing.InputSmoother
	blend    *blend.Estimator

	settled bool
}

func newLocomotion(name string, cfg LocomotionConfig, mode steering.Mode) locomotion {
	sets := cfg.Anim.build()
	return locomotion{
		Lifecycle: Lifecycle{Enabled: cfg.Enabled},
		name:      name,
		cfg:       cfg,
		sets:      sets,
		turn:      steering.New(mode, cfg.TurnSpeed),
		smoother:  smoothing.NewInputSmoother(cfg.Smoothing),
		blend:     blend.NewEstimator(sets.curves),
	}
}

func (l *locomotion) Name() string { return l.name }

func (l *locomotion) Trigger() Trigger { return TriggerInput }

func (l *locomotion) Awake(env *Env) {
	l.env = env
	l.log = namedLogger(env, l.name)
}

func (l *locomotion) Steering() *steering.Solver { return l.turn }

func (l *locomotion) BlendWeight() float32 { return l.blend.Weight() }

// Smoother exposes the input smoother for inspection.
func (l *locomotion) Smoother() *smoothing.InputSmoother { return l.smoother }

// gates checks everything both locomotion behaviors need to start.
func (l *locomotion) gates() bool {
	st := l.env.State
	return l.Enabled &&
		st.Grounded &&
		st.Stance == actor.StanceTraversal &&
		st.InputMagnitude >= l.smoother.Settings().StopThreshold
}

// start resets per-activation state and emits the start phase. A forced
// input left by the previous behavior primes the smoother and selects the
// alternate start, as does resuming out of a cast.
func (l *locomotion) start(previous Activatable) {
	st := l.env.State

	l.turn.Reset()
	l.blend.Reset()
	l.smoother.Reset()
	l.settled = false

	handover := false
	if st.ForcedInput != nil {
		l.smoother.Prime(smoothing.Sample{
			X:         st.ForcedInput.Input.X,
			Y:         st.ForcedInput.Input.Y,
			Magnitude: st.ForcedInput.Magnitude,
		})
		st.ForcedInput = nil
		handover = true
	}
	if stance, ok := heldStance(previous); ok && stance == actor.StanceSpellCasting {
		handover = true
	}

	phase := l.cfg.Phases.Start
	if handover && l.cfg.Phases.StartAlt != 0 {
		phase = l.cfg.Phases.StartAlt
	}
	emit(l.env, phase, 0, 0)
	l.begin()

	l.log.Debug("activated", zap.Int("phase", int(phase)), zap.Bool("handover", handover))
}

// keepRunning is the shared part of TestUpdate, minus the latch.
func (l *locomotion) keepRunning() bool {
	st := l.env.State
	if st.Stance != actor.StanceTraversal || !st.Grounded {
		return false
	}
	if l.settled {
		return false
	}
	layer := l.env.Animator.Layer()
	if l.interruptSettled(layer, l.sets.interrupted, l.sets.exit) {
		return false
	}
	if settledIn(l.sets.exit, layer) && st.InputMagnitude < l.smoother.Settings().StopThreshold {
		return false
	}
	return true
}

// smoothInput runs the input smoother and writes the result back into the
// actor state, emitting the stop phase once when the stop-delay elapses.
func (l *locomotion) smoothInput(dt float32, frame int64, layer actor.LayerState) {
	st := l.env.State
	res := l.smoother.Step(smoothing.Sample{
		X:         st.Input.X,
		Y:         st.Input.Y,
		Magnitude: st.InputMagnitude,
	}, dt, settledIn(l.sets.stopped, layer))

	st.SmoothedInput = math.Vec2{X: res.X, Y: res.Y}
	st.SmoothedMagnitude = res.Magnitude

	if res.Stop {
		emit(l.env, l.cfg.Phases.Stop, 0, 0)
		l.log.Debug("stop", zap.Int64("frame", frame))
	}
	if res.Resumed {
		// The stop already went out; move the layer back into the loop.
		phase := l.cfg.Phases.StartAlt
		if phase == 0 {
			phase = l.cfg.Phases.Start
		}
		emit(l.env, phase, 0, 0)
		l.log.Debug("resumed", zap.Int64("frame", frame), zap.Int("phase", int(phase)))
	}
	if res.Cleared {
		l.settled = true
	}
}

// TestInterruption hands the smoothed input to whichever behavior takes
// over so its blend tree starts where this one left off.
func (l *locomotion) TestInterruption(Activatable) bool {
	st := l.env.State
	st.ForcedInput = &actor.ForcedInput{
		Input:     st.SmoothedInput,
		Magnitude: st.SmoothedMagnitude,
	}
	return true
}

func (l *locomotion) Deactivate() {
	l.env.State.CameraHint = nil
	l.end()
	l.log.Debug("deactivated")
}
