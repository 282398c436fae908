package sim

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/config"
	"github.com/Faultbox/midgard-motion/internal/engine/animgraph"
	"github.com/Faultbox/midgard-motion/internal/engine/camera"
	"github.com/Faultbox/midgard-motion/internal/engine/input"
	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/internal/game/behavior"
	"github.com/Faultbox/midgard-motion/internal/game/controller"
	"github.com/Faultbox/midgard-motion/internal/logger"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Frame is a snapshot taken after one tick.
type Frame struct {
	Index             int64
	Active            string
	Layer             actor.LayerState
	Forward           math.Vec3
	Camera            math.Vec3 // zero without a camera rig
	SmoothedMagnitude float32
	AimWeight         float32
	PlaybackRate      float32
}

// Activation records a change of the active behavior.
type Activation struct {
	Frame    int64
	Behavior string // empty when nothing is active
}

// Result is the outcome of a run.
type Result struct {
	Scenario    string
	Ticks       int
	Frames      []Frame
	Phases      []animgraph.Record
	Activations []Activation
	Spells      []*Spell
	Final       actor.State
}

// ActivationsOf returns the behavior names in activation order.
func (r *Result) ActivationsOf() []string {
	names := make([]string, 0, len(r.Activations))
	for _, a := range r.Activations {
		names = append(names, a.Behavior)
	}
	return names
}

// BuildController registers the motion behaviors in priority order: spell
// cast, strafe, pivot, idle.
func BuildController(st *actor.State, anim actor.Animator, al actor.Aliases, spells actor.SpellBook, m config.MotionConfig) (*controller.Controller, error) {
	c := controller.New(st, anim, al, spells)
	err := c.Register(
		behavior.NewSpellCast(m.SpellCast),
		behavior.NewStrafe(m.Strafe),
		behavior.NewPivot(m.Pivot),
		behavior.NewIdle(m.Idle),
	)
	if err != nil {
		return nil, err
	}
	c.Awake()
	return c, nil
}

// Runner executes scenarios against one motion configuration and graph.
type Runner struct {
	motion config.MotionConfig
	graph  *animgraph.Graph
	dt     float32
	log    *zap.Logger

	// CameraSpeed is the camera rig's follow rate in degrees per second.
	CameraSpeed float32

	// OnFrame, if set, is called after every tick.
	OnFrame func(Frame)
}

// NewRunner creates a runner. A nil graph uses the built-in one.
func NewRunner(motion config.MotionConfig, g *animgraph.Graph, dt float32) *Runner {
	if g == nil {
		g = animgraph.Default()
	}
	if dt <= 0 {
		dt = 1.0 / 60
	}
	return &Runner{
		motion: motion,
		graph:  g,
		dt:     dt,
		log:    logger.Named("sim"),

		CameraSpeed: 360,
	}
}

// Run plays sc from a fresh actor. It stops early with ctx.Err() when ctx
// is cancelled.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	st := actor.NewState(actor.ID(sc.Actor.ID))
	st.Position = sc.Actor.Position
	if sc.Actor.Facing != nil {
		st.Rotation = math.QuatLookRotation(*sc.Actor.Facing)
	}

	layer := animgraph.NewLayer(r.graph)
	book := NewSpellBook(sc.Spells)
	in := input.New()
	var rig *camera.ThirdPersonCamera

	ctrl, err := BuildController(st, layer, in, book, r.motion)
	if err != nil {
		return nil, err
	}

	res := &Result{Scenario: sc.Name}
	log := r.log.With(zap.String("scenario", sc.Name))
	log.Info("run started", zap.Int("ticks", sc.Ticks()), zap.Float32("dt", r.dt))

	var lastActive string
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		applyStep(st, step)
		rig = r.applyCamera(rig, step)
		in.Release(step.Release...)
		in.Press(step.Press...)
		in.Press(step.Hold...)

		for _, ms := range step.Messages {
			m := ms.build(st.ID)
			accepted := ctrl.Deliver(m)
			log.Debug("deliver",
				zap.Int("step", i),
				zap.Stringer("kind", m.Kind),
				zap.Bool("accepted", accepted))
		}

		for t := 0; t < step.Ticks; t++ {
			in.Update()
			if rig != nil {
				fwd := rig.Forward()
				st.CameraForward = &fwd
			}

			ctrl.Tick(r.dt)
			if t == 0 {
				in.Release(step.Press...)
			}
			layer.Step(r.dt, st.PlaybackRate)
			if rig != nil {
				rig.Follow(st.CameraHint, r.dt)
			}

			f := Frame{
				Index:             ctrl.Frame(),
				Layer:             layer.Layer(),
				Forward:           st.Forward(),
				SmoothedMagnitude: st.SmoothedMagnitude,
				AimWeight:         st.AimWeight,
				PlaybackRate:      st.PlaybackRate,
			}
			if rig != nil {
				f.Camera = rig.Forward()
			}
			if a := ctrl.Active(); a != nil {
				f.Active = a.Name()
			}
			if f.Active != lastActive {
				res.Activations = append(res.Activations, Activation{Frame: f.Index, Behavior: f.Active})
				lastActive = f.Active
			}
			res.Frames = append(res.Frames, f)
			res.Ticks++
			if r.OnFrame != nil {
				r.OnFrame(f)
			}
		}
	}

	res.Phases = layer.History()
	res.Spells = book.Casts()
	res.Final = *st
	log.Info("run finished",
		zap.Int("ticks", res.Ticks),
		zap.Int("phases", len(res.Phases)),
		zap.Int("spells", len(res.Spells)))
	return res, nil
}

// applyCamera places, keeps or removes the camera rig for a step.
func (r *Runner) applyCamera(rig *camera.ThirdPersonCamera, step Step) *camera.ThirdPersonCamera {
	switch {
	case step.NoCamera:
		return nil
	case step.Camera != nil:
		if rig == nil {
			rig = camera.NewThirdPersonCamera()
			rig.FollowSpeed = r.CameraSpeed
		}
		rig.LookAlong(*step.Camera)
	}
	return rig
}

func applyStep(st *actor.State, step Step) {
	if step.NoCamera {
		st.CameraForward = nil
	}
	if step.Input != nil {
		in := *step.Input
		if in.Length() > 1 {
			in = in.Normalize()
		}
		st.Input = in
	}
	if step.Magnitude != nil {
		st.InputMagnitude = *step.Magnitude
	} else if step.Input != nil {
		st.InputMagnitude = st.Input.Length()
	}
	if step.Grounded != nil {
		st.Grounded = *step.Grounded
	}
	if step.Target != nil {
		st.Target = &actor.Target{ID: actor.ID(step.Target.ID), Position: step.Target.Position}
	}
	if step.NoTarget {
		st.Target = nil
	}
}
