// Package behavior implements the motion behaviors (idle, pivot and strafe
// locomotion, spell casting) that a controller activates, updates and
// deactivates every tick.
//
// Each behavior is a self-contained state machine:
//
//	Inactive -> Activating -> Active -> Interrupted -> Inactive
//
// TestActivate and TestUpdate are pure predicates. Activate, Update and
// Deactivate mutate the shared actor.State. Interrupt only flips a flag;
// the interrupt phase is emitted lazily by the next Update.
package behavior

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/engine/blend"
	"github.com/Faultbox/midgard-motion/internal/engine/steering"
	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/internal/game/message"
	"github.com/Faultbox/midgard-motion/internal/logger"
)

// Trigger tells the controller which activation pass a behavior joins.
type Trigger int

const (
	// TriggerInput behaviors start on explicit input or a pending request.
	TriggerInput Trigger = iota
	// TriggerDefault behaviors start only when nothing else is active. They
	// are tested after every TriggerInput behavior.
	TriggerDefault
)

// Reason records why a behavior was interrupted.
type Reason int

const (
	ReasonRequested Reason = iota
	ReasonDamage
	ReasonTakeover
)

func (r Reason) String() string {
	switch r {
	case ReasonRequested:
		return "requested"
	case ReasonDamage:
		return "damage"
	case ReasonTakeover:
		return "takeover"
	default:
		return "unknown"
	}
}

// Env is what a behavior borrows from its controller. It is handed over
// once in Awake.
type Env struct {
	State    *actor.State
	Animator actor.Animator
	Aliases  actor.Aliases
	Spells   actor.SpellBook
	Log      *zap.Logger
}

// Activatable is the state-machine contract every behavior implements.
type Activatable interface {
	Name() string
	Trigger() Trigger

	Awake(env *Env)

	TestActivate() bool
	Activate(previous Activatable) bool
	TestUpdate() bool
	Update(dt float32, frame int64)
	Interrupt(reason Reason) bool
	TestInterruption(candidate Activatable) bool
	Deactivate()

	Active() bool
	Interrupted() bool
}

// Steerable behaviors expose their steering solver.
type Steerable interface {
	Steering() *steering.Solver
}

// BlendWeighted behaviors expose their procedural blend weight.
type BlendWeighted interface {
	BlendWeight() float32
}

// MessageHandler behaviors react to routed messages.
type MessageHandler interface {
	HandleMessage(m *message.Message) bool
}

// StanceHolder behaviors own a stance while active. The next behavior uses
// it to pick its start-phase variant.
type StanceHolder interface {
	HeldStance() actor.Stance
}

// Phases is a behavior's phase descriptor table. Values are opaque to the
// behavior and unique within one animation layer. Zero means "not used".
type Phases struct {
	Start     actor.Phase `yaml:"start"`
	StartAlt  actor.Phase `yaml:"start_alt"`
	Stop      actor.Phase `yaml:"stop"`
	Cancel    actor.Phase `yaml:"cancel"`
	Continue  actor.Phase `yaml:"continue"`
	Interrupt actor.Phase `yaml:"interrupt"`
	Resume    actor.Phase `yaml:"resume"`
}

// AnimIDs is the declarative list of layer identifiers a behavior tests
// against. It is turned into lookup sets once at construction.
type AnimIDs struct {
	RampIn      []string `yaml:"ramp_in"`     // transitions
	RampOut     []string `yaml:"ramp_out"`    // transitions
	Steady      []string `yaml:"steady"`      // states
	Exit        []string `yaml:"exit"`        // terminal states
	Stopped     []string `yaml:"stopped"`     // idle/stopped states
	Interrupted []string `yaml:"interrupted"` // states or transitions
	Hold        []string `yaml:"hold"`        // states that pause channelled casts
	Recover     []string `yaml:"recover"`     // states where movement may resume
}

type animSets struct {
	curves      blend.Curves
	exit        blend.Set
	stopped     blend.Set
	interrupted blend.Set
	hold        blend.Set
	recover     blend.Set
}

func (a AnimIDs) build() animSets {
	return animSets{
		curves: blend.Curves{
			RampIn:  blend.NewSet(a.RampIn...),
			RampOut: blend.NewSet(a.RampOut...),
			Steady:  blend.NewSet(a.Steady...),
		},
		exit:        blend.NewSet(a.Exit...),
		stopped:     blend.NewSet(a.Stopped...),
		interrupted: blend.NewSet(a.Interrupted...),
		hold:        blend.NewSet(a.Hold...),
		recover:     blend.NewSet(a.Recover...),
	}
}

// settledIn reports whether the layer rests in one of the states.
func settledIn(s blend.Set, l actor.LayerState) bool {
	return !l.InTransition && s.Has(l.State)
}

// touches reports whether the layer is in, or moving through or into, any
// identifier of s.
func touches(s blend.Set, l actor.LayerState) bool {
	if s.Has(l.State) {
		return true
	}
	return l.InTransition && (s.Has(l.Transition) || s.Has(l.Next))
}

func progressOf(l actor.LayerState) blend.Progress {
	return blend.Progress{
		State:              l.State,
		StateProgress:      l.StateProgress,
		InTransition:       l.InTransition,
		Transition:         l.Transition,
		TransitionProgress: l.TransitionProgress,
	}
}

// heldStance returns the stance previous owned, if it declares one.
func heldStance(previous Activatable) (actor.Stance, bool) {
	if h, ok := previous.(StanceHolder); ok {
		return h.HeldStance(), true
	}
	return 0, false
}

func emit(env *Env, phase actor.Phase, subStyle int, param float32) {
	if phase == 0 || env.Animator == nil {
		return
	}
	env.Animator.SetPhase(actor.PhaseCommand{Phase: phase, SubStyle: subStyle, Parameter: param})
}

func namedLogger(env *Env, name string) *zap.Logger {
	if env.Log != nil {
		return env.Log.Named(name)
	}
	return logger.Named(name)
}
