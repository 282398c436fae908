// Package controller drives one actor's motion behaviors: it picks which
// behavior runs each tick, hands over between them, and routes messages.
package controller

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/internal/game/behavior"
	"github.com/Faultbox/midgard-motion/internal/game/message"
	"github.com/Faultbox/midgard-motion/internal/logger"
)

// Controller owns the behavior registry and the actor state. Registration
// order is priority order: earlier behaviors are tested first and may take
// over from later ones.
type Controller struct {
	env       behavior.Env
	behaviors []behavior.Activatable
	byName    map[string]behavior.Activatable

	active behavior.Activatable
	frame  int64
	awake  bool

	log *zap.Logger
}

// New creates a controller for st. aliases and spells may be nil.
func New(st *actor.State, anim actor.Animator, aliases actor.Aliases, spells actor.SpellBook) *Controller {
	if aliases == nil {
		aliases = actor.NoAliases{}
	}
	log := logger.Named("controller", zap.Uint32("actor", uint32(st.ID)))
	return &Controller{
		env: behavior.Env{
			State:    st,
			Animator: anim,
			Aliases:  aliases,
			Spells:   spells,
			Log:      log,
		},
		byName: make(map[string]behavior.Activatable),
		log:    log,
	}
}

// Register appends behaviors in priority order. Behaviors registered after
// Awake are awoken immediately.
func (c *Controller) Register(bs ...behavior.Activatable) error {
	for _, b := range bs {
		if b == nil {
			return errors.New("nil behavior")
		}
		if _, dup := c.byName[b.Name()]; dup {
			return errors.Errorf("behavior %q already registered", b.Name())
		}
		c.behaviors = append(c.behaviors, b)
		c.byName[b.Name()] = b
		if c.awake {
			b.Awake(&c.env)
		}
	}
	return nil
}

// Awake hands every registered behavior its environment. Calling it again
// is a no-op.
func (c *Controller) Awake() {
	if c.awake {
		return
	}
	for _, b := range c.behaviors {
		b.Awake(&c.env)
	}
	c.awake = true
	c.log.Debug("awake", zap.Int("behaviors", len(c.behaviors)))
}

// State returns the actor state the controller owns.
func (c *Controller) State() *actor.State {
	return c.env.State
}

// Active returns the running behavior, or nil.
func (c *Controller) Active() behavior.Activatable {
	return c.active
}

// Behavior looks up a registered behavior by name.
func (c *Controller) Behavior(name string) (behavior.Activatable, bool) {
	b, ok := c.byName[name]
	return b, ok
}

// Behaviors returns the registry in priority order.
func (c *Controller) Behaviors() []behavior.Activatable {
	return c.behaviors
}

// Frame returns the index of the last tick.
func (c *Controller) Frame() int64 {
	return c.frame
}

// Tick advances the actor by dt seconds.
func (c *Controller) Tick(dt float32) {
	if !c.awake {
		c.Awake()
	}
	c.frame++

	if c.active != nil {
		c.tryTakeover()
	}

	var previous behavior.Activatable
	if c.active != nil && !c.active.TestUpdate() {
		previous = c.deactivate()
	}

	if c.active == nil {
		if !c.activateFirst(behavior.TriggerInput, previous) {
			c.activateFirst(behavior.TriggerDefault, previous)
		}
	}

	if c.active != nil {
		c.active.Update(dt, c.frame)
	}
}

// Deliver routes a message to the active behavior first, then to inactive
// behaviors in priority order, until one marks it handled. It reports
// whether any behavior accepted the message.
func (c *Controller) Deliver(m *message.Message) bool {
	if m == nil || m.Handled() || !m.AddressedTo(c.env.State.ID) {
		return false
	}

	accepted := false
	if c.active != nil {
		accepted = c.route(c.active, m)
	}
	for _, b := range c.behaviors {
		if m.Handled() {
			break
		}
		if b == c.active {
			continue
		}
		if c.route(b, m) {
			accepted = true
		}
	}

	c.log.Debug("message",
		zap.Stringer("kind", m.Kind),
		zap.Bool("accepted", accepted),
		zap.Bool("handled", m.Handled()))
	return accepted
}

// Interrupt interrupts the active behavior. It reports whether the
// behavior accepted the interruption.
func (c *Controller) Interrupt(reason behavior.Reason) bool {
	if c.active == nil {
		return false
	}
	return c.active.Interrupt(reason)
}

func (c *Controller) route(b behavior.Activatable, m *message.Message) bool {
	h, ok := b.(behavior.MessageHandler)
	if !ok {
		return false
	}
	return h.HandleMessage(m)
}

// tryTakeover lets a higher-priority input behavior replace the active one.
func (c *Controller) tryTakeover() {
	st := c.env.State
	for _, candidate := range c.behaviors {
		if candidate == c.active {
			return
		}
		if candidate.Trigger() != behavior.TriggerInput || !candidate.TestActivate() {
			continue
		}

		forced := st.ForcedInput
		if !c.active.TestInterruption(candidate) {
			st.ForcedInput = forced
			continue
		}
		if !candidate.Activate(c.active) {
			st.ForcedInput = forced
			continue
		}

		previous := c.active
		previous.Interrupt(behavior.ReasonTakeover)
		previous.Deactivate()
		c.active = candidate
		c.log.Debug("takeover",
			zap.String("from", previous.Name()),
			zap.String("to", candidate.Name()),
			zap.Int64("frame", c.frame))
		return
	}
}

// activateFirst starts the first behavior of the given trigger kind that
// accepts. previous is the behavior that ended this tick, if any.
func (c *Controller) activateFirst(trigger behavior.Trigger, previous behavior.Activatable) bool {
	for _, b := range c.behaviors {
		if b.Trigger() != trigger || !b.TestActivate() {
			continue
		}
		if !b.Activate(previous) {
			continue
		}
		c.active = b
		if trigger == behavior.TriggerDefault {
			// Nothing picked the handover up; drop it.
			c.env.State.ForcedInput = nil
		}
		c.log.Debug("activate", zap.String("behavior", b.Name()), zap.Int64("frame", c.frame))
		return true
	}
	return false
}

func (c *Controller) deactivate() behavior.Activatable {
	old := c.active
	old.Deactivate()
	c.active = nil
	c.log.Debug("deactivate", zap.String("behavior", old.Name()), zap.Int64("frame", c.frame))
	return old
}
