package behavior

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/engine/blend"
	"github.com/Faultbox/midgard-motion/internal/game/actor"
)

// Lifecycle is the bookkeeping shared by all behaviors. Embed it.
type Lifecycle struct {
	// Enabled gates TestActivate.
	Enabled bool

	active             bool
	interrupted        bool
	interruptReported  bool
	activatedThisFrame bool
	reason             Reason
	log                *zap.Logger
}

// Active reports whether the behavior is running (possibly interrupted).
func (l *Lifecycle) Active() bool {
	return l.active
}

// Interrupted reports whether the behavior has been interrupted during the
// current activation.
func (l *Lifecycle) Interrupted() bool {
	return l.interrupted
}

// InterruptReported reports whether the interrupt phase went out.
func (l *Lifecycle) InterruptReported() bool {
	return l.interruptReported
}

// JustActivated is the latch that forces TestUpdate to pass on the
// activation frame.
func (l *Lifecycle) JustActivated() bool {
	return l.activatedThisFrame
}

// Interrupt marks the behavior interrupted. It returns false when the
// behavior is inactive or already interrupted. It does not emit anything.
func (l *Lifecycle) Interrupt(reason Reason) bool {
	if !l.active || l.interrupted {
		return false
	}
	l.interrupted = true
	l.reason = reason
	if l.log != nil {
		l.log.Debug("interrupted", zap.Stringer("reason", reason))
	}
	return true
}

// TestInterruption allows any takeover by default.
func (l *Lifecycle) TestInterruption(Activatable) bool {
	return true
}

func (l *Lifecycle) begin() {
	l.active = true
	l.interrupted = false
	l.interruptReported = false
	l.activatedThisFrame = true
}

func (l *Lifecycle) end() {
	l.active = false
	l.interrupted = false
	l.interruptReported = false
	l.activatedThisFrame = false
}

func (l *Lifecycle) endFrame() {
	l.activatedThisFrame = false
}

// reportInterrupt emits the interrupt phase at most once per activation.
// The phase is skipped when the layer already shows the interruption;
// release runs either way.
func (l *Lifecycle) reportInterrupt(env *Env, layer actor.LayerState, shown blend.Set, phase actor.Phase, release func()) {
	if !l.interrupted || l.interruptReported {
		return
	}
	if !touches(shown, layer) {
		emit(env, phase, 0, 0)
	}
	if release != nil {
		release()
	}
	l.interruptReported = true
}

// interruptSettled reports whether an interrupted behavior may be let go:
// the interrupt was reported and the layer rests in an interrupted or exit
// state. With neither configured there is nothing to wait for.
func (l *Lifecycle) interruptSettled(layer actor.LayerState, shown, exit blend.Set) bool {
	if !l.interrupted || !l.interruptReported {
		return false
	}
	if len(shown) == 0 && len(exit) == 0 {
		return true
	}
	return settledIn(shown, layer) || settledIn(exit, layer)
}
