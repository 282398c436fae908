package behavior

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/engine/blend"
	"github.com/Faultbox/midgard-motion/internal/engine/steering"
	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/internal/game/message"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// SpellCastConfig tunes the spell-cast behavior.
type SpellCastConfig struct {
	Enabled bool `yaml:"enabled"`
	// CastAlias is the input alias that starts DefaultSpell.
	CastAlias    string `yaml:"cast_alias"`
	DefaultSpell int    `yaml:"default_spell"`
	// AimSpeed turns toward the cast direction, TargetSpeed toward a
	// locked target. Degrees per nominal tick; zero turns instantly.
	AimSpeed    float32 `yaml:"aim_speed"`
	TargetSpeed float32 `yaml:"target_speed"`
	// ResumeThreshold is the input magnitude that lets a cast started
	// while moving blend back into locomotion during recovery.
	ResumeThreshold float32 `yaml:"resume_threshold"`
	Phases          Phases  `yaml:"phases"`
	Anim            AnimIDs `yaml:"anim"`
}

// DefaultSpellCastConfig matches the default base-layer graph.
func DefaultSpellCastConfig() SpellCastConfig {
	return SpellCastConfig{
		Enabled:         true,
		CastAlias:       "Cast",
		AimSpeed:        12,
		TargetSpeed:     12,
		ResumeThreshold: 0.4,
		Phases: Phases{
			Start:     400,
			StartAlt:  401,
			Cancel:    402,
			Continue:  403,
			Interrupt: 404,
			Resume:    405,
		},
		Anim: AnimIDs{
			RampIn:      []string{"Cast.Enter", "Cast.EnterMoving"},
			RampOut:     []string{"Cast.End", "Cast.Resume"},
			Steady:      []string{"Cast.Begin", "Cast.Charge", "Cast.Release", "Cast.Recover"},
			Exit:        []string{"Idle", "Idle.Combat", "Pivot.Loop"},
			Interrupted: []string{"Cast.Interrupt", "Cast.Interrupted"},
			Hold:        []string{"Cast.Charge"},
			Recover:     []string{"Cast.Recover"},
		},
	}
}

type castRequest struct {
	index   int
	forward math.Vec3
}

// SpellCast plays a spell from request to recovery. It owns the spell
// instance for the duration of the cast.
type SpellCast struct {
	Lifecycle

	cfg   SpellCastConfig
	sets  animSets
	env   *Env
	table *message.Table

	aim    *steering.Solver
	combat *steering.Solver
	blend  *blend.Estimator

	spell    actor.Spell
	subStyle int

	pending *castRequest // from a message while inactive
	queued  *castRequest // chained cast while active

	castForward math.Vec3
	// wasTraversal is set when the cast took over from moving locomotion.
	wasTraversal bool
	fromStance   actor.Stance
	paused       bool
	savedRate    float32
	resumed      bool
	// byAlias casts channel only while the cast alias is held.
	byAlias bool
}

// NewSpellCast creates a spell-cast behavior.
func NewSpellCast(cfg SpellCastConfig) *SpellCast {
	sets := cfg.Anim.build()
	b := &SpellCast{
		Lifecycle: Lifecycle{Enabled: cfg.Enabled},
		cfg:       cfg,
		sets:      sets,
		aim:       steering.New(steering.ReachOnce, cfg.AimSpeed),
		combat:    steering.New(steering.Unlinked, cfg.TargetSpeed),
		blend:     blend.NewEstimator(sets.curves),
	}
	b.table = message.NewTable().
		On(message.KindCastRequest, false, b.onRequest).
		On(message.KindCastRequest, true, b.onChainedRequest).
		On(message.KindContinue, true, b.onContinue).
		On(message.KindCancel, true, b.onCancel).
		OnDamage(true, b.onDamage)
	return b
}

func (b *SpellCast) Name() string { return "spellcast" }

func (b *SpellCast) Trigger() Trigger { return TriggerInput }

func (b *SpellCast) Awake(env *Env) {
	b.env = env
	b.log = namedLogger(env, b.Name())
}

func (b *SpellCast) Steering() *steering.Solver { return b.aim }

func (b *SpellCast) BlendWeight() float32 { return b.blend.Weight() }

// HeldStance reports the casting stance.
func (b *SpellCast) HeldStance() actor.Stance { return actor.StanceSpellCasting }

// Spell returns the spell instance held by the current cast, if any.
func (b *SpellCast) Spell() actor.Spell { return b.spell }

// Pending reports whether a cast request waits for activation.
func (b *SpellCast) Pending() bool { return b.pending != nil }

func (b *SpellCast) TestActivate() bool {
	if !b.Enabled || !b.env.State.Grounded {
		return false
	}
	if b.pending != nil {
		return true
	}
	return b.cfg.CastAlias != "" && b.env.Aliases != nil && b.env.Aliases.Down(b.cfg.CastAlias)
}

func (b *SpellCast) Activate(previous Activatable) bool {
	st := b.env.State

	req := b.pending
	b.pending = nil
	byAlias := req == nil
	if byAlias {
		req = &castRequest{index: b.cfg.DefaultSpell, forward: b.defaultForward()}
	}

	spell, ok := b.resolve(req.index)
	if !ok {
		b.log.Debug("no spell resolved", zap.Int("index", req.index))
		return false
	}

	b.spell = spell
	b.subStyle = spell.SubStyle()
	b.queued = nil
	b.castForward = req.forward
	b.aim.Reset()
	b.combat.Reset()
	b.blend.Reset()
	b.paused = false
	b.resumed = false
	b.byAlias = byAlias

	b.wasTraversal = st.Stance == actor.StanceTraversal && st.ForcedInput != nil
	b.fromStance = st.Stance
	st.Stance = actor.StanceSpellCasting

	phase := b.cfg.Phases.Start
	if b.wasTraversal {
		phase = b.cfg.Phases.StartAlt
	}
	emit(b.env, phase, b.subStyle, 0)
	b.begin()

	b.log.Debug("activated",
		zap.Int("spell", req.index),
		zap.Int("sub_style", b.subStyle),
		zap.Bool("from_traversal", b.wasTraversal))
	return true
}

func (b *SpellCast) TestUpdate() bool {
	if b.JustActivated() {
		return true
	}
	st := b.env.State
	if st.Stance != actor.StanceSpellCasting {
		return false
	}
	layer := b.env.Animator.Layer()
	if b.Interrupted() {
		return !b.interruptSettled(layer, b.sets.interrupted, b.sets.exit)
	}
	if settledIn(b.sets.exit, layer) {
		// Still in the casting stance with another cast queued: continue.
		return b.queued != nil
	}
	return true
}

func (b *SpellCast) Update(dt float32, frame int64) {
	defer b.endFrame()
	st := b.env.State
	layer := b.env.Animator.Layer()

	// A paused layer would never reach the interrupted state.
	if b.Interrupted() {
		b.restoreRate()
	}
	b.reportInterrupt(b.env, layer, b.sets.interrupted, b.cfg.Phases.Interrupt, b.release)

	if !b.Interrupted() && b.queued != nil && settledIn(b.sets.exit, layer) {
		b.recast(frame)
		layer = b.env.Animator.Layer()
	}

	st.AimWeight = b.blend.Update(progressOf(layer))

	var d steering.Delta
	if st.HasTarget() {
		dir := st.DirectionToTarget()
		d = b.combat.Turn(st.Forward(), dir, dt)
		st.CameraHint = &dir
	} else if !b.aim.Reached() {
		d = b.aim.Turn(st.Forward(), b.castForward, dt)
	}
	if d.Degrees != 0 {
		st.Rotate(d.Rotation)
	}

	if !b.Interrupted() && !b.paused && b.spell != nil && b.spell.Channelled() && settledIn(b.sets.hold, layer) {
		b.savedRate = st.PlaybackRate
		st.PlaybackRate = 0
		b.paused = true
		b.log.Debug("channelling", zap.Int64("frame", frame))
	}
	if b.paused && b.byAlias && !b.aliasHeld() {
		b.proceed(b.subStyle)
		b.log.Debug("channel released", zap.Int64("frame", frame))
	}

	if b.wasTraversal && !b.resumed && !b.Interrupted() &&
		settledIn(b.sets.recover, layer) && st.InputMagnitude >= b.cfg.ResumeThreshold {
		st.ResumeMagnitude = st.InputMagnitude
		emit(b.env, b.cfg.Phases.Resume, b.subStyle, st.InputMagnitude)
		b.resumed = true
	}
}

func (b *SpellCast) Deactivate() {
	st := b.env.State
	b.restoreRate()
	b.release()
	st.Stance = b.fromStance
	st.CameraHint = nil
	b.queued = nil
	b.end()
	b.log.Debug("deactivated")
}

// HandleMessage routes a message through the behavior's dispatch table.
func (b *SpellCast) HandleMessage(m *message.Message) bool {
	if !m.AddressedTo(b.env.State.ID) {
		return false
	}
	return b.table.Dispatch(m, b.Active())
}

func (b *SpellCast) onRequest(m *message.Message) bool {
	if !b.Enabled {
		return false
	}
	b.pending = &castRequest{index: m.SpellIndex, forward: b.requestForward(m)}
	m.MarkHandled()
	b.log.Debug("cast requested", zap.Int("spell", m.SpellIndex))
	return true
}

func (b *SpellCast) onChainedRequest(m *message.Message) bool {
	if b.Interrupted() {
		return false
	}
	b.queued = &castRequest{index: m.SpellIndex, forward: b.requestForward(m)}
	m.MarkHandled()
	return true
}

// onContinue resumes a channel. A non-zero sub-style on the message
// overrides the spell's own.
func (b *SpellCast) onContinue(m *message.Message) bool {
	sub := b.subStyle
	if m.SubStyle != 0 {
		sub = m.SubStyle
	}
	b.proceed(sub)
	m.MarkHandled()
	return true
}

// proceed restores playback and emits the continue phase.
func (b *SpellCast) proceed(subStyle int) {
	b.restoreRate()
	emit(b.env, b.cfg.Phases.Continue, subStyle, 0)
}

func (b *SpellCast) aliasHeld() bool {
	return b.env.Aliases != nil && b.env.Aliases.Held(b.cfg.CastAlias)
}

func (b *SpellCast) onCancel(m *message.Message) bool {
	emit(b.env, b.cfg.Phases.Cancel, b.subStyle, 0)
	b.restoreRate()
	m.MarkHandled()
	return true
}

// onDamage handles every damage-family kind the same way.
func (b *SpellCast) onDamage(*message.Message) bool {
	b.Interrupt(ReasonDamage)
	b.restoreRate()
	b.release()
	return true
}

// recast starts a queued cast in place, keeping the stance.
func (b *SpellCast) recast(frame int64) {
	req := b.queued
	b.queued = nil
	spell, ok := b.resolve(req.index)
	if !ok {
		return
	}
	b.release()
	b.spell = spell
	b.subStyle = spell.SubStyle()
	b.castForward = req.forward
	b.aim.Reset()
	b.resumed = false
	b.byAlias = false
	emit(b.env, b.cfg.Phases.Start, b.subStyle, 0)
	b.log.Debug("chained cast", zap.Int("spell", req.index), zap.Int64("frame", frame))
}

func (b *SpellCast) resolve(index int) (actor.Spell, bool) {
	if b.env.Spells == nil {
		return nil, false
	}
	spell, ok := b.env.Spells.Create(index)
	if !ok || spell == nil {
		return nil, false
	}
	return spell, true
}

// release cancels and drops the spell. Safe to call repeatedly; the spell
// sees at most one Cancel.
func (b *SpellCast) release() {
	if b.spell == nil {
		return
	}
	spell := b.spell
	b.spell = nil
	spell.Cancel()
}

func (b *SpellCast) restoreRate() {
	if !b.paused {
		return
	}
	b.env.State.PlaybackRate = b.savedRate
	b.paused = false
}

// requestForward picks the cast direction: toward the defender, along the
// reported hit direction, or the actor's current forward.
func (b *SpellCast) requestForward(m *message.Message) math.Vec3 {
	st := b.env.State
	if m.DefenderPosition != nil {
		if dir := m.DefenderPosition.Sub(st.Position).ProjectOnPlane(math.Up); !dir.IsZero() {
			return dir
		}
	}
	if m.HitDirection != nil {
		if dir := m.HitDirection.ProjectOnPlane(math.Up); !dir.IsZero() {
			return dir
		}
	}
	return st.Forward()
}

func (b *SpellCast) defaultForward() math.Vec3 {
	st := b.env.State
	if st.CameraForward != nil && !st.CameraForward.ProjectOnPlane(math.Up).IsZero() {
		return *st.CameraForward
	}
	return st.Forward()
}
