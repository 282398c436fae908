package actor

// Phase is an opaque animation-phase value understood only by the
// animation graph.
type Phase int

// PhaseCommand is a fire-and-forget request to the animation layer.
type PhaseCommand struct {
	Phase     Phase
	SubStyle  int
	Parameter float32
	Immediate bool
}

// LayerState is what the animation layer reports about itself. State and
// transition identifiers are opaque and only used for set membership.
type LayerState struct {
	State              string
	StateProgress      float32
	InTransition       bool
	Transition         string
	Next               string
	TransitionProgress float32
}

// Animator is the host animation layer that owns the actor's base layer.
type Animator interface {
	Layer() LayerState
	SetPhase(cmd PhaseCommand)
}

// Aliases exposes input-alias state. Down is edge triggered (true on the
// frame the alias was pressed), Held is level triggered.
type Aliases interface {
	Down(alias string) bool
	Held(alias string) bool
}

// Spell is a cast owned by the spell-cast behavior for its duration.
type Spell interface {
	// Cancel aborts the spell. The owner calls it at most once.
	Cancel()
	// SubStyle selects the animation variant for the spell.
	SubStyle() int
	// Channelled spells pause playback on the charge state until a
	// continue message arrives.
	Channelled() bool
}

// SpellBook resolves a spell index to a new spell instance.
type SpellBook interface {
	Create(index int) (Spell, bool)
}

// NoAliases is an Aliases with nothing pressed.
type NoAliases struct{}

func (NoAliases) Down(string) bool { return false }
func (NoAliases) Held(string) bool { return false }
