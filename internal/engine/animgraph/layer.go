package animgraph

import (
	"github.com/Faultbox/midgard-motion/internal/game/actor"
)

// Record is one phase command as the layer saw it.
type Record struct {
	Time       float32
	Phase      actor.Phase
	SubStyle   int
	Parameter  float32
	Transition string // empty when rejected
	Accepted   bool
}

// Layer is the runtime instance of a Graph. It implements actor.Animator.
type Layer struct {
	graph *Graph

	state     StateDef
	stateTime float32

	inTransition  bool
	transition    string
	next          string
	transTime     float32
	transDuration float32

	clock    float32
	subStyle int
	param    float32
	history  []Record
}

// NewLayer creates a layer resting in the graph's entry state.
func NewLayer(g *Graph) *Layer {
	return &Layer{graph: g, state: g.States[g.Entry]}
}

// Graph returns the definition backing the layer.
func (l *Layer) Graph() *Graph {
	return l.graph
}

// Layer reports the current state and transition.
func (l *Layer) Layer() actor.LayerState {
	ls := actor.LayerState{
		State:         l.state.Name,
		StateProgress: l.stateProgress(),
	}
	if l.inTransition {
		ls.InTransition = true
		ls.Transition = l.transition
		ls.Next = l.next
		ls.TransitionProgress = l.transProgress()
	}
	return ls
}

// SetPhase starts the transition bound to cmd.Phase. Unknown phases and
// phases not allowed from the current state are recorded and dropped.
// While a transition runs, sources are checked against its target.
func (l *Layer) SetPhase(cmd actor.PhaseCommand) {
	rec := Record{
		Time:      l.clock,
		Phase:     cmd.Phase,
		SubStyle:  cmd.SubStyle,
		Parameter: cmd.Parameter,
	}
	defer func() { l.history = append(l.history, rec) }()

	t, ok := l.graph.Phases[cmd.Phase]
	if !ok {
		return
	}
	current := l.state.Name
	if l.inTransition {
		current = l.next
	}
	if !t.Allows(current) {
		return
	}

	rec.Transition = t.Name
	rec.Accepted = true
	l.subStyle = cmd.SubStyle
	l.param = cmd.Parameter

	if cmd.Immediate || t.Duration <= 0 {
		l.enter(t.To)
		return
	}
	l.begin(t.Name, t.To, t.Duration)
}

// Step advances the layer by dt seconds scaled by rate. A zero rate
// freezes the layer.
func (l *Layer) Step(dt, rate float32) {
	if rate < 0 {
		rate = 0
	}
	l.clock += dt
	scaled := dt * rate
	if scaled <= 0 {
		return
	}

	if l.inTransition {
		l.transTime += scaled
		if l.transTime >= l.transDuration {
			l.enter(l.next)
		}
		return
	}

	l.stateTime += scaled
	s := l.state
	if s.Loop || s.Next == "" || s.Duration <= 0 {
		return
	}
	if l.stateTime >= s.Duration {
		l.begin(s.ExitName, s.Next, s.ExitDuration)
	}
}

// SubStyle returns the sub-style of the last accepted command.
func (l *Layer) SubStyle() int {
	return l.subStyle
}

// Parameter returns the parameter of the last accepted command.
func (l *Layer) Parameter() float32 {
	return l.param
}

// History returns every phase command received, oldest first.
func (l *Layer) History() []Record {
	return l.history
}

// Reset puts the layer back into the entry state and clears the history.
func (l *Layer) Reset() {
	*l = Layer{graph: l.graph, state: l.graph.States[l.graph.Entry]}
}

func (l *Layer) begin(name, to string, duration float32) {
	l.inTransition = true
	l.transition = name
	l.next = to
	l.transTime = 0
	l.transDuration = duration
}

func (l *Layer) enter(name string) {
	l.state = l.graph.States[name]
	l.stateTime = 0
	l.inTransition = false
	l.transition = ""
	l.next = ""
	l.transTime = 0
	l.transDuration = 0
}

func (l *Layer) stateProgress() float32 {
	d := l.state.Duration
	if d <= 0 {
		return 0
	}
	p := l.stateTime / d
	if l.state.Loop {
		return p - float32(int(p))
	}
	if p > 1 {
		return 1
	}
	return p
}

func (l *Layer) transProgress() float32 {
	if l.transDuration <= 0 {
		return 1
	}
	p := l.transTime / l.transDuration
	if p > 1 {
		return 1
	}
	return p
}
