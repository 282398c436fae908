// Package animgraph is a small in-process animation layer: named states
// with durations, transitions started by phase commands, and automatic
// exit transitions. It stands in for the host animation system.
package animgraph

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-motion/internal/game/actor"
)

//go:embed default_graph.yaml
var defaultGraph []byte

// RawState is a state as written in YAML.
type RawState struct {
	Name string `yaml:"name"`
	// Duration in seconds. Loops wrap, others advance to Next once done.
	Duration float32 `yaml:"duration"`
	Loop     bool    `yaml:"loop"`
	Next     string  `yaml:"next"`
	// ExitName names the automatic transition to Next. Defaults to
	// "<Name>-><Next>".
	ExitName     string  `yaml:"exit_name"`
	ExitDuration float32 `yaml:"exit_duration"`
}

// RawTransition is a phase-triggered transition as written in YAML.
type RawTransition struct {
	Phase    int      `yaml:"phase"`
	Name     string   `yaml:"name"`
	From     []string `yaml:"from"`
	To       string   `yaml:"to"`
	Duration float32  `yaml:"duration"`
}

// RawGraph is the YAML document.
type RawGraph struct {
	Layer             string          `yaml:"layer"`
	Entry             string          `yaml:"entry"`
	TransitionSeconds float32         `yaml:"transition_seconds"`
	States            []RawState      `yaml:"states"`
	Phases            []RawTransition `yaml:"phases"`
}

// StateDef is a compiled state.
type StateDef struct {
	Name         string
	Duration     float32
	Loop         bool
	Next         string
	ExitName     string
	ExitDuration float32
}

// TransitionDef is a compiled phase transition.
type TransitionDef struct {
	Phase    actor.Phase
	Name     string
	From     map[string]struct{} // empty means any state
	To       string
	Duration float32
}

// Allows reports whether the transition may start from state.
func (t TransitionDef) Allows(state string) bool {
	if len(t.From) == 0 {
		return true
	}
	_, ok := t.From[state]
	return ok
}

// Graph is an immutable compiled layer definition. One Graph can back any
// number of Layers.
type Graph struct {
	Name   string
	Entry  string
	States map[string]StateDef
	Phases map[actor.Phase]TransitionDef
}

// DefaultTransitionSeconds is used when neither the transition nor the
// graph specify a duration.
const DefaultTransitionSeconds = 0.1

// Compile validates raw and builds a Graph.
func Compile(raw RawGraph) (*Graph, error) {
	if raw.Entry == "" {
		return nil, errors.New("animgraph: missing entry state")
	}
	blendTime := raw.TransitionSeconds
	if blendTime <= 0 {
		blendTime = DefaultTransitionSeconds
	}

	g := &Graph{
		Name:   raw.Layer,
		Entry:  raw.Entry,
		States: make(map[string]StateDef, len(raw.States)),
		Phases: make(map[actor.Phase]TransitionDef, len(raw.Phases)),
	}

	for _, s := range raw.States {
		if s.Name == "" {
			return nil, errors.New("animgraph: state without a name")
		}
		if _, dup := g.States[s.Name]; dup {
			return nil, errors.Errorf("animgraph: duplicate state %q", s.Name)
		}
		if s.Duration < 0 || s.ExitDuration < 0 {
			return nil, errors.Errorf("animgraph: state %q: negative duration", s.Name)
		}
		if !s.Loop && s.Next != "" && s.Duration <= 0 {
			return nil, errors.Errorf("animgraph: state %q: next %q needs a duration", s.Name, s.Next)
		}
		def := StateDef{
			Name:         s.Name,
			Duration:     s.Duration,
			Loop:         s.Loop,
			Next:         s.Next,
			ExitName:     s.ExitName,
			ExitDuration: s.ExitDuration,
		}
		if def.Next != "" {
			if def.ExitName == "" {
				def.ExitName = def.Name + "->" + def.Next
			}
			if def.ExitDuration == 0 {
				def.ExitDuration = blendTime
			}
		}
		g.States[s.Name] = def
	}

	if _, ok := g.States[g.Entry]; !ok {
		return nil, errors.Errorf("animgraph: unknown entry state %q", g.Entry)
	}
	for _, s := range g.States {
		if s.Next == "" {
			continue
		}
		if _, ok := g.States[s.Next]; !ok {
			return nil, errors.Errorf("animgraph: state %q: unknown next %q", s.Name, s.Next)
		}
	}

	for _, p := range raw.Phases {
		phase := actor.Phase(p.Phase)
		if phase == 0 {
			return nil, errors.Errorf("animgraph: transition %q: phase 0 is reserved", p.Name)
		}
		if _, dup := g.Phases[phase]; dup {
			return nil, errors.Errorf("animgraph: duplicate phase %d", p.Phase)
		}
		if _, ok := g.States[p.To]; !ok {
			return nil, errors.Errorf("animgraph: phase %d: unknown target %q", p.Phase, p.To)
		}
		if p.Duration < 0 {
			return nil, errors.Errorf("animgraph: phase %d: negative duration", p.Phase)
		}
		def := TransitionDef{
			Phase:    phase,
			Name:     p.Name,
			From:     make(map[string]struct{}, len(p.From)),
			To:       p.To,
			Duration: p.Duration,
		}
		if def.Name == "" {
			def.Name = "phase->" + p.To
		}
		if def.Duration == 0 {
			def.Duration = blendTime
		}
		for _, from := range p.From {
			if _, ok := g.States[from]; !ok {
				return nil, errors.Errorf("animgraph: phase %d: unknown source %q", p.Phase, from)
			}
			def.From[from] = struct{}{}
		}
		g.Phases[phase] = def
	}

	return g, nil
}

// Parse decodes and compiles a YAML graph.
func Parse(data []byte) (*Graph, error) {
	var raw RawGraph
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "animgraph: decode")
	}
	return Compile(raw)
}

// Load reads and compiles a YAML graph file.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "animgraph: read %s", path)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "animgraph: %s", path)
	}
	return g, nil
}

// Default returns the built-in base layer matching the default behavior
// configuration.
func Default() *Graph {
	g, err := Parse(defaultGraph)
	if err != nil {
		panic(errors.Wrap(err, "animgraph: embedded default graph"))
	}
	return g
}
