// Package sim runs motion scenarios headless: a scripted sequence of
// inputs and messages is fed to a controller backed by an animgraph
// layer, and every phase command is recorded.
package sim

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/internal/game/message"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Scenario is a scripted run for one actor.
type Scenario struct {
	Name   string      `yaml:"name"`
	Actor  ActorSpec   `yaml:"actor"`
	Spells []SpellSpec `yaml:"spells"`
	Steps  []Step      `yaml:"steps"`
}

// ActorSpec is the actor's starting state.
type ActorSpec struct {
	ID       uint32     `yaml:"id"`
	Position math.Vec3  `yaml:"position"`
	Facing   *math.Vec3 `yaml:"facing"`
}

// SpellSpec describes one entry of the scenario's spell book.
type SpellSpec struct {
	Index      int  `yaml:"index"`
	SubStyle   int  `yaml:"sub_style"`
	Channelled bool `yaml:"channelled"`
}

// TargetSpec locks a combat target.
type TargetSpec struct {
	ID       uint32    `yaml:"id"`
	Position math.Vec3 `yaml:"position"`
}

// MessageSpec is a message delivered at the start of a step.
type MessageSpec struct {
	Kind     string     `yaml:"kind"`
	Spell    int        `yaml:"spell"`
	SubStyle int        `yaml:"sub_style"` // continue only, 0 keeps the spell's
	From     uint32     `yaml:"from"`
	To       uint32     `yaml:"to"` // 0 addresses the scenario actor
	Defender *math.Vec3 `yaml:"defender"`
	Hit      *math.Vec3 `yaml:"hit"`
}

// Step holds inputs for a number of ticks. Nil fields keep the previous
// value.
type Step struct {
	Ticks     int         `yaml:"ticks"`
	Input     *math.Vec2  `yaml:"input"`
	Magnitude *float32    `yaml:"magnitude"`
	Grounded  *bool       `yaml:"grounded"`
	Camera    *math.Vec3  `yaml:"camera"`
	NoCamera  bool        `yaml:"no_camera"`
	Target    *TargetSpec `yaml:"target"`
	NoTarget  bool        `yaml:"no_target"`
	// Press lists aliases that go down on the first tick of the step and
	// come back up on the next. Hold keeps them down until a later
	// step's Release.
	Press    []string      `yaml:"press"`
	Hold     []string      `yaml:"hold"`
	Release  []string      `yaml:"release"`
	Messages []MessageSpec `yaml:"messages"`
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "sim: decode scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "sim: read %s", path)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, errors.Wrapf(err, "sim: %s", path)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Validate checks step and message shapes.
func (sc *Scenario) Validate() error {
	if sc.Actor.ID == 0 {
		sc.Actor.ID = 1
	}
	seen := make(map[int]bool, len(sc.Spells))
	for _, s := range sc.Spells {
		if seen[s.Index] {
			return errors.Errorf("sim: duplicate spell index %d", s.Index)
		}
		seen[s.Index] = true
	}
	if len(sc.Steps) == 0 {
		return errors.New("sim: scenario has no steps")
	}
	for i, st := range sc.Steps {
		if st.Ticks < 0 {
			return errors.Errorf("sim: step %d: negative tick count", i)
		}
		if st.Camera != nil && st.NoCamera {
			return errors.Errorf("sim: step %d: camera and no_camera both set", i)
		}
		if st.Target != nil && st.NoTarget {
			return errors.Errorf("sim: step %d: target and no_target both set", i)
		}
		for _, m := range st.Messages {
			if _, ok := message.ParseKind(m.Kind); !ok || m.Kind == "none" {
				return errors.Errorf("sim: step %d: unknown message kind %q", i, m.Kind)
			}
		}
	}
	return nil
}

// Ticks returns the total number of ticks the scenario runs.
func (sc *Scenario) Ticks() int {
	n := 0
	for _, st := range sc.Steps {
		n += st.Ticks
	}
	return n
}

func (m MessageSpec) build(self actor.ID) *message.Message {
	kind, _ := message.ParseKind(m.Kind)
	to := actor.ID(m.To)
	if to == 0 {
		to = self
	}
	msg := &message.Message{
		Kind:       kind,
		To:         to,
		From:       actor.ID(m.From),
		SpellIndex: m.Spell,
		SubStyle:   m.SubStyle,
	}
	if m.Defender != nil {
		d := *m.Defender
		msg.DefenderPosition = &d
	}
	if m.Hit != nil {
		h := *m.Hit
		msg.HitDirection = &h
	}
	return msg
}
