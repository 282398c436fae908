package sim

import (
	"github.com/Faultbox/midgard-motion/internal/game/actor"
)

// Spell is a scripted spell instance. It counts cancellations so runs can
// check the at-most-once contract.
type Spell struct {
	Index     int
	Cancelled int

	spec SpellSpec
}

func (s *Spell) Cancel()          { s.Cancelled++ }
func (s *Spell) SubStyle() int    { return s.spec.SubStyle }
func (s *Spell) Channelled() bool { return s.spec.Channelled }

// SpellBook creates spells from the scenario's table and keeps every
// instance it handed out.
type SpellBook struct {
	specs map[int]SpellSpec
	casts []*Spell
}

// NewSpellBook builds a spell book from specs.
func NewSpellBook(specs []SpellSpec) *SpellBook {
	b := &SpellBook{specs: make(map[int]SpellSpec, len(specs))}
	for _, s := range specs {
		b.specs[s.Index] = s
	}
	return b
}

// Create implements actor.SpellBook.
func (b *SpellBook) Create(index int) (actor.Spell, bool) {
	spec, ok := b.specs[index]
	if !ok {
		return nil, false
	}
	s := &Spell{Index: index, spec: spec}
	b.casts = append(b.casts, s)
	return s, true
}

// Casts returns every spell created so far, oldest first.
func (b *SpellBook) Casts() []*Spell {
	return b.casts
}
