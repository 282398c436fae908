package behavior

import (
	"github.com/Faultbox/midgard-motion/internal/game/actor"
)

type fakeAnimator struct {
	layer actor.LayerState
	cmds  []actor.PhaseCommand
}

func (a *fakeAnimator) Layer() actor.LayerState { return a.layer }

func (a *fakeAnimator) SetPhase(cmd actor.PhaseCommand) { a.cmds = append(a.cmds, cmd) }

func (a *fakeAnimator) settle(state string) {
	a.layer = actor.LayerState{State: state}
}

func (a *fakeAnimator) count(p actor.Phase) int {
	n := 0
	for _, c := range a.cmds {
		if c.Phase == p {
			n++
		}
	}
	return n
}

func (a *fakeAnimator) last() (actor.PhaseCommand, bool) {
	if len(a.cmds) == 0 {
		return actor.PhaseCommand{}, false
	}
	return a.cmds[len(a.cmds)-1], true
}

type fakeSpell struct {
	cancels    int
	subStyle   int
	channelled bool
}

func (s *fakeSpell) Cancel()          { s.cancels++ }
func (s *fakeSpell) SubStyle() int    { return s.subStyle }
func (s *fakeSpell) Channelled() bool { return s.channelled }

// fakeBook hands out a new spell per Create for every known index.
type fakeBook struct {
	known   map[int]fakeSpell
	created []*fakeSpell
}

func (b *fakeBook) Create(index int) (actor.Spell, bool) {
	proto, ok := b.known[index]
	if !ok {
		return nil, false
	}
	s := proto
	b.created = append(b.created, &s)
	return &s, true
}

type fakeAliases map[string]bool

func (a fakeAliases) Down(alias string) bool { return a[alias] }
func (a fakeAliases) Held(alias string) bool { return a[alias] }

func newTestEnv() (*Env, *fakeAnimator, *fakeBook) {
	anim := &fakeAnimator{}
	book := &fakeBook{known: map[int]fakeSpell{
		0: {subStyle: 1},
		1: {subStyle: 2, channelled: true},
	}}
	env := &Env{
		State:    actor.NewState(1),
		Animator: anim,
		Aliases:  actor.NoAliases{},
		Spells:   book,
	}
	return env, anim, book
}
