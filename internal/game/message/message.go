// Package message defines the asynchronous notifications behaviors react
// to and a dispatch table keyed by message kind and behavior activity.
package message

import (
	"github.com/Faultbox/midgard-motion/internal/game/actor"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Kind tags the variant carried by a Message.
type Kind uint8

const (
	KindNone Kind = iota
	// KindCastRequest is the pre-cast negotiation: an attack/cast was
	// requested for the addressed actor.
	KindCastRequest
	// KindContinue resumes a paused (channelled) cast.
	KindContinue
	// KindCancel deactivates the running cast.
	KindCancel
	KindDefenderDamaged
	KindDefenderBlocked
	KindDefenderKilled
	// KindDamaged is a generic damage notification for the actor.
	KindDamaged
)

var kindNames = map[Kind]string{
	KindNone:            "none",
	KindCastRequest:     "cast-request",
	KindContinue:        "continue",
	KindCancel:          "cancel",
	KindDefenderDamaged: "defender-damaged",
	KindDefenderBlocked: "defender-blocked",
	KindDefenderKilled:  "defender-killed",
	KindDamaged:         "damaged",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a name produced by String back to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindNone, false
}

// DamageKinds are handled identically by every behavior: interrupt and
// release the owned sub-resource.
var DamageKinds = []Kind{KindDefenderDamaged, KindDefenderBlocked, KindDefenderKilled, KindDamaged}

// IsDamage reports whether k belongs to the damage family.
func (k Kind) IsDamage() bool {
	for _, d := range DamageKinds {
		if k == d {
			return true
		}
	}
	return false
}

// Message is a tagged union; which optional fields are meaningful depends
// on Kind.
type Message struct {
	Kind Kind
	To   actor.ID // addressed actor, 0 for any
	From actor.ID

	// Cast request
	SpellIndex       int
	DefenderPosition *math.Vec3
	HitDirection     *math.Vec3

	// Continue
	SubStyle int

	handled bool
}

// Handled reports whether a router consumed the message.
func (m *Message) Handled() bool {
	return m.handled
}

// MarkHandled stops further routing.
func (m *Message) MarkHandled() {
	m.handled = true
}

// AddressedTo reports whether the message targets id.
func (m *Message) AddressedTo(id actor.ID) bool {
	return m.To == 0 || m.To == id
}

// CastRequest builds a cast request for actor to.
func CastRequest(to actor.ID, spellIndex int) *Message {
	return &Message{Kind: KindCastRequest, To: to, SpellIndex: spellIndex}
}

// Continue builds a continue message.
func Continue(to actor.ID) *Message {
	return &Message{Kind: KindContinue, To: to}
}

// Cancel builds a cancel message.
func Cancel(to actor.ID) *Message {
	return &Message{Kind: KindCancel, To: to}
}

// Damage builds a damage-family message.
func Damage(kind Kind, to, from actor.ID) *Message {
	return &Message{Kind: kind, To: to, From: from}
}
