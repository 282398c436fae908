package message

// Key selects a handler by message kind and whether the owning behavior is
// currently active.
type Key struct {
	Kind   Kind
	Active bool
}

// Handler reacts to a message. It returns false when the message does not
// apply after all, leaving it for other routers. Handlers only set flags
// and emit phase signals; they never call back into the controller.
type Handler func(m *Message) bool

// Table is a per-behavior dispatch table built once at construction.
type Table struct {
	handlers map[Key]Handler
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{handlers: make(map[Key]Handler)}
}

// On registers h for kind while the behavior's activity equals active.
func (t *Table) On(kind Kind, active bool, h Handler) *Table {
	t.handlers[Key{Kind: kind, Active: active}] = h
	return t
}

// OnDamage registers h for every damage-family kind.
func (t *Table) OnDamage(active bool, h Handler) *Table {
	for _, k := range DamageKinds {
		t.On(k, active, h)
	}
	return t
}

// Has reports whether a handler is registered for key.
func (t *Table) Has(key Key) bool {
	_, ok := t.handlers[key]
	return ok
}

// Dispatch runs the handler for the message, if any. Already handled
// messages and unknown keys are ignored. It returns whether a handler ran
// and accepted the message.
func (t *Table) Dispatch(m *Message, active bool) bool {
	if m == nil || m.handled {
		return false
	}
	h, ok := t.handlers[Key{Kind: m.Kind, Active: active}]
	if !ok {
		return false
	}
	return h(m)
}
