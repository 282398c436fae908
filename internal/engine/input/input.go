// Package input tracks named input aliases between frames.
package input

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventPress
	EventRelease
)

// Event represents a queued change of one alias.
type Event struct {
	Type  EventType
	Alias string
}

// Input buffers alias events and applies them once per frame. Down is
// true only on the frame an alias went down; Held stays true until it is
// released.
type Input struct {
	pending []Event
	events  []Event
	held    map[string]bool
	down    map[string]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		pending: make([]Event, 0, 16),
		events:  make([]Event, 0, 16),
		held:    make(map[string]bool),
		down:    make(map[string]bool),
	}
}

// Push queues an event for the next Update.
func (i *Input) Push(e Event) {
	if e.Type == EventNone || e.Alias == "" {
		return
	}
	i.pending = append(i.pending, e)
}

// Press queues a press of each alias.
func (i *Input) Press(aliases ...string) {
	for _, a := range aliases {
		i.Push(Event{Type: EventPress, Alias: a})
	}
}

// Release queues a release of each alias.
func (i *Input) Release(aliases ...string) {
	for _, a := range aliases {
		i.Push(Event{Type: EventRelease, Alias: a})
	}
}

// Update applies the queued events and starts a new frame.
func (i *Input) Update() {
	i.events = append(i.events[:0], i.pending...) // Clear previous events
	i.pending = i.pending[:0]
	clear(i.down)

	for _, e := range i.events {
		switch e.Type {
		case EventPress:
			if !i.held[e.Alias] {
				i.down[e.Alias] = true
			}
			i.held[e.Alias] = true
		case EventRelease:
			delete(i.held, e.Alias)
		}
	}
}

// Events returns the events applied by the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Down reports whether alias went down this frame.
func (i *Input) Down(alias string) bool { return i.down[alias] }

// Held reports whether alias is currently held.
func (i *Input) Held(alias string) bool { return i.held[alias] }
