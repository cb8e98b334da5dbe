package regime

// State is an opaque identifier for a machine state. States are never
// declared up front; a state exists by being referenced from a transition.
type State string

// Guard decides at selection time whether a transition is currently
// executable. A nil Guard always passes; only an explicit false blocks.
// Guards may have side effects and are re-evaluated on every selection.
type Guard func() bool

// Transition is a registered edge between two states, optionally tagged
// with an event name, optionally guarded, and optionally undoable.
//
// Undoable is a property of the definition, not of history: a transition
// whose guard later turns false stops being undoable for records it already
// produced.
type Transition struct {
	From     State
	To       State
	Event    string // empty for transitions not registered under an event
	Guard    Guard
	Undoable bool
}

// Event is a named bundle of one or more transitions registered together.
// Registering an event stamps its name onto each of its transitions. An
// event with zero transitions is rejected at registration time.
type Event struct {
	Name        string
	Transitions []Transition
}

// Record is one entry in the history stack: a visited state plus the event
// and caller-supplied data that produced it. Data is treated as immutable
// by contract; the engine never copies it.
type Record struct {
	State State  `json:"state"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Change is the payload delivered to subscribers after every committed
// mutation. For undo moves From/To are reversed relative to the original
// forward transition, reflecting the direction of the undo itself.
type Change struct {
	From  State  `json:"from"`
	To    State  `json:"to"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Undo  bool   `json:"undo,omitempty"`
	Redo  bool   `json:"redo,omitempty"`
}

// Query selects transitions by any subset of {event, from, to}. A field
// that was never set is a wildcard. Matching tests definedness, not
// zero-ness: an unset field never means "match only transitions whose
// field is empty".
type Query struct {
	event    string
	from     State
	to       State
	hasEvent bool
	hasFrom  bool
	hasTo    bool
}

// Where returns an empty query matching every transition.
func Where() Query { return Query{} }

// Event narrows the query to transitions tagged with the given event name.
func (q Query) Event(name string) Query {
	q.event, q.hasEvent = name, true
	return q
}

// From narrows the query to transitions out of the given state.
func (q Query) From(s State) Query {
	q.from, q.hasFrom = s, true
	return q
}

// To narrows the query to transitions into the given state.
func (q Query) To(s State) Query {
	q.to, q.hasTo = s, true
	return q
}

// Matches reports whether t satisfies every field the query defines.
func (q Query) Matches(t Transition) bool {
	if q.hasEvent && t.Event != q.event {
		return false
	}
	if q.hasFrom && t.From != q.from {
		return false
	}
	if q.hasTo && t.To != q.to {
		return false
	}
	return true
}
