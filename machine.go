package regime

import (
	"log/slog"

	"github.com/google/uuid"
)

// Machine is the externally visible state machine facade. It composes the
// transition registry, selector, history stack, and subscriber list, and
// routes every public operation through them.
//
// Every state-changing call that succeeds delivers exactly one notification
// to each subscriber; failed or no-op calls deliver none.
type Machine struct {
	id     string
	logger *slog.Logger

	reg  *registry
	hist *history
	sel  *selector
	obs  *observers
}

// Option configures a Machine at construction time.
type Option func(*machineConfig)

type machineConfig struct {
	id           string
	logger       *slog.Logger
	historyLimit int
	transitions  []Transition
	events       []Event
}

// WithID fixes the machine instance ID. Tests use this for deterministic
// log and trace output; the default is a time-sortable UUIDv7.
func WithID(id string) Option {
	return func(c *machineConfig) {
		c.id = id
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *machineConfig) {
		c.logger = logger
	}
}

// WithHistoryLimit caps the number of retained history records.
// Defaults to DefaultHistoryLimit.
func WithHistoryLimit(n int) Option {
	return func(c *machineConfig) {
		c.historyLimit = n
	}
}

// WithTransitions seeds the machine with transitions at construction.
func WithTransitions(ts ...Transition) Option {
	return func(c *machineConfig) {
		c.transitions = append(c.transitions, ts...)
	}
}

// WithEvents seeds the machine with events at construction. Seed events are
// validated the same way AddEvent validates them; New fails on an event
// with zero transitions.
func WithEvents(events ...Event) Option {
	return func(c *machineConfig) {
		c.events = append(c.events, events...)
	}
}

// New constructs a machine occupying the initial state. The history stack
// is seeded with one record for the initial state.
func New(initial State, opts ...Option) (*Machine, error) {
	cfg := machineConfig{historyLimit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.id == "" {
		cfg.id = uuid.Must(uuid.NewV7()).String()
	}

	m := &Machine{
		id:     cfg.id,
		logger: cfg.logger,
		reg:    &registry{},
		hist:   newHistory(Record{State: initial}, cfg.historyLimit),
		obs:    &observers{},
	}
	m.sel = &selector{reg: m.reg, hist: m.hist}

	for _, t := range cfg.transitions {
		m.reg.add(t)
	}
	for _, ev := range cfg.events {
		if err := m.reg.addEvent(ev); err != nil {
			return nil, err
		}
	}

	m.logger.Debug("machine created",
		"machine", m.id,
		"initial", initial,
		"transitions", m.reg.size(),
	)
	return m, nil
}

// ID returns the machine instance identifier.
func (m *Machine) ID() string {
	return m.id
}

// Current returns the state the machine currently occupies.
func (m *Machine) Current() State {
	return m.hist.current().State
}

// Previous returns the state of the immediately preceding history record,
// or false if the machine has never transitioned.
func (m *Machine) Previous() (State, bool) {
	rec, ok := m.hist.previous()
	if !ok {
		return "", false
	}
	return rec.State, true
}

// AddTransition registers a transition, replacing any stored transition
// that matches its defined fields among {event, from, to}.
func (m *Machine) AddTransition(t Transition) {
	m.reg.add(t)
}

// AddTransitions registers multiple transitions in order.
func (m *Machine) AddTransitions(ts ...Transition) {
	for _, t := range ts {
		m.reg.add(t)
	}
}

// RemoveTransition removes the first registered transition matching q.
// Removing with no match is a no-op.
func (m *Machine) RemoveTransition(q Query) {
	m.reg.remove(q)
}

// AddEvent registers a named event. Fails with an INVALID_EVENT error when
// the event carries zero transitions; the registry is left unmodified.
func (m *Machine) AddEvent(ev Event) error {
	return m.reg.addEvent(ev)
}

// AddEvents registers multiple events, stopping at the first invalid one.
func (m *Machine) AddEvents(events ...Event) error {
	for _, ev := range events {
		if err := m.reg.addEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// RemoveEvent removes every transition registered under the event name.
// Removing an unregistered event is a no-op.
func (m *Machine) RemoveEvent(name string) {
	m.reg.removeEvent(name)
}

// HasTransition reports whether any registered transition matches q.
func (m *Machine) HasTransition(q Query) bool {
	return m.reg.has(q)
}

// HasEvent reports whether the event name is registered.
func (m *Machine) HasEvent(name string) bool {
	return m.reg.hasEvent(name)
}

// Transitions returns every registered transition matching q, in
// registration order.
func (m *Machine) Transitions(q Query) []Transition {
	return m.reg.filter(q)
}

// CanMove reports whether a currently executable transition connects the
// current state to to. Guards are evaluated live.
func (m *Machine) CanMove(to State) bool {
	return m.sel.canMove(m.Current(), to)
}

// Move attempts to move the machine to to, carrying optional caller data
// into the committed history record. Returns false with a nil error when a
// matching transition exists but every guard fails, and an error when from
// or to is referenced by no registered transition.
func (m *Machine) Move(to State, data any) (bool, error) {
	from := m.Current()
	change, err := m.sel.move(from, to, data)
	if err != nil {
		return false, err
	}
	if change == nil {
		m.logger.Debug("move rejected by guards", "machine", m.id, "from", from, "to", to)
		return false, nil
	}
	m.logger.Debug("moved", "machine", m.id, "from", change.From, "to", change.To)
	m.obs.notify(*change)
	return true, nil
}

// Trigger fires the named event from the current state. Returns false with
// a nil error when no candidate's guard passes, and an error when the event
// was never registered or the current state has no outgoing transition.
func (m *Machine) Trigger(event string, data any) (bool, error) {
	from := m.Current()
	change, err := m.sel.trigger(event, from, data)
	if err != nil {
		return false, err
	}
	if change == nil {
		m.logger.Debug("event rejected by guards", "machine", m.id, "event", event, "from", from)
		return false, nil
	}
	m.logger.Debug("event fired",
		"machine", m.id,
		"event", event,
		"from", change.From,
		"to", change.To,
	)
	m.obs.notify(*change)
	return true, nil
}

// CanUndo reports whether the last move can currently be undone: a previous
// record must exist and the forward transition connecting it to the current
// record must be executable and marked undoable.
func (m *Machine) CanUndo() bool {
	return m.sel.canUndo()
}

// Undo reverts the last undoable move. Undo with nothing to undo is a
// no-op, never an error.
func (m *Machine) Undo() bool {
	change, ok := m.sel.undo()
	if !ok {
		return false
	}
	m.logger.Debug("undo", "machine", m.id, "from", change.From, "to", change.To)
	m.obs.notify(*change)
	return true
}

// CanRedo reports whether a previously undone move can currently be
// reapplied.
func (m *Machine) CanRedo() bool {
	return m.sel.canRedo()
}

// Redo reapplies the most recently undone move. Redo with nothing to redo
// is a no-op, never an error.
func (m *Machine) Redo() bool {
	change, ok := m.sel.redo()
	if !ok {
		return false
	}
	m.logger.Debug("redo", "machine", m.id, "from", change.From, "to", change.To)
	m.obs.notify(*change)
	return true
}

// Subscribe registers a callback invoked synchronously after every
// committed change, and returns its handle. The same callback may be
// subscribed more than once and is then invoked once per registration.
func (m *Machine) Subscribe(fn Subscriber) Subscription {
	return m.obs.subscribe(fn)
}

// Unsubscribe removes the registration with the given handle. Unknown
// handles are a no-op.
func (m *Machine) Unsubscribe(id Subscription) {
	m.obs.unsubscribe(id)
}

// History returns a read-only snapshot of the history stack and cursor.
func (m *Machine) History() Snapshot {
	return m.hist.snapshot()
}
