package regime

// selector matches move requests against the registry and commits
// successful moves into the history stack. It owns the guard-evaluation
// rule and the undo/redo permission checks.
type selector struct {
	reg  *registry
	hist *history
}

// findExecutable returns the first registered transition matching q whose
// guard currently passes. Guards are evaluated in registration order and
// the first pass wins; a nil guard always passes.
func (s *selector) findExecutable(q Query) (Transition, bool) {
	for _, t := range s.reg.filter(q) {
		if t.Guard == nil || t.Guard() {
			return t, true
		}
	}
	return Transition{}, false
}

// canMove reports whether a currently executable transition connects from
// to to.
func (s *selector) canMove(from, to State) bool {
	_, ok := s.findExecutable(Where().From(from).To(to))
	return ok
}

// move attempts from -> to. A from or to that no registered transition
// references is an error; a known pair whose guards all fail is a silent
// no-op reported as a nil change.
func (s *selector) move(from, to State, data any) (*Change, error) {
	if !s.reg.has(Where().From(from)) {
		return nil, newStateNotFoundError(from)
	}
	if !s.reg.has(Where().To(to)) {
		return nil, newStateNotFoundError(to)
	}
	if _, ok := s.findExecutable(Where().From(from).To(to)); !ok {
		return nil, nil
	}
	s.hist.record(Record{State: to, Data: data})
	return &Change{From: from, To: to, Data: data}, nil
}

// trigger attempts the named event from the given state. An unregistered
// event is an error, as is a from state with no outgoing transition at all;
// an event whose candidates from this state all fail their guards is a
// silent no-op.
func (s *selector) trigger(event string, from State, data any) (*Change, error) {
	if !s.reg.hasEvent(event) {
		return nil, newEventNotFoundError(event)
	}
	if !s.reg.has(Where().From(from)) {
		return nil, newStateNotFoundError(from)
	}
	t, ok := s.findExecutable(Where().Event(event).From(from))
	if !ok {
		return nil, nil
	}
	s.hist.record(Record{State: t.To, Event: event, Data: data})
	return &Change{From: from, To: t.To, Event: event, Data: data}, nil
}

// undoTransition resolves the forward transition connecting the previous
// record to the current one, provided it is currently executable and marked
// undoable. Guards are re-evaluated live: a transition whose guard has
// turned false since the move is no longer undoable.
func (s *selector) undoTransition() (Transition, Record, bool) {
	prev, ok := s.hist.previous()
	if !ok {
		return Transition{}, Record{}, false
	}
	t, ok := s.findExecutable(Where().From(prev.State).To(s.hist.current().State))
	if !ok || !t.Undoable {
		return Transition{}, Record{}, false
	}
	return t, prev, true
}

// canUndo reports whether an undo is currently permitted.
func (s *selector) canUndo() bool {
	_, _, ok := s.undoTransition()
	return ok
}

// undo rewinds the cursor one step toward older records. The reported
// change reverses From/To relative to the forward transition and carries
// the data the forward move committed.
func (s *selector) undo() (*Change, bool) {
	t, prev, ok := s.undoTransition()
	if !ok {
		return nil, false
	}
	cur := s.hist.current()
	s.hist.rewind()
	return &Change{From: cur.State, To: prev.State, Event: t.Event, Data: cur.Data, Undo: true}, true
}

// redoTransition resolves the forward transition from the current record to
// the next (future) one, provided it is currently executable and undoable.
func (s *selector) redoTransition() (Transition, Record, bool) {
	next, ok := s.hist.next()
	if !ok {
		return Transition{}, Record{}, false
	}
	t, ok := s.findExecutable(Where().From(s.hist.current().State).To(next.State))
	if !ok || !t.Undoable {
		return Transition{}, Record{}, false
	}
	return t, next, true
}

// canRedo reports whether a redo is currently permitted.
func (s *selector) canRedo() bool {
	_, _, ok := s.redoTransition()
	return ok
}

// redo advances the cursor one step toward the front. The reported change
// runs in the forward direction and carries the data of the record being
// re-entered.
func (s *selector) redo() (*Change, bool) {
	t, next, ok := s.redoTransition()
	if !ok {
		return nil, false
	}
	cur := s.hist.current()
	s.hist.advance()
	return &Change{From: cur.State, To: next.State, Event: t.Event, Data: next.Data, Redo: true}, true
}
