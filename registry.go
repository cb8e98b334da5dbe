package regime

// registry owns the ordered set of registered transitions.
//
// Insertion order is preserved and acts as the tie-break during selection:
// filter returns matches in the order they were registered. A simple linear
// scan is adequate for the expected small transition counts.
type registry struct {
	transitions []Transition
}

// add appends t after removing any stored transition that matches the fields
// t defines among {event, from, to}. This replace-on-conflict rule lets a
// re-registration update a transition in place: registering with fully
// specified from/to (and event where relevant) replaces the matching entry,
// while omitting the event widens the match.
func (r *registry) add(t Transition) {
	q := Where().From(t.From).To(t.To)
	if t.Event != "" {
		q = q.Event(t.Event)
	}
	r.remove(q)
	r.transitions = append(r.transitions, t)
}

// addEvent registers every transition of ev, stamped with its name.
// An event with zero transitions is rejected and the registry is left
// unmodified.
func (r *registry) addEvent(ev Event) error {
	if len(ev.Transitions) == 0 {
		return newInvalidEventError(ev.Name)
	}
	for _, t := range ev.Transitions {
		t.Event = ev.Name
		r.add(t)
	}
	return nil
}

// remove deletes the first stored transition matching q. Removing with no
// match is a no-op, not an error.
func (r *registry) remove(q Query) {
	for i, t := range r.transitions {
		if q.Matches(t) {
			r.transitions = append(r.transitions[:i], r.transitions[i+1:]...)
			return
		}
	}
}

// removeEvent deletes every stored transition tagged with name.
func (r *registry) removeEvent(name string) {
	kept := r.transitions[:0]
	for _, t := range r.transitions {
		if t.Event != name {
			kept = append(kept, t)
		}
	}
	// Zero the vacated tail so dropped guards become collectable.
	for i := len(kept); i < len(r.transitions); i++ {
		r.transitions[i] = Transition{}
	}
	r.transitions = kept
}

// has reports whether any stored transition matches q.
func (r *registry) has(q Query) bool {
	for _, t := range r.transitions {
		if q.Matches(t) {
			return true
		}
	}
	return false
}

// hasEvent reports whether any stored transition is tagged with name.
func (r *registry) hasEvent(name string) bool {
	return r.has(Where().Event(name))
}

// filter returns every stored transition matching q, in insertion order.
func (r *registry) filter(q Query) []Transition {
	var out []Transition
	for _, t := range r.transitions {
		if q.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// size returns the number of stored transitions.
func (r *registry) size() int {
	return len(r.transitions)
}
