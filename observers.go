package regime

// Subscriber receives the Change payload for every committed mutation.
type Subscriber func(Change)

// Subscription identifies one registration of a subscriber callback.
//
// Go functions are not comparable, so unsubscription works on the handle
// returned by Subscribe rather than on the callback itself. The same
// callback subscribed twice holds two handles and is invoked once per
// registration.
type Subscription uint64

// observers owns the ordered subscriber list. Registration order is
// delivery order.
type observers struct {
	subs   []subscription
	lastID Subscription
}

type subscription struct {
	id Subscription
	fn Subscriber
}

// subscribe appends fn unconditionally and returns its handle.
func (o *observers) subscribe(fn Subscriber) Subscription {
	o.lastID++
	o.subs = append(o.subs, subscription{id: o.lastID, fn: fn})
	return o.lastID
}

// unsubscribe removes the registration with the given handle. Unknown
// handles are a no-op.
func (o *observers) unsubscribe(id Subscription) {
	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

// notify invokes every currently registered callback synchronously, in
// registration order. The list is snapshotted first: a callback may
// re-enter the machine and subscribe or unsubscribe, and such changes take
// effect from the next notification round.
func (o *observers) notify(c Change) {
	subs := make([]subscription, len(o.subs))
	copy(subs, o.subs)
	for _, s := range subs {
		s.fn(c)
	}
}

// size returns the number of active registrations.
func (o *observers) size() int {
	return len(o.subs)
}
