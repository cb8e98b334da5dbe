package regime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddThenHas(t *testing.T) {
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})

	assert.True(t, r.has(Where().From("a").To("b")))
	assert.True(t, r.has(Where().From("a")), "omitted fields are wildcards")
	assert.True(t, r.has(Where().To("b")))
	assert.False(t, r.has(Where().From("b")))
}

func TestRegistryRemoveThenHas(t *testing.T) {
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})
	r.remove(Where().From("a").To("b"))

	assert.False(t, r.has(Where().From("a").To("b")))
	assert.Equal(t, 0, r.size())
}

func TestRegistryRemoveNoMatchIsNoOp(t *testing.T) {
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})

	r.remove(Where().From("x").To("y"))

	assert.Equal(t, 1, r.size())
}

func TestRegistryRemoveFirstMatchOnly(t *testing.T) {
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})
	r.add(Transition{From: "a", To: "c"})

	r.remove(Where().From("a"))

	require.Equal(t, 1, r.size())
	assert.True(t, r.has(Where().To("c")), "second match survives")
	assert.False(t, r.has(Where().To("b")))
}

func TestRegistryAddReplacesOnConflict(t *testing.T) {
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})
	r.add(Transition{From: "a", To: "b", Undoable: true})

	require.Equal(t, 1, r.size(), "full field match replaces, not duplicates")
	got := r.filter(Where().From("a").To("b"))
	require.Len(t, got, 1)
	assert.True(t, got[0].Undoable, "replacement wins")
}

func TestRegistryAddWithoutEventReplacesTagged(t *testing.T) {
	// A registration that omits the event widens its replace match: the
	// event field is a wildcard, so the tagged entry is replaced.
	r := &registry{}
	r.add(Transition{From: "a", To: "b", Event: "go"})
	r.add(Transition{From: "a", To: "b"})

	require.Equal(t, 1, r.size())
	assert.False(t, r.hasEvent("go"))
}

func TestRegistryAddWithEventDoesNotReplaceUntagged(t *testing.T) {
	// The narrower registration defines the event field, and the stored
	// untagged transition does not match it.
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})
	r.add(Transition{From: "a", To: "b", Event: "go"})

	assert.Equal(t, 2, r.size())
}

func TestRegistryAddEvent(t *testing.T) {
	r := &registry{}
	err := r.addEvent(Event{Name: "go", Transitions: []Transition{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	}})
	require.NoError(t, err)

	assert.True(t, r.hasEvent("go"))
	assert.Equal(t, 2, r.size())

	for _, tr := range r.filter(Where().Event("go")) {
		assert.Equal(t, "go", tr.Event, "event name stamped onto each transition")
	}
}

func TestRegistryAddEmptyEventFails(t *testing.T) {
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})

	err := r.addEvent(Event{Name: "go"})
	require.Error(t, err)
	assert.True(t, IsInvalidEvent(err))
	assert.Equal(t, 1, r.size(), "registry unchanged after rejected event")
}

func TestRegistryRemoveEventRemovesAll(t *testing.T) {
	r := &registry{}
	require.NoError(t, r.addEvent(Event{Name: "go", Transitions: []Transition{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	}}))
	r.add(Transition{From: "c", To: "a"})

	r.removeEvent("go")

	assert.False(t, r.hasEvent("go"))
	assert.Equal(t, 1, r.size())
	assert.True(t, r.has(Where().From("c")))
}

func TestRegistryRemoveUnknownEventIsNoOp(t *testing.T) {
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})

	r.removeEvent("missing")

	assert.Equal(t, 1, r.size())
}

func TestRegistryFilterPreservesInsertionOrder(t *testing.T) {
	r := &registry{}
	r.add(Transition{From: "a", To: "b"})
	r.add(Transition{From: "a", To: "c"})
	r.add(Transition{From: "a", To: "d"})

	got := r.filter(Where().From("a"))
	require.Len(t, got, 3)
	assert.Equal(t, State("b"), got[0].To)
	assert.Equal(t, State("c"), got[1].To)
	assert.Equal(t, State("d"), got[2].To)
}

func TestQueryUnsetFieldIsWildcardNotEmptyMatch(t *testing.T) {
	// An unset event field must match tagged and untagged transitions
	// alike; it must never mean "match only transitions whose event is
	// empty".
	q := Where().From("a")

	assert.True(t, q.Matches(Transition{From: "a", To: "b", Event: "go"}))
	assert.True(t, q.Matches(Transition{From: "a", To: "b"}))

	// An explicitly set empty event matches only untagged transitions.
	qe := Where().From("a").Event("")
	assert.False(t, qe.Matches(Transition{From: "a", To: "b", Event: "go"}))
	assert.True(t, qe.Matches(Transition{From: "a", To: "b"}))
}
