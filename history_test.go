package regime

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySeededWithInitialRecord(t *testing.T) {
	h := newHistory(Record{State: "start"}, 10)

	assert.Equal(t, State("start"), h.current().State)
	assert.Equal(t, 0, h.cursor)

	_, ok := h.previous()
	assert.False(t, ok)
	_, ok = h.next()
	assert.False(t, ok)
}

func TestHistoryRecordPrepends(t *testing.T) {
	h := newHistory(Record{State: "a"}, 10)
	h.record(Record{State: "b"})
	h.record(Record{State: "c"})

	assert.Equal(t, State("c"), h.current().State)
	prev, ok := h.previous()
	require.True(t, ok)
	assert.Equal(t, State("b"), prev.State)
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	h := newHistory(Record{State: "s0"}, DefaultHistoryLimit)
	for i := 1; i <= 60; i++ {
		h.record(Record{State: State(fmt.Sprintf("s%d", i))})
	}

	snap := h.snapshot()
	require.Len(t, snap.Records, DefaultHistoryLimit)
	assert.Equal(t, State("s60"), snap.Records[0].State, "most recent retained at front")
	assert.Equal(t, State("s11"), snap.Records[DefaultHistoryLimit-1].State, "oldest surviving record")
}

func TestHistoryRewindAdvanceClamp(t *testing.T) {
	h := newHistory(Record{State: "a"}, 10)
	h.record(Record{State: "b"})

	h.rewind()
	assert.Equal(t, State("a"), h.current().State)
	h.rewind() // already at the oldest record
	assert.Equal(t, 1, h.cursor)

	h.advance()
	assert.Equal(t, State("b"), h.current().State)
	h.advance() // already at the front
	assert.Equal(t, 0, h.cursor)
}

func TestHistoryRecordTruncatesRedoBranch(t *testing.T) {
	h := newHistory(Record{State: "a"}, 10)
	h.record(Record{State: "b"})
	h.record(Record{State: "c"})

	h.rewind() // back to b; c is now the redo branch
	require.Equal(t, State("b"), h.current().State)

	h.record(Record{State: "d"})

	assert.Equal(t, State("d"), h.current().State)
	assert.Equal(t, 0, h.cursor)
	_, ok := h.next()
	assert.False(t, ok, "redo branch discarded")

	snap := h.snapshot()
	require.Len(t, snap.Records, 3)
	assert.Equal(t, State("d"), snap.Records[0].State)
	assert.Equal(t, State("b"), snap.Records[1].State)
	assert.Equal(t, State("a"), snap.Records[2].State)
}

func TestHistoryPreviousNextAroundCursor(t *testing.T) {
	h := newHistory(Record{State: "a"}, 10)
	h.record(Record{State: "b"})
	h.record(Record{State: "c"})
	h.rewind()

	prev, ok := h.previous()
	require.True(t, ok)
	assert.Equal(t, State("a"), prev.State)

	next, ok := h.next()
	require.True(t, ok)
	assert.Equal(t, State("c"), next.State)
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := newHistory(Record{State: "a"}, 10)
	h.record(Record{State: "b"})

	snap := h.snapshot()
	snap.Records[0] = Record{State: "mutated"}

	assert.Equal(t, State("b"), h.current().State)
}

func TestHistoryNonPositiveLimitFallsBack(t *testing.T) {
	h := newHistory(Record{State: "a"}, 0)
	assert.Equal(t, DefaultHistoryLimit, h.limit)
}

func TestHistoryRecordKeepsEventAndData(t *testing.T) {
	h := newHistory(Record{State: "a"}, 10)
	payload := map[string]any{"message": "hi"}
	h.record(Record{State: "b", Event: "go", Data: payload})

	cur := h.current()
	assert.Equal(t, "go", cur.Event)
	assert.Equal(t, payload, cur.Data)
}
