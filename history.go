package regime

// DefaultHistoryLimit is the default cap on retained history records.
const DefaultHistoryLimit = 50

// history is the bounded undo/redo stack: records ordered most-recent-first
// plus a cursor. records[cursor] is the state the machine currently
// occupies; higher indices are reachable via undo, lower indices via redo.
//
// INVARIANTS:
//   - 0 <= cursor < len(records)
//   - len(records) <= limit; the oldest record is evicted past the cap
//   - len(records) >= 1 (seeded with the initial state at construction)
type history struct {
	records []Record
	cursor  int
	limit   int
}

// newHistory seeds the stack with the initial record. A non-positive limit
// falls back to DefaultHistoryLimit.
func newHistory(initial Record, limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{records: []Record{initial}, limit: limit}
}

// record commits a brand-new move. Records in front of the cursor (the redo
// branch) are discarded, r is inserted at the front, the cursor resets to 0,
// and the oldest record is evicted once the cap is exceeded. The single
// truncate-then-prepend gives "new move kills redo" for free.
func (h *history) record(r Record) {
	h.records = append([]Record{r}, h.records[h.cursor:]...)
	h.cursor = 0
	if len(h.records) > h.limit {
		h.records = h.records[:h.limit]
	}
}

// rewind moves the cursor one step toward older records, clamped to the
// last record.
func (h *history) rewind() {
	if h.cursor < len(h.records)-1 {
		h.cursor++
	}
}

// advance moves the cursor one step toward the front, clamped to 0.
func (h *history) advance() {
	if h.cursor > 0 {
		h.cursor--
	}
}

// current returns the record at the cursor.
func (h *history) current() Record {
	return h.records[h.cursor]
}

// previous returns the record one undo away, if any.
func (h *history) previous() (Record, bool) {
	if h.cursor+1 >= len(h.records) {
		return Record{}, false
	}
	return h.records[h.cursor+1], true
}

// next returns the record one redo away, if any.
func (h *history) next() (Record, bool) {
	if h.cursor == 0 {
		return Record{}, false
	}
	return h.records[h.cursor-1], true
}

// Snapshot is a read-only copy of the history stack for diagnostics.
// Records are ordered most-recent-first; Records[Cursor] is the current
// state.
type Snapshot struct {
	Records []Record `json:"records"`
	Cursor  int      `json:"cursor"`
	Limit   int      `json:"limit"`
}

// snapshot copies the stack. Mutating the returned records does not affect
// the machine (record Data itself is shared; it is immutable by contract).
func (h *history) snapshot() Snapshot {
	records := make([]Record, len(h.records))
	copy(records, h.records)
	return Snapshot{Records: records, Cursor: h.cursor, Limit: h.limit}
}
