// Package regime implements a declarative finite-state machine with
// conditional transitions, bounded transition history, and undo/redo.
//
// A Machine tracks a single current state. Callers register transitions
// (optionally grouped into named events, optionally guarded, optionally
// undoable) and then ask the machine to move to a state or to trigger an
// event. The machine selects the first registered transition whose guard
// currently passes, commits the move into a capped history stack, and
// notifies subscribers of the committed change.
//
// ARCHITECTURE:
//
// The machine is built from four private components behind one facade:
//
//   - registry: insertion-ordered transition set with predicate matching
//   - selector: transition matching and guard evaluation
//   - history: capped most-recent-first record stack with an undo cursor
//   - observers: ordered subscriber list
//
// Transition selection is deterministic: candidates are scanned in
// registration order and the first passing guard wins. Guards are evaluated
// live on every call - CanMove, CanUndo, and CanRedo reflect the guard's
// value at call time, never a cached decision.
//
// CONCURRENCY MODEL:
//
// A Machine is a plain mutable object with no internal locking. Every
// operation runs synchronously to completion before control returns; there
// is no suspension point and no cancellation. A Machine must not be shared
// across goroutines without external synchronization.
//
// Subscribers may re-enter the machine during notification (including
// moving it again). This is permitted, not guarded against: a re-entrant
// move mutates state before the outer notification round finishes, and
// later subscribers in that round observe the already-updated machine.
package regime
