// Package undo holds the session-scoped snapshot history for destructive
// operations. Each ledger is strictly last-in-first-out: only the most recent
// action of its operation class is reversible, and a popped entry that is not
// pushed back is gone for good (there is no redo).
package undo

// Ledger is an ordered stack of snapshots for one operation class. It is
// owned by a single session and never persisted.
type Ledger[T any] struct {
	items []T
}

// Push records a snapshot taken immediately before a mutation.
func (l *Ledger[T]) Push(v T) {
	l.items = append(l.items, v)
}

// Pop removes and returns the most recent snapshot. The second return is
// false when the ledger is empty. Callers that fail to restore the popped
// snapshot must Push it back so the operator can retry.
func (l *Ledger[T]) Pop() (T, bool) {
	if len(l.items) == 0 {
		var zero T
		return zero, false
	}
	v := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return v, true
}

// Len returns the current depth of the ledger.
func (l *Ledger[T]) Len() int {
	return len(l.items)
}

// Clear drops all history. Called on logout.
func (l *Ledger[T]) Clear() {
	l.items = nil
}
