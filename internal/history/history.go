// Package history provides a bounded linear undo/redo manager over
// immutable snapshots.
package history

// DefaultMaxHistory is the number of undo steps retained when New is
// given a non-positive limit.
const DefaultMaxHistory = 30

// History holds a sequence of snapshots and a cursor into it. The current
// state is always entries[cursor]. Entries after the cursor form the redo
// branch and are discarded by the next commit.
//
// Stored values are treated as immutable. Callers must commit a fresh
// value rather than modify one already handed to the history.
type History[T any] struct {
	entries    []T
	cursor     int
	maxHistory int
}

// New creates a History whose only entry is initial. At most
// maxHistory undo steps (maxHistory+1 entries) are retained.
func New[T any](initial T, maxHistory int) *History[T] {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &History[T]{
		entries:    []T{initial},
		maxHistory: maxHistory,
	}
}

// State returns the current snapshot.
func (h *History[T]) State() T {
	return h.entries[h.cursor]
}

// Commit truncates the redo branch, appends next and selects it. When the
// history grows past its limit the oldest entry is dropped.
func (h *History[T]) Commit(next T) {
	entries := make([]T, 0, h.cursor+2)
	entries = append(entries, h.entries[:h.cursor+1]...)
	entries = append(entries, next)
	if over := len(entries) - (h.maxHistory + 1); over > 0 {
		entries = entries[over:]
	}
	h.entries = entries
	h.cursor = len(entries) - 1
}

// Update commits fn applied to the current state.
func (h *History[T]) Update(fn func(prev T) T) {
	h.Commit(fn(h.State()))
}

// Undo moves the cursor back one entry. It reports false at the oldest entry.
func (h *History[T]) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo moves the cursor forward one entry. It reports false at the newest entry.
func (h *History[T]) Redo() bool {
	if h.cursor >= len(h.entries)-1 {
		return false
	}
	h.cursor++
	return true
}

// CanUndo reports whether Undo would move the cursor.
func (h *History[T]) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (h *History[T]) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Len returns the number of retained entries.
func (h *History[T]) Len() int {
	return len(h.entries)
}

// Cursor returns the index of the current entry.
func (h *History[T]) Cursor() int {
	return h.cursor
}

// MaxHistory returns the retained undo step limit.
func (h *History[T]) MaxHistory() int {
	return h.maxHistory
}

// Reset discards all entries and starts over from initial.
func (h *History[T]) Reset(initial T) {
	h.entries = []T{initial}
	h.cursor = 0
}
