package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New("initial", 0)
	assert.Equal(t, DefaultMaxHistory, h.MaxHistory())
	assert.Equal(t, "initial", h.State())
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo(), "new history should not be undoable")
	assert.False(t, h.CanRedo(), "new history should not be redoable")
}

func TestCommitAndUndo(t *testing.T) {
	h := New([]string{}, 10)
	h.Commit([]string{"a"})

	require.True(t, h.CanUndo())
	require.True(t, h.Undo())
	assert.Empty(t, h.State())
	assert.Equal(t, 0, h.Cursor())
}

func TestUndoRedoInverse(t *testing.T) {
	h := New(0, 10)
	for i := 1; i <= 5; i++ {
		h.Commit(i)
	}

	for steps := 1; steps <= 5; steps++ {
		before := h.State()
		require.True(t, h.Undo())
		require.True(t, h.Redo())
		assert.Equal(t, before, h.State(), "undo then redo restores the state")
		h.Undo()
	}
	assert.Equal(t, 0, h.State())
}

func TestCommitTruncatesRedo(t *testing.T) {
	h := New("a", 10)
	h.Commit("b")
	h.Commit("c")

	h.Undo()
	h.Undo()
	require.True(t, h.CanRedo())

	h.Commit("x")
	assert.False(t, h.CanRedo(), "redo branch should be discarded after commit")
	assert.False(t, h.Redo())
	assert.Equal(t, "x", h.State())
	assert.Equal(t, 2, h.Len())
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		commits int
	}{
		{"under limit", 5, 3},
		{"at limit", 5, 5},
		{"over limit", 5, 12},
		{"single step", 1, 4},
		{"default limit", 30, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(0, tt.max)
			for i := 1; i <= tt.commits; i++ {
				h.Commit(i)
			}
			assert.Equal(t, min(tt.commits+1, tt.max+1), h.Len())
			assert.Equal(t, tt.commits, h.State(), "newest commit is current")
			assert.Equal(t, h.Len()-1, h.Cursor())
		})
	}
}

func TestOldestDropped(t *testing.T) {
	h := New(0, 3)
	for i := 1; i <= 6; i++ {
		h.Commit(i)
	}
	for h.Undo() {
	}
	assert.Equal(t, 3, h.State(), "entries 0..2 should have been dropped")
}

func TestUndoAtStartIsNoop(t *testing.T) {
	h := New("only", 5)
	assert.False(t, h.Undo())
	assert.Equal(t, "only", h.State())
	assert.Equal(t, 0, h.Cursor())
}

func TestRedoAtEndIsNoop(t *testing.T) {
	h := New("a", 5)
	h.Commit("b")
	assert.False(t, h.Redo())
	assert.Equal(t, "b", h.State())
}

func TestUpdate(t *testing.T) {
	h := New([]int{1}, 5)
	h.Update(func(prev []int) []int {
		return append(append([]int{}, prev...), 2)
	})
	assert.Equal(t, []int{1, 2}, h.State())
	h.Undo()
	assert.Equal(t, []int{1}, h.State(), "previous snapshot is untouched")
}

func TestReset(t *testing.T) {
	h := New("a", 5)
	h.Commit("b")
	h.Commit("c")
	h.Undo()

	h.Reset("z")
	assert.Equal(t, "z", h.State())
	assert.False(t, h.CanUndo() || h.CanRedo(), "after reset, should not be able to undo or redo")
}
