// Package history keeps the bounded, cursor-indexed log of reversible
// edits behind undo/redo. The log transports domain.Action values
// opaquely: it stores, truncates, and plays them back in order, and
// never applies them to a grid itself.
package history

import (
	"errors"
	"fmt"

	"svw.info/sudoku-game/internal/domain"
)

// DefaultMaxSize bounds the log when no explicit size is given.
const DefaultMaxSize = 100

var (
	// ErrBadSize marks a non-positive log capacity.
	ErrBadSize = errors.New("invalid history size")
	// ErrBadAction marks a nil, unknown-kind, or out-of-bounds action.
	ErrBadAction = errors.New("invalid action")
)

// Log is a linear undo/redo log. The cursor points at the last applied
// entry (-1 = nothing applied); pushing while the cursor sits behind
// the end discards the redo branch. It is not a branching history.
type Log struct {
	entries []domain.Action
	cursor  int
	maxSize int
}

// New builds an empty log bounded to maxSize entries.
func New(maxSize int) (*Log, error) {
	if maxSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, maxSize)
	}
	return &Log{cursor: -1, maxSize: maxSize}, nil
}

// NewDefault builds an empty log with the default bound.
func NewDefault() *Log {
	l, _ := New(DefaultMaxSize)
	return l
}

// Push validates a, truncates anything after the cursor, appends a,
// and advances the cursor. When the log would exceed its bound the
// oldest entry is evicted and the cursor rebased. Eviction re-slices
// the backing array, so no per-entry shifting happens.
func (l *Log) Push(a domain.Action) error {
	if a == nil || !a.Kind().Known() {
		return fmt.Errorf("%w: unknown kind", ErrBadAction)
	}
	cell := a.Cell()
	if !domain.InBounds(cell.Row, cell.Col) {
		return fmt.Errorf("%w: cell (%d,%d)", ErrBadAction, cell.Row, cell.Col)
	}
	l.entries = append(l.entries[:l.cursor+1], a)
	l.cursor++
	if len(l.entries) > l.maxSize {
		l.entries = l.entries[1:]
		l.cursor--
	}
	return nil
}

// Undo returns the action at the cursor and steps the cursor back.
// The second return is false when there is nothing to undo.
func (l *Log) Undo() (domain.Action, bool) {
	if l.cursor < 0 {
		return nil, false
	}
	a := l.entries[l.cursor]
	l.cursor--
	return a, true
}

// Redo steps the cursor forward and returns the action it lands on.
// The second return is false when there is nothing to redo.
func (l *Log) Redo() (domain.Action, bool) {
	if l.cursor >= len(l.entries)-1 {
		return nil, false
	}
	l.cursor++
	return l.entries[l.cursor], true
}

// CanUndo reports whether Undo would return an action.
func (l *Log) CanUndo() bool { return l.cursor >= 0 }

// CanRedo reports whether Redo would return an action.
func (l *Log) CanRedo() bool { return l.cursor < len(l.entries)-1 }

// Len returns the number of logged entries.
func (l *Log) Len() int { return len(l.entries) }

// Clear empties the log and resets the cursor.
func (l *Log) Clear() {
	l.entries = nil
	l.cursor = -1
}
