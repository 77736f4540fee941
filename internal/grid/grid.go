// Package grid owns the live puzzle state of one game: the original
// givens, the target solution, the player's working values, and the
// per-cell candidate notes.
//
// The grid deliberately does not enforce Sudoku uniqueness on writes:
// conflicting values are legal at this layer, and validity is a
// separate query so callers can offer auto-check-off modes.
package grid

import (
	"errors"
	"fmt"

	"svw.info/sudoku-game/internal/domain"
)

var (
	// ErrBadBoard marks a malformed puzzle or solution at construction
	// or deserialization time.
	ErrBadBoard = errors.New("invalid board")
	// ErrOutOfRange marks a row, column, value, or note digit outside
	// its legal range.
	ErrOutOfRange = errors.New("out of range")
	// ErrFixedCell marks a write to a cell pre-filled by the puzzle.
	ErrFixedCell = errors.New("cell is fixed")
	// ErrCellFilled marks a note operation on a cell holding a value.
	ErrCellFilled = errors.New("cell holds a value")
)

// Grid is the puzzle state for one game. It belongs to exactly one
// game controller; every operation runs to completion synchronously.
type Grid struct {
	puzzle   domain.Matrix
	solution domain.Matrix
	current  domain.Matrix
	notes    [9][9]domain.NoteSet
	fixed    [9][9]bool
}

// New validates the puzzle/solution pair and builds a fresh grid: the
// working values start as a copy of the givens, notes start empty,
// and every non-zero given becomes a fixed cell.
func New(puzzle, solution domain.Matrix) (*Grid, error) {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if puzzle[r][c] > 9 {
				return nil, fmt.Errorf("%w: puzzle cell (%d,%d) = %d", ErrBadBoard, r, c, puzzle[r][c])
			}
			if solution[r][c] < 1 || solution[r][c] > 9 {
				return nil, fmt.Errorf("%w: solution cell (%d,%d) = %d", ErrBadBoard, r, c, solution[r][c])
			}
		}
	}
	g := &Grid{puzzle: puzzle, solution: solution, current: puzzle}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			g.fixed[r][c] = puzzle[r][c] != 0
		}
	}
	return g, nil
}

// Value returns the working value at (row,col); 0 means empty.
func (g *Grid) Value(row, col int) (uint8, error) {
	if !domain.InBounds(row, col) {
		return 0, fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, row, col)
	}
	return g.current[row][col], nil
}

// SetValue writes v (0 erases) into a non-fixed cell. Writing a
// non-zero value clears the cell's notes. Conflicting values are
// accepted; use IsValid/Conflicts to check them.
func (g *Grid) SetValue(row, col int, v uint8) error {
	if !domain.InBounds(row, col) {
		return fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, row, col)
	}
	if v > 9 {
		return fmt.Errorf("%w: value %d", ErrOutOfRange, v)
	}
	if g.fixed[row][col] {
		return fmt.Errorf("%w: (%d,%d)", ErrFixedCell, row, col)
	}
	g.current[row][col] = v
	if v != 0 {
		g.notes[row][col] = 0
	}
	return nil
}

// Notes returns the candidate set at (row,col). NoteSet is a value
// type, so the caller's copy can never reach back into the grid.
func (g *Grid) Notes(row, col int) (domain.NoteSet, error) {
	if !domain.InBounds(row, col) {
		return 0, fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, row, col)
	}
	return g.notes[row][col], nil
}

// ToggleNote flips candidate digit n in an empty, non-fixed cell.
func (g *Grid) ToggleNote(row, col int, n uint8) error {
	if !domain.InBounds(row, col) {
		return fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, row, col)
	}
	if !domain.NoteInRange(n) {
		return fmt.Errorf("%w: note %d", ErrOutOfRange, n)
	}
	if g.current[row][col] != 0 {
		return fmt.Errorf("%w: (%d,%d)", ErrCellFilled, row, col)
	}
	g.notes[row][col] = g.notes[row][col].Toggle(n)
	return nil
}

// RestoreNotes overwrites the candidate set at (row,col) wholesale.
// It exists for undo/redo and deserialization; a non-empty set may
// only land on an empty cell.
func (g *Grid) RestoreNotes(row, col int, notes domain.NoteSet) error {
	if !domain.InBounds(row, col) {
		return fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, row, col)
	}
	if !notes.Empty() && g.current[row][col] != 0 {
		return fmt.Errorf("%w: (%d,%d)", ErrCellFilled, row, col)
	}
	g.notes[row][col] = notes
	return nil
}

// IsFixed reports whether (row,col) is a given from the original
// puzzle. Out-of-range coordinates are simply not fixed.
func (g *Grid) IsFixed(row, col int) bool {
	return domain.InBounds(row, col) && g.fixed[row][col]
}

// IsValid reports whether placing v at (row,col) would conflict with
// no other cell in the same row, column, or box. The cell itself is
// excluded, so re-checking a cell against its own value is always
// valid. Out-of-range input is never valid.
func (g *Grid) IsValid(row, col int, v uint8) bool {
	if !domain.InBounds(row, col) || v < 1 || v > 9 {
		return false
	}
	return len(g.Conflicts(row, col, v)) == 0
}

// Conflicts returns the distinct peers of (row,col) currently holding
// v. The scan covers the cell's row, column, and box, excluding the
// cell itself; invalid input yields no conflicts.
func (g *Grid) Conflicts(row, col int, v uint8) []domain.CellCoord {
	if !domain.InBounds(row, col) || v < 1 || v > 9 {
		return nil
	}
	var out []domain.CellCoord
	seen := [9][9]bool{}
	add := func(r, c int) {
		if r == row && c == col {
			return
		}
		if g.current[r][c] == v && !seen[r][c] {
			seen[r][c] = true
			out = append(out, domain.CellCoord{Row: r, Col: c})
		}
	}
	for i := 0; i < 9; i++ {
		add(row, i)
		add(i, col)
	}
	br, bc := (row/3)*3, (col/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			add(br+dr, bc+dc)
		}
	}
	return out
}

// IsComplete reports whether every cell holds a value.
func (g *Grid) IsComplete() bool {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g.current[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

// IsCorrect reports whether the working grid matches the solution
// exactly. Safe to call at any time; only meaningful once complete.
func (g *Grid) IsCorrect() bool {
	return g.current == g.solution
}

// SolutionValue returns the answer digit for (row,col).
func (g *Grid) SolutionValue(row, col int) (uint8, error) {
	if !domain.InBounds(row, col) {
		return 0, fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, row, col)
	}
	return g.solution[row][col], nil
}

// Current returns a copy of the working values.
func (g *Grid) Current() domain.Matrix { return g.current }

// Givens returns a copy of the original puzzle values.
func (g *Grid) Givens() domain.Matrix { return g.puzzle }

// Clone returns a deep, independent copy of the grid. All state is
// held in value arrays, so a struct copy suffices.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	clone := *g
	return &clone
}
