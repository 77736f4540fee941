package grid

import (
	"encoding/json"
	"fmt"

	"svw.info/sudoku-game/internal/domain"
)

// gridJSON is the persisted shape. Rows are decoded as slices rather
// than fixed arrays so short or oversized input fails loudly instead
// of being silently padded or truncated.
type gridJSON struct {
	Puzzle   [][]uint8          `json:"puzzle"`
	Solution [][]uint8          `json:"solution"`
	Current  [][]uint8          `json:"current"`
	Notes    [][]domain.NoteSet `json:"notes"`
}

func matrixRows(m domain.Matrix) [][]uint8 {
	out := make([][]uint8, 9)
	for r := 0; r < 9; r++ {
		row := make([]uint8, 9)
		copy(row, m[r][:])
		out[r] = row
	}
	return out
}

func rowsMatrix(name string, rows [][]uint8) (domain.Matrix, error) {
	var m domain.Matrix
	if len(rows) != 9 {
		return m, fmt.Errorf("%w: %s has %d rows", ErrBadBoard, name, len(rows))
	}
	for r := 0; r < 9; r++ {
		if len(rows[r]) != 9 {
			return m, fmt.Errorf("%w: %s row %d has %d cells", ErrBadBoard, name, r, len(rows[r]))
		}
		copy(m[r][:], rows[r])
	}
	return m, nil
}

// MarshalJSON serializes the full grid state. Notes round-trip as
// arrays of digit arrays since sets are not JSON-native.
func (g *Grid) MarshalJSON() ([]byte, error) {
	out := gridJSON{
		Puzzle:   matrixRows(g.puzzle),
		Solution: matrixRows(g.solution),
		Current:  matrixRows(g.current),
		Notes:    make([][]domain.NoteSet, 9),
	}
	for r := 0; r < 9; r++ {
		out.Notes[r] = make([]domain.NoteSet, 9)
		copy(out.Notes[r], g.notes[r][:])
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a grid from persisted state, re-running full
// construction validation plus the live-state invariants: fixed cells
// keep their given value, and notes sit only on empty cells.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var in gridJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBoard, err)
	}
	puzzle, err := rowsMatrix("puzzle", in.Puzzle)
	if err != nil {
		return err
	}
	solution, err := rowsMatrix("solution", in.Solution)
	if err != nil {
		return err
	}
	current, err := rowsMatrix("current", in.Current)
	if err != nil {
		return err
	}
	fresh, err := New(puzzle, solution)
	if err != nil {
		return err
	}
	if len(in.Notes) != 9 {
		return fmt.Errorf("%w: notes has %d rows", ErrBadBoard, len(in.Notes))
	}
	for r := 0; r < 9; r++ {
		if len(in.Notes[r]) != 9 {
			return fmt.Errorf("%w: notes row %d has %d cells", ErrBadBoard, r, len(in.Notes[r]))
		}
		for c := 0; c < 9; c++ {
			if current[r][c] > 9 {
				return fmt.Errorf("%w: current cell (%d,%d) = %d", ErrBadBoard, r, c, current[r][c])
			}
			if fresh.fixed[r][c] && current[r][c] != puzzle[r][c] {
				return fmt.Errorf("%w: fixed cell (%d,%d) altered", ErrBadBoard, r, c)
			}
			if current[r][c] != 0 && !in.Notes[r][c].Empty() {
				return fmt.Errorf("%w: notes on filled cell (%d,%d)", ErrBadBoard, r, c)
			}
			fresh.notes[r][c] = in.Notes[r][c]
		}
	}
	fresh.current = current
	*g = *fresh
	return nil
}
