// Package hint picks the most useful next reveal for a stuck player.
package hint

import (
	"encoding/json"
	"errors"

	"svw.info/sudoku-game/internal/domain"
	"svw.info/sudoku-game/internal/grid"
)

// ErrNoGrid marks a hint system constructed without a grid.
var ErrNoGrid = errors.New("hint: no grid model")

// System reads a live grid to choose hints and counts how many the
// player has taken. It never mutates the grid; applying the revealed
// value is the caller's job.
type System struct {
	grid      *grid.Grid
	hintsUsed int
}

// New wraps a live grid.
func New(g *grid.Grid) (*System, error) {
	if g == nil {
		return nil, ErrNoGrid
	}
	return &System{grid: g}, nil
}

// Hint selects the best empty cell, reads its solution value, and
// bumps the usage counter. The second return is false when the grid
// has no empty cell left.
func (s *System) Hint() (domain.Hint, bool) {
	row, col, ok := s.bestCell()
	if !ok {
		return domain.Hint{}, false
	}
	v, err := s.grid.SolutionValue(row, col)
	if err != nil {
		return domain.Hint{}, false
	}
	s.hintsUsed++
	return domain.Hint{Row: row, Col: col, Value: v}, true
}

// bestCell scans every empty cell and keeps the one with the highest
// fill-density score; ties keep the first cell in row-major order
// because the comparison is strict.
func (s *System) bestCell() (int, int, bool) {
	cur := s.grid.Current()
	bestRow, bestCol, bestScore := -1, -1, -1
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if cur[r][c] != 0 {
				continue
			}
			if score := cellDensity(&cur, r, c); score > bestScore {
				bestRow, bestCol, bestScore = r, c, score
			}
		}
	}
	return bestRow, bestCol, bestScore >= 0
}

// cellDensity scores a cell by the filled cells in its row, column,
// and box, summed. Peers at the intersections count once per unit
// they share, so a cell in a dense row, column, and box is
// triple-counted: the intended bias toward the most constrained
// cells.
func cellDensity(m *domain.Matrix, row, col int) int {
	score := 0
	for i := 0; i < 9; i++ {
		if m[row][i] != 0 {
			score++
		}
		if m[i][col] != 0 {
			score++
		}
	}
	br, bc := (row/3)*3, (col/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if m[br+dr][bc+dc] != 0 {
				score++
			}
		}
	}
	return score
}

// HintsUsed returns how many hints this system has handed out.
func (s *System) HintsUsed() int { return s.hintsUsed }

// Reset zeroes the usage counter.
func (s *System) Reset() { s.hintsUsed = 0 }

type systemJSON struct {
	HintsUsed int `json:"hintsUsed"`
}

// MarshalJSON persists only the usage counter; the grid is serialized
// separately by its owner.
func (s *System) MarshalJSON() ([]byte, error) {
	return json.Marshal(systemJSON{HintsUsed: s.hintsUsed})
}

// FromJSON rebuilds a hint system around a live grid. A missing or
// negative counter is not an error: it just restores as 0.
func FromJSON(data []byte, g *grid.Grid) (*System, error) {
	s, err := New(g)
	if err != nil {
		return nil, err
	}
	var in systemJSON
	if err := json.Unmarshal(data, &in); err == nil && in.HintsUsed > 0 {
		s.hintsUsed = in.HintsUsed
	}
	return s, nil
}
