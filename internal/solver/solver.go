// Package solver verifies puzzle packs: the game never generates
// boards, but it refuses to ship a pack entry that is unsolvable,
// disagrees with its stored solution, or admits more than one answer.
package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/sudoku-game/internal/domain"
)

// Stats captures the cost of one solver run.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Backtracking is a straightforward recursive solver.
type Backtracking struct{}

func NewBacktracking() *Backtracking { return &Backtracking{} }

func allowed(m *domain.Matrix, r, c int, v uint8) bool {
	for i := 0; i < 9; i++ {
		if m[r][i] == v || m[i][c] == v {
			return false
		}
	}
	br, bc := (r/3)*3, (c/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if m[br+dr][bc+dc] == v {
				return false
			}
		}
	}
	return true
}

func findEmpty(m *domain.Matrix) (int, int, bool) {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if m[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Solve returns a completed copy of m, or an error when the board is
// unsolvable or ctx expires mid-search.
func (s *Backtracking) Solve(ctx context.Context, m domain.Matrix) (domain.Matrix, Stats, error) {
	start := time.Now()
	nodes := 0
	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		r, c, ok := findEmpty(&m)
		if !ok {
			return true
		}
		for v := uint8(1); v <= 9; v++ {
			nodes++
			if allowed(&m, r, c, v) {
				m[r][c] = v
				if dfs() {
					return true
				}
				m[r][c] = 0
			}
		}
		return false
	}
	if !dfs() {
		if err := ctx.Err(); err != nil {
			return m, Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		return m, Stats{Nodes: nodes, Duration: time.Since(start)}, errors.New("unsolvable board")
	}
	return m, Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// Unique counts solutions up to 2 and reports whether exactly one
// exists.
func (s *Backtracking) Unique(ctx context.Context, m domain.Matrix) (bool, Stats, error) {
	start := time.Now()
	nodes := 0
	count := 0
	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil || count >= 2 {
			return true // stop early
		}
		r, c, ok := findEmpty(&m)
		if !ok {
			count++
			return count >= 2
		}
		for v := uint8(1); v <= 9; v++ {
			nodes++
			if allowed(&m, r, c, v) {
				m[r][c] = v
				if dfs() {
					return true
				}
				m[r][c] = 0
			}
		}
		return false
	}
	_ = dfs()
	if err := ctx.Err(); err != nil {
		return false, Stats{Nodes: nodes, Duration: time.Since(start)}, err
	}
	return count == 1, Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
