// Package catalog is the puzzle library: pre-built puzzle/solution
// pairs embedded into the binary, bucketed by difficulty.
package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"svw.info/sudoku-game/internal/domain"
)

//go:embed packs/*.json
var packs embed.FS

var (
	// ErrBadPack marks a pack entry that fails to parse.
	ErrBadPack = errors.New("invalid puzzle pack")
	// ErrNoPuzzle marks an empty difficulty bucket.
	ErrNoPuzzle = errors.New("no puzzle for difficulty")
)

// packEntry is the on-disk shape: boards are 9 strings of 9 runes,
// '0' or '.' for empty givens.
type packEntry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Difficulty string    `json:"difficulty"`
	Givens     [9]string `json:"givens"`
	Solution   [9]string `json:"solution"`
}

// Catalog serves puzzles from the embedded packs.
type Catalog struct {
	byDifficulty map[domain.Difficulty][]domain.Puzzle
	all          []domain.Puzzle
}

// New parses every embedded pack. A malformed entry fails the whole
// load: shipping a broken pack is a build defect, not a runtime
// condition to tolerate.
func New() (*Catalog, error) {
	entries, err := packs.ReadDir("packs")
	if err != nil {
		return nil, err
	}
	c := &Catalog{byDifficulty: map[domain.Difficulty][]domain.Puzzle{}}
	for _, e := range entries {
		data, err := packs.ReadFile("packs/" + e.Name())
		if err != nil {
			return nil, err
		}
		var list []packEntry
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadPack, e.Name(), err)
		}
		for _, pe := range list {
			p, err := pe.puzzle()
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %v", ErrBadPack, e.Name(), pe.ID, err)
			}
			c.byDifficulty[p.Difficulty] = append(c.byDifficulty[p.Difficulty], p)
			c.all = append(c.all, p)
		}
	}
	return c, nil
}

func (pe packEntry) puzzle() (domain.Puzzle, error) {
	var p domain.Puzzle
	if pe.ID == "" {
		return p, errors.New("missing id")
	}
	givens, err := parseBoard(pe.Givens, true)
	if err != nil {
		return p, fmt.Errorf("givens: %v", err)
	}
	solution, err := parseBoard(pe.Solution, false)
	if err != nil {
		return p, fmt.Errorf("solution: %v", err)
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if givens[r][c] != 0 && givens[r][c] != solution[r][c] {
				return p, fmt.Errorf("given (%d,%d) disagrees with solution", r, c)
			}
		}
	}
	p = domain.Puzzle{
		ID:         pe.ID,
		Name:       pe.Name,
		Difficulty: domain.ParseDifficulty(pe.Difficulty),
		Givens:     givens,
		Solution:   solution,
	}
	return p, nil
}

// parseBoard turns 9 row strings into a matrix. '0' and '.' mean
// empty and are only legal when allowEmpty is set.
func parseBoard(rows [9]string, allowEmpty bool) (domain.Matrix, error) {
	var m domain.Matrix
	for r := 0; r < 9; r++ {
		if len(rows[r]) != 9 {
			return m, fmt.Errorf("row %d has %d characters", r, len(rows[r]))
		}
		for c := 0; c < 9; c++ {
			ch := rows[r][c]
			switch {
			case ch >= '1' && ch <= '9':
				m[r][c] = ch - '0'
			case ch == '0' || ch == '.':
				if !allowEmpty {
					return m, fmt.Errorf("empty cell at row %d col %d", r, c)
				}
			default:
				return m, fmt.Errorf("bad character %q at row %d col %d", ch, r, c)
			}
		}
	}
	return m, nil
}

// Pick returns a puzzle from the difficulty bucket, chosen
// deterministically by seed so the same seed replays the same board.
func (c *Catalog) Pick(ctx context.Context, d domain.Difficulty, seed int64) (*domain.Puzzle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bucket := c.byDifficulty[d]
	if len(bucket) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPuzzle, d)
	}
	idx := int(seed % int64(len(bucket)))
	if idx < 0 {
		idx += len(bucket)
	}
	p := bucket[idx]
	return &p, nil
}

// Daily returns the challenge for a calendar day: the date (UTC)
// seeds selection across the whole catalog, so every player sees the
// same board on the same day.
func (c *Catalog) Daily(ctx context.Context, day time.Time) (*domain.Puzzle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.all) == 0 {
		return nil, ErrNoPuzzle
	}
	utc := day.UTC()
	seed := int64(utc.Year())*10000 + int64(utc.Month())*100 + int64(utc.Day())
	p := c.all[int(seed%int64(len(c.all)))]
	return &p, nil
}

// List returns metadata for every pack puzzle.
func (c *Catalog) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.PuzzleMeta, 0, len(c.all))
	for _, p := range c.all {
		out = append(out, domain.PuzzleMeta{ID: p.ID, Name: p.Name, Difficulty: p.Difficulty})
	}
	return out, nil
}

// All returns every pack puzzle, for verification tooling.
func (c *Catalog) All() []domain.Puzzle {
	return append([]domain.Puzzle(nil), c.all...)
}
