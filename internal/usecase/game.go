package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"svw.info/sudoku-game/internal/domain"
	"svw.info/sudoku-game/internal/grid"
	"svw.info/sudoku-game/internal/hint"
	"svw.info/sudoku-game/internal/history"
)

// ErrNoHint is returned when a hint is requested on a full board.
var ErrNoHint = errors.New("no empty cell to hint")

// Game orchestrates one play session: it owns the grid, the undo log,
// and the hint system, and is the only writer to any of them. Every
// mutation captures the cell's prior state, applies the change, and
// pushes the matching action record, in that order, so replaying the
// log is always causally consistent with the grid.
type Game struct {
	ID         string
	PuzzleID   string
	Difficulty domain.Difficulty

	grid      *grid.Grid
	log       *history.Log
	hints     *hint.System
	startedAt time.Time
	elapsed   time.Duration
}

// NewGame starts a fresh game from a pack puzzle.
func NewGame(p *domain.Puzzle) (*Game, error) {
	g, err := grid.New(p.Givens, p.Solution)
	if err != nil {
		return nil, err
	}
	hs, err := hint.New(g)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:         uuid.NewString(),
		PuzzleID:   p.ID,
		Difficulty: p.Difficulty,
		grid:       g,
		log:        history.NewDefault(),
		hints:      hs,
		startedAt:  time.Now(),
	}, nil
}

// Grid exposes the live grid for read-only queries.
func (gm *Game) Grid() *grid.Grid { return gm.grid }

// HintsUsed returns the session's hint count.
func (gm *Game) HintsUsed() int { return gm.hints.HintsUsed() }

// CanUndo reports whether an edit is available to undo.
func (gm *Game) CanUndo() bool { return gm.log.CanUndo() }

// CanRedo reports whether an undone edit is available to redo.
func (gm *Game) CanRedo() bool { return gm.log.CanRedo() }

// Elapsed returns total play time including restored sessions.
func (gm *Game) Elapsed() time.Duration {
	return gm.elapsed + time.Since(gm.startedAt)
}

// SetValue writes a digit into a cell and logs the edit.
func (gm *Game) SetValue(row, col int, v uint8) error {
	oldV, err := gm.grid.Value(row, col)
	if err != nil {
		return err
	}
	oldN, _ := gm.grid.Notes(row, col)
	if err := gm.grid.SetValue(row, col, v); err != nil {
		return err
	}
	return gm.log.Push(domain.SetValueAction{
		Row: row, Col: col,
		OldValue: oldV, NewValue: v, OldNotes: oldN,
	})
}

// ToggleNote flips a candidate digit in a cell and logs the edit.
func (gm *Game) ToggleNote(row, col int, n uint8) error {
	oldN, err := gm.grid.Notes(row, col)
	if err != nil {
		return err
	}
	if err := gm.grid.ToggleNote(row, col, n); err != nil {
		return err
	}
	newN, _ := gm.grid.Notes(row, col)
	return gm.log.Push(domain.ToggleNoteAction{
		Row: row, Col: col, Note: n,
		OldNotes: oldN, NewNotes: newN,
	})
}

// ClearCell erases a cell's value and notes and logs the edit.
func (gm *Game) ClearCell(row, col int) error {
	oldV, err := gm.grid.Value(row, col)
	if err != nil {
		return err
	}
	oldN, _ := gm.grid.Notes(row, col)
	if err := gm.grid.SetValue(row, col, 0); err != nil {
		return err
	}
	if err := gm.grid.RestoreNotes(row, col, 0); err != nil {
		return err
	}
	return gm.log.Push(domain.ClearCellAction{
		Row: row, Col: col,
		OldValue: oldV, OldNotes: oldN,
	})
}

// Hint reveals the solution digit of the most constrained empty cell,
// applies it to the grid, and logs the reveal like any other edit.
func (gm *Game) Hint() (domain.Hint, error) {
	oldState := gm.grid.Current()
	h, ok := gm.hints.Hint()
	if !ok {
		return domain.Hint{}, ErrNoHint
	}
	oldN, _ := gm.grid.Notes(h.Row, h.Col)
	if err := gm.grid.SetValue(h.Row, h.Col, h.Value); err != nil {
		return domain.Hint{}, err
	}
	return h, gm.log.Push(domain.HintUsedAction{
		Row: h.Row, Col: h.Col,
		OldValue: oldState[h.Row][h.Col], OldNotes: oldN,
		Value: h.Value,
	})
}

// Undo pulls the last applied action and plays it backwards.
func (gm *Game) Undo() (domain.Action, bool, error) {
	a, ok := gm.log.Undo()
	if !ok {
		return nil, false, nil
	}
	if err := gm.apply(a, true); err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// Redo re-applies the next undone action forwards.
func (gm *Game) Redo() (domain.Action, bool, error) {
	a, ok := gm.log.Redo()
	if !ok {
		return nil, false, nil
	}
	if err := gm.apply(a, false); err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// apply plays an action against the grid, forwards or reversed. The
// switch is exhaustive over the action variants; an unknown variant
// can only mean a programming error upstream.
func (gm *Game) apply(a domain.Action, reverse bool) error {
	switch act := a.(type) {
	case domain.SetValueAction:
		if reverse {
			return gm.restoreCell(act.Row, act.Col, act.OldValue, act.OldNotes)
		}
		return gm.grid.SetValue(act.Row, act.Col, act.NewValue)
	case domain.ToggleNoteAction:
		notes := act.NewNotes
		if reverse {
			notes = act.OldNotes
		}
		return gm.grid.RestoreNotes(act.Row, act.Col, notes)
	case domain.ClearCellAction:
		if reverse {
			return gm.restoreCell(act.Row, act.Col, act.OldValue, act.OldNotes)
		}
		if err := gm.grid.SetValue(act.Row, act.Col, 0); err != nil {
			return err
		}
		return gm.grid.RestoreNotes(act.Row, act.Col, 0)
	case domain.HintUsedAction:
		if reverse {
			return gm.restoreCell(act.Row, act.Col, act.OldValue, act.OldNotes)
		}
		return gm.grid.SetValue(act.Row, act.Col, act.Value)
	default:
		return fmt.Errorf("%w: %T", history.ErrBadAction, a)
	}
}

// restoreCell puts a cell back to a recorded value and note set.
func (gm *Game) restoreCell(row, col int, v uint8, notes domain.NoteSet) error {
	if err := gm.grid.SetValue(row, col, v); err != nil {
		return err
	}
	if v == 0 {
		return gm.grid.RestoreNotes(row, col, notes)
	}
	return nil
}

// IsComplete reports whether every cell holds a value.
func (gm *Game) IsComplete() bool { return gm.grid.IsComplete() }

// IsWon reports a complete and correct board.
func (gm *Game) IsWon() bool { return gm.grid.IsComplete() && gm.grid.IsCorrect() }

// Save captures the game as a persistable record. The undo log is
// deliberately left out: a restored game starts with empty history.
func (gm *Game) Save() (*domain.SaveGame, error) {
	gridJSON, err := json.Marshal(gm.grid)
	if err != nil {
		return nil, err
	}
	hintJSON, err := json.Marshal(gm.hints)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &domain.SaveGame{
		ID:         gm.ID,
		PuzzleID:   gm.PuzzleID,
		Difficulty: gm.Difficulty,
		Grid:       gridJSON,
		Hints:      hintJSON,
		ElapsedSec: int64(gm.Elapsed() / time.Second),
		CreatedAt:  gm.startedAt.Unix(),
		UpdatedAt:  now.Unix(),
	}, nil
}

// Restore rebuilds a game from a saved record.
func Restore(sg *domain.SaveGame) (*Game, error) {
	var g grid.Grid
	if err := json.Unmarshal(sg.Grid, &g); err != nil {
		return nil, err
	}
	hs, err := hint.FromJSON(sg.Hints, &g)
	if err != nil {
		return nil, err
	}
	id := sg.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Game{
		ID:         id,
		PuzzleID:   sg.PuzzleID,
		Difficulty: sg.Difficulty,
		grid:       &g,
		log:        history.NewDefault(),
		hints:      hs,
		startedAt:  time.Now(),
		elapsed:    time.Duration(sg.ElapsedSec) * time.Second,
	}, nil
}
