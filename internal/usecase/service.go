package usecase

import (
	"context"
	"errors"
	"time"

	"svw.info/sudoku-game/internal/domain"
	"svw.info/sudoku-game/internal/ports"
	"svw.info/sudoku-game/internal/stats"
	"svw.info/sudoku-game/internal/validator"
)

// Service wires the puzzle source and the store around game sessions.
type Service struct {
	Source ports.PuzzleSource
	Store  ports.GameStore

	check *validator.Board
	stats *stats.Stats
}

var errNotConfigured = errors.New("usecase dependency not configured")

// NewService loads persisted stats if a store is present; a missing
// or unreadable stats file just starts a fresh aggregate.
func NewService(src ports.PuzzleSource, st ports.GameStore) *Service {
	s := &Service{Source: src, Store: st, check: validator.New(), stats: stats.New()}
	if st != nil {
		if loaded, err := st.LoadStats(context.Background()); err == nil && loaded != nil {
			s.stats = loaded
		}
	}
	return s
}

// StartGame picks a puzzle at the given difficulty and opens a session.
func (s *Service) StartGame(ctx context.Context, d domain.Difficulty, seed int64) (*Game, error) {
	if s.Source == nil {
		return nil, errNotConfigured
	}
	p, err := s.Source.Pick(ctx, d, seed)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, p)
}

// StartDaily opens the date-seeded daily challenge.
func (s *Service) StartDaily(ctx context.Context, day time.Time) (*Game, error) {
	if s.Source == nil {
		return nil, errNotConfigured
	}
	p, err := s.Source.Daily(ctx, day)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, p)
}

func (s *Service) open(ctx context.Context, p *domain.Puzzle) (*Game, error) {
	g, err := NewGame(p)
	if err != nil {
		return nil, err
	}
	s.stats.RecordStart(p.Difficulty)
	s.persistStats(ctx)
	return g, nil
}

// Check runs the whole-board conflict scan over a game's working grid.
func (s *Service) Check(ctx context.Context, g *Game) (bool, []domain.CellCoord, error) {
	cur := g.Grid().Current()
	return s.check.Validate(ctx, &cur)
}

// RecordWin folds a finished game into the aggregate statistics.
func (s *Service) RecordWin(ctx context.Context, g *Game) {
	s.stats.RecordWin(g.Difficulty, g.Elapsed(), g.HintsUsed())
	s.persistStats(ctx)
}

// Stats returns the live aggregate.
func (s *Service) Stats() *stats.Stats { return s.stats }

func (s *Service) persistStats(ctx context.Context) {
	if s.Store == nil {
		return
	}
	// Stats are advisory; a failed write must not break play.
	_ = s.Store.SaveStats(ctx, s.stats)
}

// SaveGame persists a session snapshot.
func (s *Service) SaveGame(ctx context.Context, g *Game) (*domain.SaveGame, error) {
	if s.Store == nil {
		return nil, errNotConfigured
	}
	sg, err := g.Save()
	if err != nil {
		return nil, err
	}
	if err := s.Store.SaveGame(ctx, sg); err != nil {
		return nil, err
	}
	return sg, nil
}

// LoadGame restores a session from the store. The restored game has
// an empty undo log by design.
func (s *Service) LoadGame(ctx context.Context, id string) (*Game, error) {
	if s.Store == nil {
		return nil, errNotConfigured
	}
	sg, err := s.Store.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return Restore(sg)
}

// ListGames lists saved sessions.
func (s *Service) ListGames(ctx context.Context) ([]domain.SaveMeta, error) {
	if s.Store == nil {
		return nil, errNotConfigured
	}
	return s.Store.ListGames(ctx)
}

// ListPuzzles lists the puzzle pack contents.
func (s *Service) ListPuzzles(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if s.Source == nil {
		return nil, errNotConfigured
	}
	return s.Source.List(ctx)
}
