package ports

import (
	"context"
	"time"

	"svw.info/sudoku-game/internal/domain"
	"svw.info/sudoku-game/internal/stats"
)

// PuzzleSource hands out pre-built puzzle/solution pairs. The engine
// never generates boards; it only consumes a pack.
type PuzzleSource interface {
	Pick(ctx context.Context, d domain.Difficulty, seed int64) (*domain.Puzzle, error)
	Daily(ctx context.Context, day time.Time) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}

// GameStore persists saved games and aggregate statistics as JSON.
type GameStore interface {
	SaveGame(ctx context.Context, sg *domain.SaveGame) error
	LoadGame(ctx context.Context, id string) (*domain.SaveGame, error)
	ListGames(ctx context.Context) ([]domain.SaveMeta, error)
	SaveStats(ctx context.Context, s *stats.Stats) error
	LoadStats(ctx context.Context) (*stats.Stats, error)
}
