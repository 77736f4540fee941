// Package storage persists saved games and statistics as JSON files
// under a data directory, bucketed by difficulty.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"svw.info/sudoku-game/internal/domain"
	"svw.info/sudoku-game/internal/stats"
)

const statsFile = "stats.json"

type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

var difficulties = []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard, domain.Expert}

func (s *FS) pathFor(id string, d domain.Difficulty) string {
	return filepath.Join(s.dir, d.String(), strings.TrimSpace(id)+".json")
}

// SaveGame writes one save file under its difficulty bucket.
func (s *FS) SaveGame(ctx context.Context, sg *domain.SaveGame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sg == nil || sg.ID == "" {
		return errors.New("invalid save: missing ID")
	}
	target := s.pathFor(sg.ID, sg.Difficulty)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(sg)
}

// LoadGame searches every difficulty bucket for the save id.
func (s *FS) LoadGame(ctx context.Context, id string) (*domain.SaveGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, d := range difficulties {
		data, err := os.ReadFile(s.pathFor(id, d))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var out domain.SaveGame
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

// ListGames scans the difficulty buckets and returns save metadata.
func (s *FS) ListGames(ctx context.Context) ([]domain.SaveMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.SaveMeta
	for _, d := range difficulties {
		ents, err := os.ReadDir(filepath.Join(s.dir, d.String()))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.dir, d.String(), e.Name()))
			if err != nil {
				continue
			}
			var sg domain.SaveGame
			if err := json.Unmarshal(data, &sg); err != nil || sg.ID == "" {
				continue
			}
			out = append(out, domain.SaveMeta{
				ID:         sg.ID,
				PuzzleID:   sg.PuzzleID,
				Difficulty: sg.Difficulty,
				UpdatedAt:  sg.UpdatedAt,
			})
		}
	}
	return out, nil
}

// SaveStats writes the aggregate statistics file.
func (s *FS) SaveStats(ctx context.Context, st *stats.Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st == nil {
		return errors.New("invalid stats: nil")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, statsFile), data, 0o644)
}

// LoadStats reads the aggregate statistics file; a missing file is
// not an error and yields a fresh aggregate.
func (s *FS) LoadStats(ctx context.Context) (*stats.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, statsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return stats.New(), nil
		}
		return nil, err
	}
	out := stats.New()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
