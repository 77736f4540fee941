// Package stats aggregates lifetime play statistics across games.
package stats

import (
	"time"

	"svw.info/sudoku-game/internal/domain"
)

// Tally is the per-difficulty breakdown.
type Tally struct {
	Started     int   `json:"started"`
	Won         int   `json:"won"`
	BestTimeSec int64 `json:"bestTimeSec,omitempty"`
}

// Stats is the aggregate persisted between sessions.
type Stats struct {
	ByDifficulty map[string]*Tally `json:"byDifficulty"`
	TotalHints   int               `json:"totalHints"`
}

// New returns an empty aggregate.
func New() *Stats {
	return &Stats{ByDifficulty: map[string]*Tally{}}
}

func (s *Stats) tally(d domain.Difficulty) *Tally {
	if s.ByDifficulty == nil {
		s.ByDifficulty = map[string]*Tally{}
	}
	key := d.String()
	t, ok := s.ByDifficulty[key]
	if !ok {
		t = &Tally{}
		s.ByDifficulty[key] = t
	}
	return t
}

// RecordStart counts a new game at difficulty d.
func (s *Stats) RecordStart(d domain.Difficulty) {
	s.tally(d).Started++
}

// RecordWin counts a solved game, tracks the best completion time,
// and accumulates hint usage.
func (s *Stats) RecordWin(d domain.Difficulty, elapsed time.Duration, hintsUsed int) {
	t := s.tally(d)
	t.Won++
	sec := int64(elapsed / time.Second)
	if t.BestTimeSec == 0 || (sec > 0 && sec < t.BestTimeSec) {
		t.BestTimeSec = sec
	}
	s.TotalHints += hintsUsed
}

// GamesStarted sums starts across difficulties.
func (s *Stats) GamesStarted() int {
	n := 0
	for _, t := range s.ByDifficulty {
		n += t.Started
	}
	return n
}

// GamesWon sums wins across difficulties.
func (s *Stats) GamesWon() int {
	n := 0
	for _, t := range s.ByDifficulty {
		n += t.Won
	}
	return n
}
