package stats

import (
	"testing"
	"time"

	"svw.info/sudoku-game/internal/domain"
)

func TestRecording(t *testing.T) {
	s := New()
	s.RecordStart(domain.Easy)
	s.RecordStart(domain.Easy)
	s.RecordStart(domain.Expert)
	s.RecordWin(domain.Easy, 4*time.Minute, 1)
	s.RecordWin(domain.Easy, 3*time.Minute, 0)

	if got := s.GamesStarted(); got != 3 {
		t.Fatalf("GamesStarted() = %d, want 3", got)
	}
	if got := s.GamesWon(); got != 2 {
		t.Fatalf("GamesWon() = %d, want 2", got)
	}
	if s.TotalHints != 1 {
		t.Fatalf("TotalHints = %d, want 1", s.TotalHints)
	}

	tally := s.ByDifficulty[domain.Easy.String()]
	if tally == nil || tally.Started != 2 || tally.Won != 2 {
		t.Fatalf("easy tally = %+v", tally)
	}
	// The faster win replaces the slower one.
	if tally.BestTimeSec != 180 {
		t.Fatalf("BestTimeSec = %d, want 180", tally.BestTimeSec)
	}
}

func TestNilMapRepair(t *testing.T) {
	// A stats value decoded from an empty JSON object has a nil map.
	var s Stats
	s.RecordStart(domain.Medium)
	if s.GamesStarted() != 1 {
		t.Fatalf("GamesStarted() = %d after nil-map record", s.GamesStarted())
	}
}
