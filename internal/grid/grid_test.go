package grid

import (
	"encoding/json"
	"errors"
	"testing"

	"svw.info/sudoku-game/internal/domain"
)

// The classic puzzle used across the suite (0 = empty).
var samplePuzzle = domain.Matrix{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

var sampleSolution = domain.Matrix{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

func newSample(t *testing.T) *Grid {
	t.Helper()
	g, err := New(samplePuzzle, sampleSolution)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewRejectsBadBoards(t *testing.T) {
	t.Run("puzzle value above 9", func(t *testing.T) {
		p := samplePuzzle
		p[4][4] = 10
		if _, err := New(p, sampleSolution); !errors.Is(err, ErrBadBoard) {
			t.Fatalf("err = %v, want ErrBadBoard", err)
		}
	})
	t.Run("solution with empty cell", func(t *testing.T) {
		s := sampleSolution
		s[0][0] = 0
		if _, err := New(samplePuzzle, s); !errors.Is(err, ErrBadBoard) {
			t.Fatalf("err = %v, want ErrBadBoard", err)
		}
	})
}

func TestFixedCellsNeverChange(t *testing.T) {
	g := newSample(t)
	if !g.IsFixed(0, 0) {
		t.Fatal("(0,0) should be fixed")
	}
	if g.IsFixed(0, 2) {
		t.Fatal("(0,2) should not be fixed")
	}
	for _, v := range []uint8{0, 1, 9} {
		if err := g.SetValue(0, 0, v); !errors.Is(err, ErrFixedCell) {
			t.Fatalf("SetValue(0,0,%d) err = %v, want ErrFixedCell", v, err)
		}
	}
	got, _ := g.Value(0, 0)
	if got != 5 {
		t.Fatalf("Value(0,0) = %d after rejected writes, want 5", got)
	}
}

func TestSetValue(t *testing.T) {
	g := newSample(t)
	if err := g.SetValue(0, 2, 4); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if got, _ := g.Value(0, 2); got != 4 {
		t.Fatalf("Value(0,2) = %d, want 4", got)
	}

	t.Run("rejects out of range input", func(t *testing.T) {
		cases := []struct {
			name string
			r, c int
			v    uint8
		}{
			{"row high", 9, 0, 1},
			{"col negative", 0, -1, 1},
			{"value high", 0, 2, 10},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if err := g.SetValue(tc.r, tc.c, tc.v); !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("err = %v, want ErrOutOfRange", err)
				}
			})
		}
	})

	t.Run("conflicting value is accepted", func(t *testing.T) {
		// Validity is a query, not a write guard.
		if err := g.SetValue(0, 3, 5); err != nil {
			t.Fatalf("conflicting SetValue rejected: %v", err)
		}
	})
}

func TestNotes(t *testing.T) {
	g := newSample(t)
	if err := g.ToggleNote(0, 2, 1); err != nil {
		t.Fatalf("ToggleNote: %v", err)
	}
	if err := g.ToggleNote(0, 2, 4); err != nil {
		t.Fatalf("ToggleNote: %v", err)
	}
	n, _ := g.Notes(0, 2)
	if !n.Has(1) || !n.Has(4) || n.Count() != 2 {
		t.Fatalf("notes = %v, want {1,4}", n.Values())
	}

	t.Run("toggle removes present digit", func(t *testing.T) {
		if err := g.ToggleNote(0, 2, 1); err != nil {
			t.Fatal(err)
		}
		n, _ := g.Notes(0, 2)
		if n.Has(1) {
			t.Fatal("note 1 still present after second toggle")
		}
	})

	t.Run("setting a value clears notes", func(t *testing.T) {
		if err := g.SetValue(0, 2, 4); err != nil {
			t.Fatal(err)
		}
		n, _ := g.Notes(0, 2)
		if !n.Empty() {
			t.Fatalf("notes = %v after SetValue, want empty", n.Values())
		}
	})

	t.Run("note on filled cell fails", func(t *testing.T) {
		if err := g.ToggleNote(0, 2, 3); !errors.Is(err, ErrCellFilled) {
			t.Fatalf("err = %v, want ErrCellFilled", err)
		}
		if err := g.ToggleNote(0, 0, 3); !errors.Is(err, ErrCellFilled) {
			t.Fatalf("fixed cell err = %v, want ErrCellFilled", err)
		}
	})

	t.Run("erasing keeps notes", func(t *testing.T) {
		if err := g.ToggleNote(2, 0, 7); err != nil {
			t.Fatal(err)
		}
		if err := g.SetValue(2, 0, 0); err != nil {
			t.Fatal(err)
		}
		n, _ := g.Notes(2, 0)
		if !n.Has(7) {
			t.Fatal("writing 0 should not clear notes")
		}
	})

	t.Run("rejects bad digits", func(t *testing.T) {
		for _, bad := range []uint8{0, 10} {
			if err := g.ToggleNote(2, 2, bad); !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("ToggleNote(..%d) err = %v, want ErrOutOfRange", bad, err)
			}
		}
	})
}

func TestIsValidAndConflicts(t *testing.T) {
	g := newSample(t)

	if g.IsValid(0, 2, 5) {
		t.Fatal("IsValid(0,2,5) = true, want false (5 sits at (0,0))")
	}
	conf := g.Conflicts(0, 2, 5)
	found := false
	for _, cc := range conf {
		if cc == (domain.CellCoord{Row: 0, Col: 0}) {
			found = true
		}
	}
	if !found {
		t.Fatalf("Conflicts(0,2,5) = %v, want to include (0,0)", conf)
	}

	t.Run("cell excluded from its own scan", func(t *testing.T) {
		// (0,0) holds 5; re-checking it against 5 must pass.
		if !g.IsValid(0, 0, 5) {
			t.Fatal("IsValid(0,0,5) = false for the cell's own value")
		}
	})

	t.Run("out of range value is invalid with no conflicts", func(t *testing.T) {
		if g.IsValid(0, 2, 0) || g.IsValid(0, 2, 10) {
			t.Fatal("out-of-range value reported valid")
		}
		if got := g.Conflicts(0, 2, 0); len(got) != 0 {
			t.Fatalf("Conflicts with value 0 = %v, want empty", got)
		}
	})

	t.Run("validity matches conflict count everywhere", func(t *testing.T) {
		for r := 0; r < 9; r++ {
			for c := 0; c < 9; c++ {
				for v := uint8(1); v <= 9; v++ {
					valid := g.IsValid(r, c, v)
					conf := g.Conflicts(r, c, v)
					if valid != (len(conf) == 0) {
						t.Fatalf("(%d,%d,%d): IsValid=%v but %d conflicts", r, c, v, valid, len(conf))
					}
				}
			}
		}
	})

	t.Run("conflicts are distinct", func(t *testing.T) {
		// A peer sharing row and box with the probe must appear once.
		if err := g.SetValue(0, 2, 9); err != nil {
			t.Fatal(err)
		}
		conf := g.Conflicts(0, 1, 9)
		seen := map[domain.CellCoord]int{}
		for _, cc := range conf {
			seen[cc]++
			if seen[cc] > 1 {
				t.Fatalf("conflict %v reported twice", cc)
			}
		}
	})
}

func TestCompleteAndCorrect(t *testing.T) {
	g := newSample(t)
	if g.IsComplete() {
		t.Fatal("fresh sample reported complete")
	}
	if g.IsCorrect() {
		t.Fatal("fresh sample reported correct")
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g.IsFixed(r, c) {
				continue
			}
			if err := g.SetValue(r, c, sampleSolution[r][c]); err != nil {
				t.Fatalf("fill (%d,%d): %v", r, c, err)
			}
		}
	}
	if !g.IsComplete() || !g.IsCorrect() {
		t.Fatalf("filled from solution: complete=%v correct=%v", g.IsComplete(), g.IsCorrect())
	}

	// Swap one free cell to a wrong value: still complete, no longer correct.
	if err := g.SetValue(0, 2, 9); err != nil {
		t.Fatal(err)
	}
	if !g.IsComplete() {
		t.Fatal("grid with wrong value reported incomplete")
	}
	if g.IsCorrect() {
		t.Fatal("grid with wrong value reported correct")
	}
}

func TestCloneIndependence(t *testing.T) {
	g := newSample(t)
	if err := g.ToggleNote(0, 2, 4); err != nil {
		t.Fatal(err)
	}
	clone := g.Clone()

	if err := clone.SetValue(0, 3, 6); err != nil {
		t.Fatal(err)
	}
	if got, _ := g.Value(0, 3); got != 0 {
		t.Fatalf("mutating clone leaked into source: Value(0,3) = %d", got)
	}

	if err := g.ToggleNote(0, 2, 1); err != nil {
		t.Fatal(err)
	}
	n, _ := clone.Notes(0, 2)
	if n.Has(1) {
		t.Fatal("mutating source leaked into clone's notes")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := newSample(t)
	if err := g.SetValue(0, 2, 4); err != nil {
		t.Fatal(err)
	}
	if err := g.ToggleNote(2, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.ToggleNote(2, 0, 2); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Grid
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Current() != g.Current() {
		t.Fatal("current values did not round-trip")
	}
	n, _ := back.Notes(2, 0)
	if !n.Has(1) || !n.Has(2) || n.Count() != 2 {
		t.Fatalf("notes did not round-trip: %v", n.Values())
	}
	if !back.IsFixed(0, 0) || back.IsFixed(0, 2) {
		t.Fatal("fixed set did not round-trip")
	}
}

func TestUnmarshalRejectsMalformedInput(t *testing.T) {
	g := newSample(t)
	base, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}

	mutate := func(t *testing.T, fn func(m map[string]json.RawMessage)) []byte {
		t.Helper()
		var m map[string]json.RawMessage
		if err := json.Unmarshal(base, &m); err != nil {
			t.Fatal(err)
		}
		fn(m)
		out, err := json.Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		return out
	}

	cases := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("{")},
		{"missing puzzle", mutate(t, func(m map[string]json.RawMessage) { delete(m, "puzzle") })},
		{"short row", mutate(t, func(m map[string]json.RawMessage) {
			m["current"] = []byte(`[[1,2,3],[4],[],[],[],[],[],[],[]]`)
		})},
		{"altered fixed cell", mutate(t, func(m map[string]json.RawMessage) {
			var rows [][]uint8
			_ = json.Unmarshal(m["current"], &rows)
			rows[0][0] = 9 // puzzle gives 5 here
			out, _ := json.Marshal(rows)
			m["current"] = out
		})},
		{"notes on filled cell", mutate(t, func(m map[string]json.RawMessage) {
			var rows [][][]uint8
			_ = json.Unmarshal(m["notes"], &rows)
			rows[0][0] = []uint8{3} // (0,0) holds a value
			out, _ := json.Marshal(rows)
			m["notes"] = out
		})},
		{"bad note digit", mutate(t, func(m map[string]json.RawMessage) {
			var rows [][][]uint8
			_ = json.Unmarshal(m["notes"], &rows)
			rows[2][0] = []uint8{12}
			out, _ := json.Marshal(rows)
			m["notes"] = out
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var back Grid
			if err := json.Unmarshal(tc.data, &back); err == nil {
				t.Fatal("unmarshal succeeded, want error")
			}
		})
	}
}
