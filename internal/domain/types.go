package domain

// Matrix is a full 9x9 value grid. 0 marks an empty cell.
type Matrix [9][9]uint8

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Hint names one empty cell and the solution value that belongs there.
type Hint struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Value uint8 `json:"value"`
}

// Puzzle is a pre-built puzzle/solution pair shipped in a pack.
type Puzzle struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Givens     Matrix     `json:"givens"`
	Solution   Matrix     `json:"solution"`
}

// PuzzleMeta is a lightweight listing entry for a pack puzzle.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
}

// SaveGame is a persisted in-progress game. The undo history is
// intentionally absent: a restored game starts with an empty log.
type SaveGame struct {
	ID         string     `json:"id"`
	PuzzleID   string     `json:"puzzleId,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Grid       []byte     `json:"grid"`
	Hints      []byte     `json:"hints,omitempty"`
	ElapsedSec int64      `json:"elapsedSec,omitempty"`
	CreatedAt  int64      `json:"createdAt"`
	UpdatedAt  int64      `json:"updatedAt"`
}

// SaveMeta is a lightweight listing entry for a saved game.
type SaveMeta struct {
	ID         string     `json:"id"`
	PuzzleID   string     `json:"puzzleId,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	UpdatedAt  int64      `json:"updatedAt"`
}

// Filled counts the non-zero cells of m.
func (m *Matrix) Filled() int {
	n := 0
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if m[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// InBounds reports whether (row,col) addresses a cell on a 9x9 board.
func InBounds(row, col int) bool {
	return row >= 0 && row <= 8 && col >= 0 && col <= 8
}
