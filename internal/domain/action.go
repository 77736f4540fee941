package domain

// ActionKind tags the variants of a reversible edit.
type ActionKind int

const (
	ActionSetValue ActionKind = iota
	ActionToggleNote
	ActionClearCell
	ActionHintUsed
)

func (k ActionKind) String() string {
	switch k {
	case ActionSetValue:
		return "setValue"
	case ActionToggleNote:
		return "toggleNote"
	case ActionClearCell:
		return "clearCell"
	case ActionHintUsed:
		return "hintUsed"
	default:
		return "unknown"
	}
}

// Known reports whether k is one of the defined action kinds.
func (k ActionKind) Known() bool {
	return k >= ActionSetValue && k <= ActionHintUsed
}

// Action is one reversible edit against a grid. Each variant carries
// the cell it touched plus enough pre/post state to play the edit in
// either direction. The history log transports actions opaquely; only
// the game controller interprets them.
type Action interface {
	Kind() ActionKind
	Cell() CellCoord
}

// SetValueAction records a digit being written into a cell. Writing a
// non-zero value wipes the cell's notes, so the old notes ride along.
type SetValueAction struct {
	Row, Col int
	OldValue uint8
	NewValue uint8
	OldNotes NoteSet
}

func (a SetValueAction) Kind() ActionKind { return ActionSetValue }
func (a SetValueAction) Cell() CellCoord  { return CellCoord{Row: a.Row, Col: a.Col} }

// ToggleNoteAction records a candidate digit flipped in an empty cell.
type ToggleNoteAction struct {
	Row, Col int
	Note     uint8
	OldNotes NoteSet
	NewNotes NoteSet
}

func (a ToggleNoteAction) Kind() ActionKind { return ActionToggleNote }
func (a ToggleNoteAction) Cell() CellCoord  { return CellCoord{Row: a.Row, Col: a.Col} }

// ClearCellAction records a cell being erased (value and notes).
type ClearCellAction struct {
	Row, Col int
	OldValue uint8
	OldNotes NoteSet
}

func (a ClearCellAction) Kind() ActionKind { return ActionClearCell }
func (a ClearCellAction) Cell() CellCoord  { return CellCoord{Row: a.Row, Col: a.Col} }

// HintUsedAction records a cell filled by the hint system rather than
// the player.
type HintUsedAction struct {
	Row, Col int
	OldValue uint8
	OldNotes NoteSet
	Value    uint8
}

func (a HintUsedAction) Kind() ActionKind { return ActionHintUsed }
func (a HintUsedAction) Cell() CellCoord  { return CellCoord{Row: a.Row, Col: a.Col} }
