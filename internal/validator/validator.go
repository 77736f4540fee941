// Package validator performs fast whole-board constraint checks.
package validator

import (
	"context"

	"svw.info/sudoku-game/internal/domain"
)

// Board checks a full matrix for duplicate digits per row, column,
// and box using one 9-bit mask per unit.
type Board struct{}

func New() *Board { return &Board{} }

// Validate scans every unit and returns the cells that repeat a digit
// already seen earlier in the same unit. ok is true when no cell
// conflicts. Empty cells never conflict.
func (v *Board) Validate(ctx context.Context, m *domain.Matrix) (bool, []domain.CellCoord, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	var conf []domain.CellCoord
	scan := func(cells [9]domain.CellCoord) {
		mask := 0
		for _, cc := range cells {
			val := m[cc.Row][cc.Col]
			if val == 0 {
				continue
			}
			bit := 1 << val
			if mask&bit != 0 {
				conf = append(conf, cc)
			}
			mask |= bit
		}
	}
	for i := 0; i < 9; i++ {
		var row, col [9]domain.CellCoord
		for j := 0; j < 9; j++ {
			row[j] = domain.CellCoord{Row: i, Col: j}
			col[j] = domain.CellCoord{Row: j, Col: i}
		}
		scan(row)
		scan(col)
	}
	for br := 0; br < 3; br++ {
		for bc := 0; bc < 3; bc++ {
			var box [9]domain.CellCoord
			for k := 0; k < 9; k++ {
				box[k] = domain.CellCoord{Row: br*3 + k/3, Col: bc*3 + k%3}
			}
			scan(box)
		}
	}
	return len(conf) == 0, conf, nil
}
