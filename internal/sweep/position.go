package sweep

import "fmt"

// Position identifies a single cell by its row and column. It is a plain
// value type so it can be used directly as a map key, which the flood fill
// and chording logic rely on.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Neighbors returns the positions 8-adjacent to p that fall inside a
// width x height grid. Corner cells have 3 neighbors, edge cells 5,
// interior cells 8.
func (p Position) Neighbors(width, height int) []Position {
	ns := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := p.Row+dr, p.Col+dc
			if 0 <= r && r < height && 0 <= c && c < width {
				ns = append(ns, Position{Row: r, Col: c})
			}
		}
	}
	return ns
}
