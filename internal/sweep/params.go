package sweep

import "fmt"

// GameParams is the (width, height, mine count) triple that fully describes
// a board configuration. Difficulty presets are owned by callers; the
// engine only validates the triple.
type GameParams struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

// Validate rejects non-positive dimensions, negative mine counts and
// boards without at least one safe cell.
func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.MineCount < 0 || p.MineCount >= p.Width*p.Height {
		return fmt.Errorf("%w: %s", ErrInvalidParams, p)
	}
	return nil
}

func (p GameParams) CellCount() int {
	return p.Width * p.Height
}

func (p GameParams) InBounds(pos Position) bool {
	return 0 <= pos.Row && pos.Row < p.Height && 0 <= pos.Col && pos.Col < p.Width
}
