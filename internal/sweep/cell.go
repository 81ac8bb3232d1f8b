package sweep

// CellState is the player-facing state of a single cell. States are
// mutually exclusive: a flagged cell is not hidden, and must be unflagged
// before it can be revealed.
type CellState int8

const (
	Hidden CellState = iota
	Flagged
	Revealed
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "invalid"
	}
}

// Cell is pure data; all game behavior lives on Board and Engine. Adjacent
// is only meaningful once mines have been placed, and stays 0 on mine cells.
type Cell struct {
	Mine     bool
	State    CellState
	Adjacent int
}
