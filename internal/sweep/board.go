package sweep

import "math/rand/v2"

// RevealOutcome reports what a single-cell reveal did.
type RevealOutcome int

const (
	// Unchanged means the cell was not hidden, so nothing happened.
	Unchanged RevealOutcome = iota
	// SafeReveal means a safe cell was revealed; its adjacency count is
	// available via CellAt.
	SafeReveal
	// HitMine means the revealed cell contained a mine.
	HitMine
)

// Board owns the grid of cells for one game. Mines are not placed at
// construction; PlaceMines runs once, on the first reveal, so the first
// click can be kept safe.
type Board struct {
	GameParams
	cells       []Cell
	minesPlaced bool
}

func NewBoard(params GameParams) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Board{
		GameParams: params,
		cells:      make([]Cell, params.CellCount()),
	}, nil
}

func (b *Board) index(pos Position) int {
	return pos.Row*b.Width + pos.Col
}

func (b *Board) CellAt(pos Position) Cell {
	return b.cells[b.index(pos)]
}

func (b *Board) MinesPlaced() bool {
	return b.minesPlaced
}

// PlaceMines picks MineCount distinct mine positions uniformly at random
// from the grid minus the excluded positions and their neighborhoods. When
// mine density leaves too few candidates, only the excluded positions
// themselves are kept safe, which guarantees placement always succeeds on
// any valid board. Adjacency counts are computed here, once.
func (b *Board) PlaceMines(excluded []Position, rnd *rand.Rand) error {
	if b.minesPlaced {
		return ErrMinesPlaced
	}

	banned := make(map[Position]bool, len(excluded)*9)
	for _, pos := range excluded {
		banned[pos] = true
	}
	safeZone := make(map[Position]bool, len(excluded)*9)
	for _, pos := range excluded {
		for _, n := range pos.Neighbors(b.Width, b.Height) {
			safeZone[n] = true
		}
	}

	candidates := make([]Position, 0, b.CellCount())
	for row := range b.Height {
		for col := range b.Width {
			pos := Position{Row: row, Col: col}
			if !banned[pos] && !safeZone[pos] {
				candidates = append(candidates, pos)
			}
		}
	}

	if len(candidates) < b.MineCount {
		// Not enough room to keep the neighborhoods clear; fall back to
		// protecting the excluded cells only.
		candidates = candidates[:0]
		for row := range b.Height {
			for col := range b.Width {
				pos := Position{Row: row, Col: col}
				if !banned[pos] {
					candidates = append(candidates, pos)
				}
			}
		}
	}

	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, pos := range candidates[:b.MineCount] {
		b.cells[b.index(pos)].Mine = true
	}

	b.computeAdjacency()
	b.minesPlaced = true
	return nil
}

func (b *Board) computeAdjacency() {
	for row := range b.Height {
		for col := range b.Width {
			pos := Position{Row: row, Col: col}
			cell := &b.cells[b.index(pos)]
			if cell.Mine {
				continue
			}
			count := 0
			for _, n := range pos.Neighbors(b.Width, b.Height) {
				if b.cells[b.index(n)].Mine {
					count++
				}
			}
			cell.Adjacent = count
		}
	}
}

// Reveal opens a single cell. Anything but a hidden cell is a no-op; in
// particular a flagged cell must be unflagged first.
func (b *Board) Reveal(pos Position) RevealOutcome {
	cell := &b.cells[b.index(pos)]
	if cell.State != Hidden {
		return Unchanged
	}
	cell.State = Revealed
	if cell.Mine {
		return HitMine
	}
	return SafeReveal
}

// ToggleFlag flips a cell between Hidden and Flagged. Revealed cells are
// left alone. Reports whether anything changed.
func (b *Board) ToggleFlag(pos Position) bool {
	cell := &b.cells[b.index(pos)]
	switch cell.State {
	case Hidden:
		cell.State = Flagged
	case Flagged:
		cell.State = Hidden
	default:
		return false
	}
	return true
}

func (b *Board) FlaggedNeighbors(pos Position) int {
	count := 0
	for _, n := range pos.Neighbors(b.Width, b.Height) {
		if b.cells[b.index(n)].State == Flagged {
			count++
		}
	}
	return count
}

func (b *Board) HiddenNeighbors(pos Position) []Position {
	var hidden []Position
	for _, n := range pos.Neighbors(b.Width, b.Height) {
		if b.cells[b.index(n)].State == Hidden {
			hidden = append(hidden, n)
		}
	}
	return hidden
}

// Counts tallies revealed and flagged cells in one pass.
func (b *Board) Counts() (revealed, flagged int) {
	for i := range b.cells {
		switch b.cells[i].State {
		case Revealed:
			revealed++
		case Flagged:
			flagged++
		}
	}
	return revealed, flagged
}

// AllSafeRevealed reports whether every non-mine cell has been revealed,
// which is the win condition.
func (b *Board) AllSafeRevealed() bool {
	for i := range b.cells {
		if !b.cells[i].Mine && b.cells[i].State != Revealed {
			return false
		}
	}
	return true
}
