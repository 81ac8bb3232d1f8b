package sweep

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBoard builds a board with a known mine layout, bypassing random
// placement.
func testBoard(t *testing.T, width, height int, mines []Position) *Board {
	t.Helper()
	b, err := NewBoard(GameParams{Width: width, Height: height, MineCount: len(mines)})
	require.NoError(t, err)
	for _, pos := range mines {
		b.cells[b.index(pos)].Mine = true
	}
	b.computeAdjacency()
	b.minesPlaced = true
	return b
}

func countMines(b *Board) int {
	count := 0
	for row := range b.Height {
		for col := range b.Width {
			if b.CellAt(Position{row, col}).Mine {
				count++
			}
		}
	}
	return count
}

func TestNewBoardRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	_, err := NewBoard(GameParams{Width: 0, Height: 9, MineCount: 10})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewBoard(GameParams{Width: 3, Height: 3, MineCount: 9})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestNewBoardStartsEmpty(t *testing.T) {
	t.Parallel()

	b, err := NewBoard(GameParams{Width: 4, Height: 3, MineCount: 2})
	require.NoError(t, err)
	assert.False(t, b.MinesPlaced())

	for row := range 3 {
		for col := range 4 {
			cell := b.CellAt(Position{row, col})
			assert.False(t, cell.Mine)
			assert.Equal(t, Hidden, cell.State)
			assert.Equal(t, 0, cell.Adjacent)
		}
	}
}

func TestPlaceMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{"9x9(10)", GameParams{9, 9, 10}},
		{"16x16(40)", GameParams{16, 16, 40}},
		{"30x16(99)", GameParams{30, 16, 99}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			rnd := rand.New(rand.NewPCG(1, 2))
			first := Position{Row: test.params.Height / 2, Col: test.params.Width / 2}

			for range 50 {
				b, err := NewBoard(test.params)
				require.NoError(t, err)
				require.NoError(t, b.PlaceMines([]Position{first}, rnd))

				assert.True(t, b.MinesPlaced())
				assert.Equal(t, test.params.MineCount, countMines(b))

				assert.False(t, b.CellAt(first).Mine)
				for _, n := range first.Neighbors(b.Width, b.Height) {
					assert.False(t, b.CellAt(n).Mine)
				}
			}
		})
	}
}

func TestPlaceMinesTwice(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(1, 2))
	b, err := NewBoard(GameParams{9, 9, 10})
	require.NoError(t, err)

	require.NoError(t, b.PlaceMines([]Position{{4, 4}}, rnd))
	assert.ErrorIs(t, b.PlaceMines([]Position{{4, 4}}, rnd), ErrMinesPlaced)
}

func TestPlaceMinesDenseFallback(t *testing.T) {
	t.Parallel()

	// 8 mines on a 3x3 board cannot keep the whole neighborhood of the
	// first click clear; only the clicked cell itself stays safe.
	rnd := rand.New(rand.NewPCG(1, 2))
	b, err := NewBoard(GameParams{3, 3, 8})
	require.NoError(t, err)

	first := Position{1, 1}
	require.NoError(t, b.PlaceMines([]Position{first}, rnd))

	assert.Equal(t, 8, countMines(b))
	assert.False(t, b.CellAt(first).Mine)
	assert.Equal(t, 8, b.CellAt(first).Adjacent)
}

func TestAdjacencyCounts(t *testing.T) {
	t.Parallel()

	// * 1 0
	// 2 2 1
	// 1 * 1
	b := testBoard(t, 3, 3, []Position{{0, 0}, {2, 1}})

	want := map[Position]int{
		{0, 1}: 1, {0, 2}: 0,
		{1, 0}: 2, {1, 1}: 2, {1, 2}: 1,
		{2, 0}: 1, {2, 2}: 1,
	}
	for pos, adjacent := range want {
		assert.Equal(t, adjacent, b.CellAt(pos).Adjacent, "at %s", pos)
	}
}

func TestBoardReveal(t *testing.T) {
	t.Parallel()

	b := testBoard(t, 3, 3, []Position{{0, 0}})

	assert.Equal(t, SafeReveal, b.Reveal(Position{1, 1}))
	assert.Equal(t, Revealed, b.CellAt(Position{1, 1}).State)
	assert.Equal(t, Unchanged, b.Reveal(Position{1, 1}))

	assert.Equal(t, HitMine, b.Reveal(Position{0, 0}))
}

func TestBoardRevealSkipsFlagged(t *testing.T) {
	t.Parallel()

	b := testBoard(t, 3, 3, []Position{{0, 0}})

	require.True(t, b.ToggleFlag(Position{0, 0}))
	assert.Equal(t, Unchanged, b.Reveal(Position{0, 0}))
	assert.Equal(t, Flagged, b.CellAt(Position{0, 0}).State)
}

func TestBoardToggleFlag(t *testing.T) {
	t.Parallel()

	b := testBoard(t, 3, 3, []Position{{0, 0}})
	pos := Position{2, 2}

	assert.True(t, b.ToggleFlag(pos))
	assert.Equal(t, Flagged, b.CellAt(pos).State)
	assert.True(t, b.ToggleFlag(pos))
	assert.Equal(t, Hidden, b.CellAt(pos).State)

	b.Reveal(pos)
	assert.False(t, b.ToggleFlag(pos))
	assert.Equal(t, Revealed, b.CellAt(pos).State)
}

func TestFlaggedAndHiddenNeighbors(t *testing.T) {
	t.Parallel()

	b := testBoard(t, 3, 3, []Position{{0, 0}, {0, 2}})
	center := Position{1, 1}

	assert.Equal(t, 0, b.FlaggedNeighbors(center))
	assert.Len(t, b.HiddenNeighbors(center), 8)

	b.ToggleFlag(Position{0, 0})
	b.ToggleFlag(Position{0, 2})
	b.Reveal(Position{2, 2})

	assert.Equal(t, 2, b.FlaggedNeighbors(center))
	assert.Len(t, b.HiddenNeighbors(center), 5)
}
