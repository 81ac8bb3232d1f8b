package sweep

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEngine wraps a deterministic board in an already-started engine.
func testEngine(t *testing.T, width, height int, mines []Position) *Engine {
	t.Helper()
	e := &Engine{
		board: testBoard(t, width, height, mines),
		state: InProgress,
		rnd:   rand.New(rand.NewPCG(1, 2)),
		now:   time.Now,
	}
	e.startedAt = e.now()
	return e
}

// wallBoard is a 5x5 grid split by a vertical wall of mines in column 2.
// Columns 0 and 1 form a zero region plus its numbered border; columns 3
// and 4 mirror it.
func wallMines() []Position {
	return []Position{{0, 2}, {1, 2}, {2, 2}, {3, 2}, {4, 2}}
}

func changedPositions(res *MoveResult) map[Position]CellChange {
	m := make(map[Position]CellChange, len(res.Changed))
	for _, c := range res.Changed {
		m[c.Pos] = c
	}
	return m
}

func TestFirstRevealIsAlwaysSafe(t *testing.T) {
	t.Parallel()

	params := GameParams{Width: 9, Height: 9, MineCount: 10}
	first := Position{4, 4}

	for seed := range uint64(100) {
		rnd := rand.New(rand.NewPCG(seed, seed+1))
		e, err := NewEngine(params, rnd)
		require.NoError(t, err)

		assert.Equal(t, NotStarted, e.State())

		res, err := e.Reveal(first)
		require.NoError(t, err)

		assert.NotEqual(t, Lost, res.State)
		assert.Equal(t, 10, countMines(e.board))
		assert.False(t, e.board.CellAt(first).Mine)
		for _, n := range first.Neighbors(9, 9) {
			assert.False(t, e.board.CellAt(n).Mine)
		}
	}
}

func TestFirstRevealFloodsItsZeroRegion(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(42, 43))
	e, err := NewEngine(GameParams{9, 9, 10}, rnd)
	require.NoError(t, err)

	first := Position{4, 4}
	res, err := e.Reveal(first)
	require.NoError(t, err)

	// The clicked cell's whole neighborhood is mine-free, so it is a zero
	// cell and at least its 8 neighbors open with it.
	assert.Equal(t, 0, e.board.CellAt(first).Adjacent)
	changed := changedPositions(res)
	require.Contains(t, changed, first)
	for _, n := range first.Neighbors(9, 9) {
		assert.Contains(t, changed, n)
	}

	// Every revealed zero cell must have all of its neighbors revealed,
	// otherwise the flood stopped early.
	for pos, change := range changed {
		if change.Adjacent != 0 {
			continue
		}
		for _, n := range pos.Neighbors(9, 9) {
			assert.Equal(t, Revealed, e.board.CellAt(n).State,
				"zero cell %s has unrevealed neighbor %s", pos, n)
		}
	}
}

func TestFloodFillRevealsExactRegion(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	res, err := e.Reveal(Position{0, 0})
	require.NoError(t, err)
	assert.Equal(t, InProgress, res.State)

	// Exactly columns 0 (zero region) and 1 (numbered border); the wall
	// and everything beyond it stays hidden.
	changed := changedPositions(res)
	assert.Len(t, res.Changed, 10)
	for row := range 5 {
		assert.Contains(t, changed, Position{row, 0})
		assert.Contains(t, changed, Position{row, 1})
		for col := 2; col < 5; col++ {
			assert.Equal(t, Hidden, e.board.CellAt(Position{row, col}).State)
		}
	}

	// No duplicates: each changed cell appears exactly once.
	assert.Len(t, changed, len(res.Changed))
}

func TestFloodFillStopsAtFlags(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	_, err := e.ToggleFlag(Position{2, 1})
	require.NoError(t, err)

	res, err := e.Reveal(Position{0, 0})
	require.NoError(t, err)

	assert.Len(t, res.Changed, 9)
	assert.Equal(t, Flagged, e.board.CellAt(Position{2, 1}).State)
}

func TestRevealFlaggedCellIsNoOp(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	_, err := e.ToggleFlag(Position{0, 0})
	require.NoError(t, err)

	res, err := e.Reveal(Position{0, 0})
	require.NoError(t, err)
	assert.Empty(t, res.Changed)
	assert.Equal(t, Flagged, e.board.CellAt(Position{0, 0}).State)
}

func TestRevealRevealedCellIsNoOp(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	_, err := e.Reveal(Position{0, 1})
	require.NoError(t, err)

	res, err := e.Reveal(Position{0, 1})
	require.NoError(t, err)
	assert.Empty(t, res.Changed)
}

func TestRevealMineLosesAndShowsAllMines(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	// A flag on a safe cell must survive the loss untouched.
	_, err := e.ToggleFlag(Position{4, 4})
	require.NoError(t, err)

	res, err := e.Reveal(Position{2, 2})
	require.NoError(t, err)

	assert.Equal(t, Lost, res.State)
	for _, pos := range wallMines() {
		cell := e.board.CellAt(pos)
		assert.Equal(t, Revealed, cell.State, "mine at %s", pos)
	}
	assert.Equal(t, Flagged, e.board.CellAt(Position{4, 4}).State)

	changed := changedPositions(res)
	for _, pos := range wallMines() {
		require.Contains(t, changed, pos)
		assert.True(t, changed[pos].Mine)
	}
}

func TestCommandsAfterGameOver(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())
	_, err := e.Reveal(Position{2, 2})
	require.NoError(t, err)
	require.Equal(t, Lost, e.State())

	before := e.View()

	_, err = e.Reveal(Position{0, 0})
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = e.ToggleFlag(Position{0, 0})
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = e.ChordReveal(Position{0, 0})
	assert.ErrorIs(t, err, ErrGameOver)

	assert.Equal(t, before, e.View())
}

func TestWinAutoFlagsRemainingMines(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 2, 2, []Position{{0, 0}})

	for _, pos := range []Position{{0, 1}, {1, 0}} {
		res, err := e.Reveal(pos)
		require.NoError(t, err)
		assert.Equal(t, InProgress, res.State)
	}

	res, err := e.Reveal(Position{1, 1})
	require.NoError(t, err)

	assert.Equal(t, Won, res.State)
	assert.Equal(t, 0, res.MinesRemaining)
	assert.Equal(t, Flagged, e.board.CellAt(Position{0, 0}).State)

	changed := changedPositions(res)
	require.Contains(t, changed, Position{0, 0})
	assert.Equal(t, Flagged, changed[Position{0, 0}].State)

	stats := e.Stats()
	assert.Equal(t, Won, stats.State)
	assert.Equal(t, 0, stats.MinesRemaining)
}

func TestToggleFlag(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 3, 3, []Position{{0, 0}})
	pos := Position{2, 2}

	res, err := e.ToggleFlag(pos)
	require.NoError(t, err)
	require.Len(t, res.Changed, 1)
	assert.Equal(t, Flagged, res.Changed[0].State)
	assert.Equal(t, 0, res.MinesRemaining)

	res, err = e.ToggleFlag(pos)
	require.NoError(t, err)
	require.Len(t, res.Changed, 1)
	assert.Equal(t, Hidden, res.Changed[0].State)
	assert.Equal(t, 1, res.MinesRemaining)
}

func TestToggleFlagOnRevealedCellIsNoOp(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 3, 3, []Position{{0, 0}})
	pos := Position{2, 2}

	_, err := e.Reveal(pos)
	require.NoError(t, err)

	res, err := e.ToggleFlag(pos)
	require.NoError(t, err)
	assert.Empty(t, res.Changed)
}

func TestOverFlaggingGoesNegative(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 3, 3, []Position{{0, 0}})

	for _, pos := range []Position{{0, 1}, {1, 0}, {1, 1}} {
		_, err := e.ToggleFlag(pos)
		require.NoError(t, err)
	}
	assert.Equal(t, -2, e.Stats().MinesRemaining)
}

func TestFlagBeforeFirstReveal(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(7, 8))
	e, err := NewEngine(GameParams{9, 9, 10}, rnd)
	require.NoError(t, err)

	res, err := e.ToggleFlag(Position{0, 0})
	require.NoError(t, err)
	assert.Len(t, res.Changed, 1)
	assert.Equal(t, NotStarted, e.State())
	assert.False(t, e.board.MinesPlaced())
}

func TestChordReveal(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	// Open the left side, flag the three wall mines next to (2,1), then
	// chord the "3" at (2,1).
	_, err := e.Reveal(Position{0, 0})
	require.NoError(t, err)
	require.Equal(t, 3, e.board.CellAt(Position{2, 1}).Adjacent)

	for _, pos := range []Position{{1, 2}, {2, 2}, {3, 2}} {
		_, err := e.ToggleFlag(pos)
		require.NoError(t, err)
	}

	res, err := e.ChordReveal(Position{2, 1})
	require.NoError(t, err)

	// The only hidden unflagged neighbors of (2,1) are gone now.
	assert.Empty(t, changedPositions(res))
	assert.Equal(t, InProgress, res.State)
}

func TestChordRevealOpensHiddenNeighbors(t *testing.T) {
	t.Parallel()

	// Single mine at the corner; (1,1) reads 1.
	e := testEngine(t, 3, 3, []Position{{0, 0}})

	_, err := e.Reveal(Position{1, 1})
	require.NoError(t, err)
	_, err = e.ToggleFlag(Position{0, 0})
	require.NoError(t, err)

	res, err := e.ChordReveal(Position{1, 1})
	require.NoError(t, err)

	// Every safe cell opens (the (2,2) area floods), winning the game.
	assert.Equal(t, Won, res.State)
	changed := changedPositions(res)
	assert.Contains(t, changed, Position{0, 1})
	assert.Contains(t, changed, Position{2, 2})
}

func TestChordRevealCountMismatchIsNoOp(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 3, 3, []Position{{0, 0}})

	_, err := e.Reveal(Position{1, 1})
	require.NoError(t, err)

	// No flags at all: 0 != 1.
	res, err := e.ChordReveal(Position{1, 1})
	require.NoError(t, err)
	assert.Empty(t, res.Changed)

	// Two flags: 2 != 1.
	_, err = e.ToggleFlag(Position{0, 0})
	require.NoError(t, err)
	_, err = e.ToggleFlag(Position{0, 1})
	require.NoError(t, err)

	res, err = e.ChordReveal(Position{1, 1})
	require.NoError(t, err)
	assert.Empty(t, res.Changed)
}

func TestChordRevealOnHiddenOrZeroCellIsNoOp(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	res, err := e.ChordReveal(Position{4, 4})
	require.NoError(t, err)
	assert.Empty(t, res.Changed)

	_, err = e.Reveal(Position{0, 0})
	require.NoError(t, err)

	// (1,0) is a zero cell; chording it is meaningless.
	res, err = e.ChordReveal(Position{1, 0})
	require.NoError(t, err)
	assert.Empty(t, res.Changed)
}

func TestChordRevealShortCircuitsOnMine(t *testing.T) {
	t.Parallel()

	// Mines in both top corners; (1,1) reads 2. Flag one mine correctly
	// and one safe cell, so the chord fires and hits the mine at (0,2)
	// before it reaches the cells after it in neighbor order.
	e := testEngine(t, 3, 3, []Position{{0, 0}, {0, 2}})

	_, err := e.Reveal(Position{1, 1})
	require.NoError(t, err)
	_, err = e.ToggleFlag(Position{0, 0})
	require.NoError(t, err)
	_, err = e.ToggleFlag(Position{0, 1})
	require.NoError(t, err)

	res, err := e.ChordReveal(Position{1, 1})
	require.NoError(t, err)

	assert.Equal(t, Lost, res.State)
	// Safe neighbors after the mine in order were never opened.
	for _, pos := range []Position{{1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}} {
		assert.Equal(t, Hidden, e.board.CellAt(pos).State, "at %s", pos)
	}
}

func TestOutOfBounds(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 3, 3, []Position{{0, 0}})

	for _, pos := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, err := e.Reveal(pos)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = e.ToggleFlag(pos)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = e.ChordReveal(pos)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
}

func TestRestart(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())
	_, err := e.Reveal(Position{2, 2})
	require.NoError(t, err)
	require.Equal(t, Lost, e.State())

	require.NoError(t, e.Restart(GameParams{9, 9, 10}))
	assert.Equal(t, NotStarted, e.State())
	assert.Equal(t, GameParams{9, 9, 10}, e.Params())

	res, err := e.Reveal(Position{4, 4})
	require.NoError(t, err)
	assert.NotEqual(t, Lost, res.State)
}

func TestRestartRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	err := e.Restart(GameParams{0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidParams)

	// The old board is untouched.
	assert.Equal(t, GameParams{5, 5, 5}, e.Params())
	assert.Equal(t, InProgress, e.State())
}

func TestStatsElapsed(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 2, 2, []Position{{0, 0}})

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }
	e.startedAt = clock

	assert.Equal(t, time.Duration(0), e.StatsAt(clock).Elapsed)

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, 30*time.Second, e.StatsAt(clock).Elapsed)

	// Win the game; elapsed freezes at the winning move.
	for _, pos := range []Position{{0, 1}, {1, 0}, {1, 1}} {
		_, err := e.Reveal(pos)
		require.NoError(t, err)
	}
	require.Equal(t, Won, e.State())

	clock = clock.Add(time.Hour)
	assert.Equal(t, 30*time.Second, e.StatsAt(clock).Elapsed)
}

func TestStatsCounts(t *testing.T) {
	t.Parallel()

	e := testEngine(t, 5, 5, wallMines())

	_, err := e.Reveal(Position{0, 0})
	require.NoError(t, err)
	_, err = e.ToggleFlag(Position{2, 2})
	require.NoError(t, err)

	stats := e.Stats()
	assert.Equal(t, InProgress, stats.State)
	assert.Equal(t, 10, stats.Revealed)
	assert.Equal(t, 1, stats.Flagged)
	assert.Equal(t, 4, stats.MinesRemaining)
}
