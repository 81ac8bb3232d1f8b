package sweep

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GameState is the lifecycle of one game. NotStarted lasts until the first
// reveal; Won and Lost are terminal and reject every mutating command
// except Restart.
type GameState int

const (
	NotStarted GameState = iota
	InProgress
	Won
	Lost
)

func (s GameState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "invalid"
	}
}

func (s GameState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s GameState) Terminal() bool {
	return s == Won || s == Lost
}

// CellChange describes one cell touched by a command. Adjacent is set for
// safe revealed cells; Mine is only ever true once the game is over.
type CellChange struct {
	Pos      Position  `json:"pos"`
	State    CellState `json:"state"`
	Adjacent int       `json:"adjacent"`
	Mine     bool      `json:"mine,omitempty"`
}

// MoveResult is what every mutating command returns: the full set of cells
// it changed, the resulting game state and the informational mine counter.
// A command that changed nothing returns an empty Changed set, not an
// error.
type MoveResult struct {
	Changed        []CellChange `json:"changed"`
	State          GameState    `json:"state"`
	MinesRemaining int          `json:"mines_remaining"`
}

// Engine drives a single Board through one game: deferred mine placement,
// reveal with flood fill, flag bookkeeping, chording and win/loss
// detection. It is not safe for concurrent use; callers exposing one
// engine to several goroutines must serialize whole commands.
type Engine struct {
	board     *Board
	state     GameState
	rnd       *rand.Rand
	now       func() time.Time
	startedAt time.Time
	endedAt   time.Time
}

// NewEngine validates params and builds an engine with an empty board.
// Mines are placed on the first Reveal, drawn from rnd.
func NewEngine(params GameParams, rnd *rand.Rand) (*Engine, error) {
	board, err := NewBoard(params)
	if err != nil {
		return nil, err
	}
	return &Engine{
		board: board,
		rnd:   rnd,
		now:   time.Now,
	}, nil
}

func (e *Engine) State() GameState {
	return e.state
}

func (e *Engine) Params() GameParams {
	return e.board.GameParams
}

// CellAt exposes the cell under pos, mainly for rendering layers.
func (e *Engine) CellAt(pos Position) (Cell, error) {
	if !e.board.InBounds(pos) {
		return Cell{}, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	return e.board.CellAt(pos), nil
}

// StartedAt reports when the first cell was revealed; ok is false while
// the game has not started.
func (e *Engine) StartedAt() (t time.Time, ok bool) {
	return e.startedAt, e.state != NotStarted
}

// EndedAt reports when the game reached a terminal state.
func (e *Engine) EndedAt() (t time.Time, ok bool) {
	return e.endedAt, e.state.Terminal()
}

func (e *Engine) check(pos Position) error {
	if e.state.Terminal() {
		return fmt.Errorf("%w: game is %s", ErrGameOver, e.state)
	}
	if !e.board.InBounds(pos) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	return nil
}

func (e *Engine) result() *MoveResult {
	return &MoveResult{Changed: []CellChange{}}
}

func (e *Engine) finish(res *MoveResult) *MoveResult {
	_, flagged := e.board.Counts()
	res.State = e.state
	res.MinesRemaining = e.board.MineCount - flagged
	return res
}

// Reveal opens a cell. The first reveal of a game places the mines with
// the clicked cell excluded, so it can never hit one. Revealing a cell
// with zero adjacent mines floods the whole connected zero region plus its
// numbered border in this one call.
func (e *Engine) Reveal(pos Position) (*MoveResult, error) {
	if err := e.check(pos); err != nil {
		return nil, err
	}
	res := e.result()

	if e.board.CellAt(pos).State != Hidden {
		return e.finish(res), nil
	}

	if e.state == NotStarted {
		if err := e.board.PlaceMines([]Position{pos}, e.rnd); err != nil {
			return nil, err
		}
		e.state = InProgress
		e.startedAt = e.now()
	}

	e.revealCell(pos, res)
	e.checkWin(res)
	return e.finish(res), nil
}

// revealCell opens one hidden cell and runs the consequences: losing on a
// mine, or flooding from a zero cell.
func (e *Engine) revealCell(pos Position, res *MoveResult) {
	switch e.board.Reveal(pos) {
	case Unchanged:
		return
	case HitMine:
		res.Changed = append(res.Changed, CellChange{
			Pos: pos, State: Revealed, Mine: true,
		})
		e.lose(res)
	case SafeReveal:
		cell := e.board.CellAt(pos)
		res.Changed = append(res.Changed, CellChange{
			Pos: pos, State: Revealed, Adjacent: cell.Adjacent,
		})
		if cell.Adjacent == 0 {
			e.flood(pos, res)
		}
	}
}

// flood breadth-first reveals the connected zero region around start and
// one ring of numbered border cells. The visited set keeps every position
// to at most one visit, bounding the walk at width*height cells. Flagged
// cells block the flood and stay flagged.
func (e *Engine) flood(start Position, res *MoveResult) {
	visited := map[Position]bool{start: true}
	frontier := []Position{start}

	for len(frontier) > 0 {
		pos := frontier[0]
		frontier = frontier[1:]

		for _, n := range pos.Neighbors(e.board.Width, e.board.Height) {
			if visited[n] {
				continue
			}
			visited[n] = true
			if e.board.Reveal(n) != SafeReveal {
				continue
			}
			cell := e.board.CellAt(n)
			res.Changed = append(res.Changed, CellChange{
				Pos: n, State: Revealed, Adjacent: cell.Adjacent,
			})
			if cell.Adjacent == 0 {
				frontier = append(frontier, n)
			}
		}
	}
}

// lose ends the game and uncovers every remaining mine for the
// end-of-game display. Flags are left exactly as the player set them.
func (e *Engine) lose(res *MoveResult) {
	e.state = Lost
	e.endedAt = e.now()
	for row := range e.board.Height {
		for col := range e.board.Width {
			pos := Position{Row: row, Col: col}
			cell := e.board.CellAt(pos)
			if cell.Mine && cell.State == Hidden {
				e.board.Reveal(pos)
				res.Changed = append(res.Changed, CellChange{
					Pos: pos, State: Revealed, Mine: true,
				})
			}
		}
	}
}

// checkWin transitions to Won once every safe cell is revealed, flagging
// the leftover mines as a convenience for the display layer.
func (e *Engine) checkWin(res *MoveResult) {
	if e.state != InProgress || !e.board.AllSafeRevealed() {
		return
	}
	e.state = Won
	e.endedAt = e.now()
	for row := range e.board.Height {
		for col := range e.board.Width {
			pos := Position{Row: row, Col: col}
			cell := e.board.CellAt(pos)
			if cell.Mine && cell.State == Hidden {
				e.board.ToggleFlag(pos)
				res.Changed = append(res.Changed, CellChange{
					Pos: pos, State: Flagged, Mine: true,
				})
			}
		}
	}
}

// ToggleFlag flips the flag on a hidden cell. Flagging is allowed before
// the first reveal; revealed cells are untouched.
func (e *Engine) ToggleFlag(pos Position) (*MoveResult, error) {
	if err := e.check(pos); err != nil {
		return nil, err
	}
	res := e.result()
	if e.board.ToggleFlag(pos) {
		res.Changed = append(res.Changed, CellChange{
			Pos: pos, State: e.board.CellAt(pos).State,
		})
	}
	return e.finish(res), nil
}

// ChordReveal opens every hidden neighbor of a revealed numbered cell, but
// only when the number of flagged neighbors matches its count exactly. A
// mismatch in either direction is a no-op. If one of the neighbors turns
// out to be a mine the remaining neighbors are left untouched; the loss
// handling reveals them with the rest of the mines.
func (e *Engine) ChordReveal(pos Position) (*MoveResult, error) {
	if err := e.check(pos); err != nil {
		return nil, err
	}
	res := e.result()

	cell := e.board.CellAt(pos)
	if cell.State != Revealed || cell.Adjacent == 0 {
		return e.finish(res), nil
	}
	if e.board.FlaggedNeighbors(pos) != cell.Adjacent {
		return e.finish(res), nil
	}

	for _, n := range e.board.HiddenNeighbors(pos) {
		e.revealCell(n, res)
		if e.state == Lost {
			break
		}
	}
	e.checkWin(res)
	return e.finish(res), nil
}

// Restart discards the current board and re-enters NotStarted with a fresh
// one. It is the only accepted command in a terminal state, and the old
// board is dropped entirely.
func (e *Engine) Restart(params GameParams) error {
	board, err := NewBoard(params)
	if err != nil {
		return err
	}
	e.board = board
	e.state = NotStarted
	e.startedAt = time.Time{}
	e.endedAt = time.Time{}
	return nil
}
