package sweep

import "time"

// Stats is a derived, read-only summary of the current game. It is
// recomputed from the board on every call and holds no state of its own.
// MinesRemaining can go negative when the player over-flags; it is
// informational and deliberately not clamped.
type Stats struct {
	State          GameState
	Revealed       int
	Flagged        int
	MinesRemaining int
	Elapsed        time.Duration
}

// StatsAt computes stats against a caller-supplied instant, keeping the
// computation a pure function of board, state and clock. Elapsed runs from
// the first reveal and freezes once the game ends.
func (e *Engine) StatsAt(now time.Time) Stats {
	revealed, flagged := e.board.Counts()
	s := Stats{
		State:          e.state,
		Revealed:       revealed,
		Flagged:        flagged,
		MinesRemaining: e.board.MineCount - flagged,
	}
	switch {
	case e.state == NotStarted:
	case e.state.Terminal():
		s.Elapsed = e.endedAt.Sub(e.startedAt)
	default:
		s.Elapsed = now.Sub(e.startedAt)
	}
	return s
}

// Stats is StatsAt with the engine's own clock.
func (e *Engine) Stats() Stats {
	return e.StatsAt(e.now())
}
