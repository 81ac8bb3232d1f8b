package sweep

import "errors"

var (
	// ErrInvalidParams means a board could not be constructed from the
	// given width/height/mine-count triple.
	ErrInvalidParams = errors.New("invalid game parameters")

	// ErrOutOfBounds means a position argument fell outside the grid.
	// The engine is left untouched.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrGameOver means a mutating command arrived after the game ended.
	// Only Restart is accepted in a terminal state.
	ErrGameOver = errors.New("game already over")

	// ErrMinesPlaced means PlaceMines was called twice on one board. This
	// indicates a bug in the calling code, not a user condition.
	ErrMinesPlaced = errors.New("mines already placed")
)
