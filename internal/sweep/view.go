package sweep

import (
	"fmt"
	"strconv"
	"strings"
)

// CellView is the player-visible value of one cell, encoded compactly for
// transport and display.
type CellView int8

const (
	ViewHidden  CellView = -2
	ViewFlagged CellView = -1
	// 0 through 8 are revealed adjacency counts.
	ViewMine CellView = 9 // a revealed mine, only possible once the game is over
)

func (v CellView) String() string {
	switch {
	case v == ViewHidden:
		return "-"
	case v == ViewFlagged:
		return "*"
	case v == ViewMine:
		return "@"
	case 0 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

// GridView is a flat row-major snapshot of what the player may see. It
// never leaks hidden mine locations.
type GridView []CellView

// Render draws the grid as text, one row per line.
func (g GridView) Render(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String(), " ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// View snapshots the board from the player's perspective.
func (e *Engine) View() GridView {
	view := make(GridView, 0, e.board.CellCount())
	for row := range e.board.Height {
		for col := range e.board.Width {
			cell := e.board.CellAt(Position{Row: row, Col: col})
			switch cell.State {
			case Hidden:
				view = append(view, ViewHidden)
			case Flagged:
				view = append(view, ViewFlagged)
			case Revealed:
				if cell.Mine {
					view = append(view, ViewMine)
				} else {
					view = append(view, CellView(cell.Adjacent))
				}
			}
		}
	}
	return view
}
