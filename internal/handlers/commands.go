package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/akoval/minesweep/internal/sweep"
)

// The websocket play protocol is line-oriented text: a one-letter command
// followed by its arguments.
//
//	o ROW COL   open a cell
//	f ROW COL   toggle a flag
//	c ROW COL   chord a numbered cell
//	n           restart with the same parameters
//	g           no-op, just fetch a fresh snapshot
var commandNargs = map[string]int{
	"o": 2,
	"f": 2,
	"c": 2,
	"n": 0,
	"g": 0,
}

func parseRowCol(args []string) (sweep.Position, error) {
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return sweep.Position{}, errors.New("row must be an int")
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return sweep.Position{}, errors.New("col must be an int")
	}
	return sweep.Position{Row: row, Col: col}, nil
}

func executeCommand(e *sweep.Engine, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return errors.New("empty command")
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}

	switch parts[0] {
	case "o", "f", "c":
		pos, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		switch parts[0] {
		case "o":
			_, err = e.Reveal(pos)
		case "f":
			_, err = e.ToggleFlag(pos)
		case "c":
			_, err = e.ChordReveal(pos)
		}
		return err
	case "n":
		return e.Restart(e.Params())
	case "g":
		return nil
	}
	return errors.New("invalid command")
}
