package handlers

import "github.com/akoval/minesweep/internal/sweep"

// Difficulty presets are owned by this layer; the engine only ever sees
// the resulting triple.
var presets = map[string]sweep.GameParams{
	"beginner":     {Width: 9, Height: 9, MineCount: 10},
	"intermediate": {Width: 16, Height: 16, MineCount: 40},
	"expert":       {Width: 30, Height: 16, MineCount: 99},
}

func Preset(name string) (sweep.GameParams, bool) {
	params, ok := presets[name]
	return params, ok
}
