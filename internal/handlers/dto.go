package handlers

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/akoval/minesweep/internal/sweep"
)

var ErrUnknownDifficulty = fmt.Errorf("unknown difficulty")

type newGameDTO struct {
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
	Difficulty string `schema:"difficulty"`
}

// ParseGameParams accepts either a difficulty preset or an explicit
// width/height/mine_count triple. Validation of the triple itself belongs
// to the engine.
func ParseGameParams(query url.Values) (sweep.GameParams, error) {
	var dto newGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, query); err != nil {
		return sweep.GameParams{}, err
	}
	if dto.Difficulty != "" {
		params, ok := Preset(dto.Difficulty)
		if !ok {
			return sweep.GameParams{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, dto.Difficulty)
		}
		return params, nil
	}
	return sweep.GameParams{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}, nil
}

type positionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(query url.Values) (sweep.Position, error) {
	var dto positionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, query); err != nil {
		return sweep.Position{}, err
	}
	return sweep.Position{Row: dto.Row, Col: dto.Col}, nil
}

// SessionDTO is the full player-visible snapshot of one game.
type SessionDTO struct {
	SessionID      string          `json:"session_id"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	MineCount      int             `json:"mine_count"`
	State          sweep.GameState `json:"state"`
	Grid           sweep.GridView  `json:"grid"`
	Revealed       int             `json:"revealed"`
	Flagged        int             `json:"flagged"`
	MinesRemaining int             `json:"mines_remaining"`
	ElapsedMs      int64           `json:"elapsed_ms"`
	StartedAt      *int64          `json:"started_at,omitempty"`
	EndedAt        *int64          `json:"ended_at,omitempty"`
}

// NewSessionDTO snapshots an engine. Callers must hold the session lock.
func NewSessionDTO(sessionID string, e *sweep.Engine) *SessionDTO {
	params := e.Params()
	stats := e.Stats()

	dto := &SessionDTO{
		SessionID:      sessionID,
		Width:          params.Width,
		Height:         params.Height,
		MineCount:      params.MineCount,
		State:          stats.State,
		Grid:           e.View(),
		Revealed:       stats.Revealed,
		Flagged:        stats.Flagged,
		MinesRemaining: stats.MinesRemaining,
		ElapsedMs:      stats.Elapsed.Milliseconds(),
	}
	if startedAt, ok := e.StartedAt(); ok {
		ms := startedAt.UnixMilli()
		dto.StartedAt = &ms
	}
	if endedAt, ok := e.EndedAt(); ok {
		ms := endedAt.UnixMilli()
		dto.EndedAt = &ms
	}
	return dto
}

// MoveResultDTO is a session snapshot plus the cells the move changed.
type MoveResultDTO struct {
	*SessionDTO
	Changed []sweep.CellChange `json:"changed"`
}

// StatsDTO mirrors sweep.Stats for transport.
type StatsDTO struct {
	State          sweep.GameState `json:"state"`
	Revealed       int             `json:"revealed"`
	Flagged        int             `json:"flagged"`
	MinesRemaining int             `json:"mines_remaining"`
	ElapsedMs      int64           `json:"elapsed_ms"`
}

func NewStatsDTO(stats sweep.Stats) *StatsDTO {
	return &StatsDTO{
		State:          stats.State,
		Revealed:       stats.Revealed,
		Flagged:        stats.Flagged,
		MinesRemaining: stats.MinesRemaining,
		ElapsedMs:      stats.Elapsed.Milliseconds(),
	}
}
