package handlers

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/akoval/minesweep/internal/config"
	"github.com/akoval/minesweep/internal/middleware"
	"github.com/akoval/minesweep/internal/repository"
	"github.com/akoval/minesweep/internal/session"
	"github.com/akoval/minesweep/internal/sweep"
)

var ErrUnknownMove = fmt.Errorf("unknown move")

type Move int

const (
	Open Move = iota
	Flag
	Chord
)

func ParseMove(s string) (Move, error) {
	switch s {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	case "chord":
		return Chord, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMove, s)
	}
}

type GameHandler struct {
	log      *logrus.Logger
	sessions *session.Store
	repo     *repository.Queries
	ws       *config.WebSocket
	newRand  func() *rand.Rand
}

func NewGameHandler(
	log *logrus.Logger,
	sessions *session.Store,
	repo *repository.Queries,
	ws *config.WebSocket,
	newRand func() *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		repo:     repo,
		ws:       ws,
		newRand:  newRand,
	}
}

func (g *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, err := ParseGameParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	engine, err := sweep.NewEngine(params, g.newRand())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	var (
		playerID *int64
		username *string
	)
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		playerID = &claims.PlayerID
		username = &claims.Username
	}

	s := g.sessions.Create(engine, playerID, username)
	g.log.WithFields(logrus.Fields{
		"session": s.ID,
		"params":  params.String(),
	}).Info("new game")

	w.WriteHeader(http.StatusCreated)
	var dto *SessionDTO
	_ = s.Do(func(e *sweep.Engine) error {
		dto = NewSessionDTO(s.ID, e)
		return nil
	})
	sendJSONOrLog(w, g.log, dto)
}

func (g *GameHandler) fetchSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := g.sessions.Get(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.fetchSession(w, r)
	if !ok {
		return
	}
	var dto *SessionDTO
	_ = s.Do(func(e *sweep.Engine) error {
		dto = NewSessionDTO(s.ID, e)
		return nil
	})
	sendJSONOrLog(w, g.log, dto)
}

func (g *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, ok := g.fetchSession(w, r)
	if !ok {
		return
	}
	var dto *StatsDTO
	_ = s.Do(func(e *sweep.Engine) error {
		dto = NewStatsDTO(e.Stats())
		return nil
	})
	sendJSONOrLog(w, g.log, dto)
}

func (g *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := g.fetchSession(w, r)
	if !ok {
		return
	}
	g.sessions.Delete(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

// MakeMove runs one engine command against the session and answers with
// the changed cells plus a fresh snapshot. A finished game additionally
// gets its record written.
func (g *GameHandler) MakeMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseMove(query.Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}
	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	s, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	var dto *MoveResultDTO
	err = s.Do(func(e *sweep.Engine) error {
		var (
			res *sweep.MoveResult
			err error
		)
		switch move {
		case Open:
			res, err = e.Reveal(pos)
		case Flag:
			res, err = e.ToggleFlag(pos)
		case Chord:
			res, err = e.ChordReveal(pos)
		}
		if err != nil {
			return err
		}
		if res.State.Terminal() {
			g.recordFinished(r.Context(), s, e)
		}
		dto = &MoveResultDTO{
			SessionDTO: NewSessionDTO(s.ID, e),
			Changed:    res.Changed,
		}
		return nil
	})
	if err != nil {
		g.sendEngineError(w, err)
		return
	}
	sendJSONOrLog(w, g.log, dto)
}

func (g *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	var dto *SessionDTO
	err := s.Do(func(e *sweep.Engine) error {
		params := e.Params()
		if len(r.URL.Query()) > 0 {
			var err error
			if params, err = ParseGameParams(r.URL.Query()); err != nil {
				return err
			}
		}
		if err := e.Restart(params); err != nil {
			return err
		}
		dto = NewSessionDTO(s.ID, e)
		return nil
	})
	if err != nil {
		g.sendEngineError(w, err)
		return
	}
	sendJSONOrLog(w, g.log, dto)
}

// recordFinished persists the outcome of a completed game. Failures are
// logged, not surfaced; the move itself already succeeded.
func (g *GameHandler) recordFinished(ctx context.Context, s *session.Session, e *sweep.Engine) {
	startedAt, _ := e.StartedAt()
	endedAt, _ := e.EndedAt()

	_, err := g.repo.CreateGameRecord(ctx, repository.CreateGameRecordParams{
		PlayerID:   s.PlayerID,
		Params:     e.Params(),
		Won:        e.State() == sweep.Won,
		PlaytimeMs: endedAt.Sub(startedAt).Milliseconds(),
	})
	if err != nil {
		g.log.WithError(err).WithField("session", s.ID).Error("unable to record finished game")
		return
	}
	g.log.WithFields(logrus.Fields{
		"session": s.ID,
		"state":   e.State().String(),
	}).Info("game finished")
}

func (g *GameHandler) sendEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sweep.ErrOutOfBounds),
		errors.Is(err, sweep.ErrInvalidParams),
		errors.Is(err, ErrUnknownDifficulty):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, sweep.ErrGameOver):
		w.WriteHeader(http.StatusConflict)
	default:
		g.log.WithError(err).Error("engine command failed")
		w.WriteHeader(http.StatusInternalServerError)
	}
	sendJSONOrLog(w, g.log, wrapError(err))
}
