package handlers

import (
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/akoval/minesweep/internal/repository"
	"github.com/akoval/minesweep/internal/sweep"
)

type HighscoreHandler struct {
	log  *logrus.Logger
	repo *repository.Queries
}

func NewHighscoreHandler(log *logrus.Logger, repo *repository.Queries) *HighscoreHandler {
	return &HighscoreHandler{log: log, repo: repo}
}

type highscoreQuery struct {
	Username  *string `schema:"username"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
	Limit     int     `schema:"limit"`
}

// parseHighscoreFilter narrows the leaderboard by username and/or board
// configuration. The three dimensions only filter together.
func parseHighscoreFilter(r *http.Request) (repository.HighscoreFilter, error) {
	var q highscoreQuery
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		return repository.HighscoreFilter{}, err
	}

	filter := repository.HighscoreFilter{
		Username: q.Username,
		Limit:    q.Limit,
	}
	if q.Width != nil && q.Height != nil && q.MineCount != nil {
		params := sweep.GameParams{
			Width:     *q.Width,
			Height:    *q.Height,
			MineCount: *q.MineCount,
		}
		if err := params.Validate(); err != nil {
			return repository.HighscoreFilter{}, err
		}
		filter.Params = &params
	}
	return filter, nil
}

func (h *HighscoreHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseHighscoreFilter(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	highscores, err := h.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch highscores")
		return
	}

	sendJSONOrLog(w, h.log, highscores)
}
