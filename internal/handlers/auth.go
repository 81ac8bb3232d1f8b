package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/akoval/minesweep/internal/config"
	"github.com/akoval/minesweep/internal/middleware"
	"github.com/akoval/minesweep/internal/repository"
)

var (
	ErrBadCredentialsBody = fmt.Errorf("request body must contain url-encoded username and password")
	ErrPasswordTooLong    = fmt.Errorf("password too long")
	ErrUsernameTaken      = fmt.Errorf("username taken")
	ErrBadCredentials     = fmt.Errorf("invalid username or password")
)

type AuthHandler struct {
	log     *logrus.Logger
	repo    *repository.Queries
	cookies *config.Cookies
}

func NewAuthHandler(
	log *logrus.Logger,
	repo *repository.Queries,
	cookies *config.Cookies,
) *AuthHandler {
	return &AuthHandler{
		log:     log,
		repo:    repo,
		cookies: cookies,
	}
}

func credentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		return "", "", ErrBadCredentialsBody
	}
	if len(password) > 72 {
		// bcrypt truncates beyond this; refuse instead.
		return "", "", ErrPasswordTooLong
	}
	return username, password, nil
}

func (h *AuthHandler) signIn(w http.ResponseWriter, player *repository.Player) error {
	claims := &config.PlayerClaims{
		PlayerID: player.PlayerID,
		Username: player.Username,
	}
	return h.cookies.Issue(w, claims)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to hash password")
		return
	}

	player, err := h.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.log, wrapError(ErrUsernameTaken))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to create player")
		return
	}

	if err := h.signIn(w, player); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to issue auth cookies")
		return
	}

	h.log.WithField("username", username).Info("player registered")
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, h.log, PlayerInfo{player.PlayerID, player.Username})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.log, wrapError(err))
		return
	}

	player, err := h.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, h.log, wrapError(ErrBadCredentials))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch player")
		return
	}

	if bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)) != nil {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, h.log, wrapError(ErrBadCredentials))
		return
	}

	if err := h.signIn(w, player); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to issue auth cookies")
		return
	}

	sendJSONOrLog(w, h.log, PlayerInfo{player.PlayerID, player.Username})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

type PlayerInfo struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
}

type AuthStatus struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		h.cookies.Clear(w)
		sendJSONOrLog(w, h.log, AuthStatus{LoggedIn: false})
		return
	}
	// Rolling expiry: seeing a valid token refreshes it.
	if err := h.cookies.Issue(w, claims); err != nil {
		h.log.WithError(err).Error("unable to refresh auth cookies")
	}
	sendJSONOrLog(w, h.log, AuthStatus{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerID, claims.Username},
	})
}
