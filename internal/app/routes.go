package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/akoval/minesweep/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.repo, a.ws, createRand)
	auth := handlers.NewAuthHandler(a.log, a.repo, a.cookies)
	highscores := handlers.NewHighscoreHandler(a.log, a.repo)

	a.router.HandleFunc("POST /game", game.Create)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /game/{id}", game.Delete)
	a.router.HandleFunc("POST /game/{id}/move", game.MakeMove)
	a.router.HandleFunc("POST /game/{id}/restart", game.Restart)
	a.router.HandleFunc("GET /game/{id}/stats", game.Stats)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("GET /highscores", highscores.List)

	a.router.HandleFunc("POST /auth/register", auth.Register)
	a.router.HandleFunc("POST /auth/login", auth.Login)
	a.router.HandleFunc("POST /auth/logout", auth.Logout)
	a.router.HandleFunc("GET /auth/status", auth.Status)
}
