package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/akoval/minesweep/internal/config"
	"github.com/akoval/minesweep/internal/database"
	"github.com/akoval/minesweep/internal/middleware"
	"github.com/akoval/minesweep/internal/repository"
	"github.com/akoval/minesweep/internal/session"
)

type App struct {
	log        *logrus.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	repo       *repository.Queries
	sessions   *session.Store
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(log *logrus.Logger, migrations fs.FS) *App {
	return &App{
		log:        log,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

// Start connects to the database, runs migrations, builds the handler
// tree and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	db, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()

	a.db = db
	a.repo = repository.New(db)

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}

	a.cookies = cookies
	a.ws = config.NewWebSocket()

	ttl := config.SessionTTL()
	a.sessions = session.NewStore(ttl)

	a.loadRoutes()

	addr := config.Addr()
	server := &http.Server{
		Addr: addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Logging(a.log),
			middleware.Auth(cookies),
		),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.WithField("addr", addr).Info("server listening")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return a.sessions.Janitor(ctx, ttl/4, a.log)
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 30*time.Second,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
