package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akoval/minesweep/internal/config"
)

// ConnectAndMigrate opens a pgx pool and brings the schema up to date from
// the embedded migrations.
func ConnectAndMigrate(ctx context.Context, migrations fs.FS) (*pgxpool.Pool, error) {
	dbURL, err := config.DatabaseURL()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		pool.Close()
		return nil, fmt.Errorf("unable to migrate database: %w", err)
	}

	return pool, nil
}
