package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries wraps a pgx pool with the typed queries the handlers need.
type Queries struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}
