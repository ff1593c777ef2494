// Package repository wraps hand-written pgx queries over the player
// and game_session tables.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Queries struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}
