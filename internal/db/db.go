package db

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries bundles the relational store operations. It is safe for
// concurrent use.
type Queries struct {
	conn *pgxpool.Pool
}

// New creates a Queries over the given connection pool.
func New(conn *pgxpool.Pool) *Queries {
	return &Queries{
		conn: conn,
	}
}
