// Package metadata is the client's key/value table in the local sqlite
// database. The session credential is its only tenant.
package metadata

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the repository needs.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository interface {
	// Get returns the value under key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set inserts or overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
