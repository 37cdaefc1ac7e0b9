// internal/core/ports/database.go
package ports

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor runs fn inside a single database transaction. The transaction
// is committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	Transaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// Database defines the port for database operations used outside the
// repositories: health probes and transaction boundaries.
type Database interface {
	Transactor
	Close()
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]interface{}
}
