package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by *Database and pgx.Tx, so repositories run the
// same statements inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique violation of constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraint
}

// scanOne returns (nil, nil) when the row does not exist.
func scanOne[T any](row pgx.Row, scan func(pgx.Row) (*T, error)) (*T, error) {
	entity, err := scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}

// scanMany drains rows into a non-nil slice.
func scanMany[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		entity, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
