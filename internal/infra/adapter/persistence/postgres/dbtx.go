// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// DBTX is the subset of *sql.DB used by the repositories. Both *sql.DB and
// *circuitbreaker.DBCircuitBreaker satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgreSQL error codes translated into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError translates constraint violations into domain sentinels and wraps
// everything with the operation name.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, entity.ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, entity.ErrInvalidReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// execAffectingOne runs a statement that must touch exactly one row.
func execAffectingOne(ctx context.Context, db DBTX, op, query string, args ...interface{}) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: RowsAffected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}
	return nil
}

// scanUpdated scans the RETURNING updated_at of an UPDATE; no row means the
// id does not exist.
func scanUpdated(row *sql.Row, op string, dest interface{}) error {
	err := row.Scan(dest)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}
	return mapError(op, err)
}

// placeholders returns "$start, $start+1, ..." for n arguments.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

// whereBuilder accumulates AND-ed conditions with numbered placeholders.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

// add appends a condition; "?" in cond is replaced by the next placeholder.
func (w *whereBuilder) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conditions = append(w.conditions, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), -1))
}

// addRaw appends a condition without an argument.
func (w *whereBuilder) addRaw(cond string) {
	w.conditions = append(w.conditions, cond)
}

func (w *whereBuilder) clause() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// next returns the placeholder index following the accumulated arguments.
func (w *whereBuilder) next() int {
	return len(w.args) + 1
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// queryAll runs query and scans every row with scan. The result is never nil.
func queryAll[T any](ctx context.Context, db DBTX, op, query string, scan func(rowScanner) (*T, error), args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*T, 0, 50)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return items, nil
}

// queryOne returns (nil, nil) when query yields no row.
func queryOne[T any](ctx context.Context, db DBTX, op, query string, scan func(rowScanner) (*T, error), args ...interface{}) (*T, error) {
	item, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}
