package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
)

// DBCircuitBreaker is a *sql.DB whose calls go through a breaker. It
// satisfies the repositories' DBTX, so repositories never see the difference.
type DBCircuitBreaker struct {
	db *sql.DB
	cb *CircuitBreaker
}

// DBConfig trips after five failed calls in a row and probes again after 30s.
func DBConfig() Config {
	cfg := DefaultConfig("database")
	cfg.Interval = time.Minute
	cfg.Timeout = 30 * time.Second
	cfg.FailureThreshold = 1.0
	cfg.IsSuccessful = answeredByServer
	return cfg
}

// answeredByServer is true for outcomes that prove Postgres is up even
// though the call failed: missing rows, integrity violations (SQLSTATE class
// 23) and callers giving up.
func answeredByServer(err error) bool {
	switch {
	case err == nil, errors.Is(err, sql.ErrNoRows), errors.Is(err, context.Canceled):
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23")
}

func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{db: db, cb: New(cfg)}
}

func guard[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T
	out, err := cb.Execute(func() (interface{}, error) { return fn() })
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}

func (d *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return guard(d.cb, func() (*sql.Rows, error) { return d.db.QueryContext(ctx, query, args...) })
}

func (d *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return guard(d.cb, func() (sql.Result, error) { return d.db.ExecContext(ctx, query, args...) })
}

// QueryRowContext runs the query inside the breaker and counts row.Err(),
// which holds the query's own failure before Scan. Scan errors such as
// sql.ErrNoRows are not seen by the breaker.
//
// *sql.Row cannot carry the breaker's error, so a rejected call runs under a
// cancelled context and Scan fails fast with context.Canceled.
func (d *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	var row *sql.Row
	_, _ = d.cb.Execute(func() (interface{}, error) {
		row = d.db.QueryRowContext(ctx, query, args...)
		return nil, row.Err()
	})
	if row != nil {
		return row
	}
	dead, cancel := context.WithCancel(ctx)
	cancel()
	return d.db.QueryRowContext(dead, query, args...)
}

func (d *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := guard(d.cb, func() (struct{}, error) { return struct{}{}, d.db.PingContext(ctx) })
	return err
}

func (d *DBCircuitBreaker) State() gobreaker.State { return d.cb.State() }

func (d *DBCircuitBreaker) IsOpen() bool { return d.cb.IsOpen() }

// DB returns the unguarded pool, for migrations and health checks.
func (d *DBCircuitBreaker) DB() *sql.DB { return d.db }
