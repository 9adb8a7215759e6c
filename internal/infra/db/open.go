package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/retry"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/config"
)

// PoolConfig sizes the database/sql pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open connects to dsn through the pgx stdlib driver, sizes the pool from
// DB_* variables and pings within five seconds.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool := poolConfigFromEnv()
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database ready",
		slog.Int("max_open_conns", pool.MaxOpenConns),
		slog.Int("max_idle_conns", pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", pool.ConnMaxIdleTime))
	return db, nil
}

// poolConfigFromEnv keeps the default for any setting that is malformed or
// not positive.
func poolConfigFromEnv() PoolConfig {
	def := DefaultPoolConfig()
	conns := config.IntRange(1, 10_000)

	open := config.LoadInt("DB_MAX_OPEN_CONNS", def.MaxOpenConns, conns)
	idle := config.LoadInt("DB_MAX_IDLE_CONNS", def.MaxIdleConns, conns)
	life := config.LoadDuration("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime, config.ValidatePositiveDuration)
	idleTime := config.LoadDuration("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime, config.ValidatePositiveDuration)

	for _, w := range []string{open.Warning, idle.Warning, life.Warning, idleTime.Warning} {
		if w != "" {
			slog.Warn("database pool setting ignored", slog.String("warning", w))
		}
	}
	return PoolConfig{
		MaxOpenConns:    open.Value,
		MaxIdleConns:    idle.Value,
		ConnMaxLifetime: life.Value,
		ConnMaxIdleTime: idleTime.Value,
	}
}

// schemaProbe succeeds once MigrateUp has created the last table.
const schemaProbe = "SELECT 1 FROM datasets LIMIT 1"

// WaitForSchema blocks until the migrated schema is visible, retrying with
// backoff. It is used by processes that do not run migrations themselves.
func WaitForSchema(ctx context.Context, db *sql.DB, cfg retry.Config) error {
	return retry.WithBackoff(ctx, cfg, func() error {
		if _, err := db.ExecContext(ctx, schemaProbe); err != nil {
			return retry.Retryable(fmt.Errorf("schema not ready: %w", err))
		}
		return nil
	})
}
