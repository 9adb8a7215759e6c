// Package retry re-runs transient failures with exponential backoff: feed
// downloads, webhook posts and the worker's wait for Postgres at startup.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/sony/gobreaker"
)

// Config is a backoff policy. MaxAttempts counts the first call. After each
// failed attempt the delay grows by Multiplier up to MaxDelay, and up to
// JitterFraction of it is added at random.
type Config struct {
	MaxAttempts    int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	Multiplier     float64
	JitterFraction float64
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2,
		JitterFraction: 0.1,
	}
}

// FeedConfig gives a publisher about half a minute to come back.
func FeedConfig() Config {
	c := DefaultConfig()
	c.MaxAttempts = 4
	c.MaxDelay = 20 * time.Second
	return c
}

// WebhookConfig retries once; a stream status change is stale soon after.
func WebhookConfig() Config {
	c := DefaultConfig()
	c.MaxAttempts = 2
	c.InitialDelay = 2 * time.Second
	c.MaxDelay = 10 * time.Second
	return c
}

// DBConfig waits up to roughly half a minute for Postgres to accept
// connections.
func DBConfig() Config {
	c := DefaultConfig()
	c.MaxAttempts = 10
	c.InitialDelay = 500 * time.Millisecond
	c.MaxDelay = 5 * time.Second
	return c
}

// WithBackoff calls fn until it returns nil or an error IsRetryable rejects,
// ctx ends, or cfg.MaxAttempts calls were made.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	delay := cfg.InitialDelay
	var err error

	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.Info("retry succeeded", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			return fmt.Errorf("gave up after %d attempts: %w", attempt, err)
		}

		wait := withJitter(delay, cfg.JitterFraction)
		slog.Warn("attempt failed, backing off",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-t.C:
		}

		delay = min(time.Duration(float64(delay)*cfg.Multiplier), cfg.MaxDelay)
	}
}

type retryable struct{ error }

func (r retryable) Unwrap() error { return r.error }

// Retryable marks err as transient even when IsRetryable would not
// recognise its type.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable is true for timeouts, refused or reset connections, 5xx, 408
// and 429 responses, and errors marked with Retryable. Cancellation and an
// open circuit breaker are never retried.
func IsRetryable(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return false
	case errors.As(err, new(retryable)):
		return true
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.Is(err, syscall.ENETUNREACH):
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		code := httpErr.StatusCode
		return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
	}
	return false
}

// HTTPError is a non-2xx response from a feed or webhook.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func withJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	fraction = min(fraction, 1)
	// #nosec G404 -- jitter needs no cryptographic randomness
	return d + time.Duration(rand.Float64()*fraction*float64(d))
}
