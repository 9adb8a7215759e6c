// Package circuitbreaker guards the calls this service makes to things it
// does not control: Postgres, news feeds and notification webhooks.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config describes one breaker. The breaker trips once at least MinRequests
// calls were seen in the current Interval and the share of failures reaches
// FailureThreshold (1.0 means every call failed). While open it rejects calls
// for Timeout, then lets MaxRequests probes through.
type Config struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
	// IsSuccessful reports errors that must not count as failures.
	// Nil counts every error.
	IsSuccessful func(err error) bool
}

func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          time.Minute,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// FeedFetchConfig is shared by every feed: one flaky publisher should not
// trip it, a broken egress path should.
func FeedFetchConfig() Config {
	cfg := DefaultConfig("feed-fetch")
	cfg.MaxRequests = 5
	cfg.Interval = time.Minute
	cfg.Timeout = 2 * time.Minute
	cfg.FailureThreshold = 0.7
	cfg.MinRequests = 10
	return cfg
}

// WebhookConfig opens after five straight failures of a channel and keeps it
// quiet for five minutes.
func WebhookConfig(channel string) Config {
	cfg := DefaultConfig("webhook-" + channel)
	cfg.MaxRequests = 1
	cfg.Interval = 5 * time.Minute
	cfg.Timeout = 5 * time.Minute
	cfg.FailureThreshold = 1.0
	return cfg
}

type CircuitBreaker struct {
	name    string
	breaker *gobreaker.CircuitBreaker
}

func New(cfg Config) *CircuitBreaker {
	tripAt := func(c gobreaker.Counts) bool {
		if c.Requests < cfg.MinRequests {
			return false
		}
		return float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureThreshold
	}
	onChange := func(name string, from, to gobreaker.State) {
		slog.Warn("circuit breaker changed state",
			slog.String("breaker", name),
			slog.String("from", from.String()),
			slog.String("to", to.String()))
		recordStateChange(name, to)
	}

	return &CircuitBreaker{
		name: cfg.Name,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:          cfg.Name,
			MaxRequests:   cfg.MaxRequests,
			Interval:      cfg.Interval,
			Timeout:       cfg.Timeout,
			ReadyToTrip:   tripAt,
			OnStateChange: onChange,
			IsSuccessful:  cfg.IsSuccessful,
		}),
	}
}

// Execute calls fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState without calling it.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

func (cb *CircuitBreaker) Name() string { return cb.name }

func (cb *CircuitBreaker) State() gobreaker.State { return cb.breaker.State() }

func (cb *CircuitBreaker) IsOpen() bool { return cb.State() == gobreaker.StateOpen }
