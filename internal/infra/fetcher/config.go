package fetcher

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/config"
)

// Config bounds outbound feed requests.
type Config struct {
	// Timeout covers the whole request, body included.
	Timeout time.Duration
	// MaxBodySize is enforced while the body is read, not from Content-Length alone.
	MaxBodySize  int64
	MaxRedirects int
	// DenyPrivateIPs rejects connections to loopback, private and link-local
	// addresses. Only tests against httptest servers turn it off.
	DenyPrivateIPs bool
}

func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		MaxBodySize:    10 << 20,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

const (
	minBodySize = 1 << 10
	maxBodySize = 100 << 20
)

func (c Config) Validate() error {
	var errs []error
	if err := config.ValidateDuration(c.Timeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		errs = append(errs, fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize))
	}
	if err := config.ValidateIntRange(c.MaxRedirects, 0, 10); err != nil {
		errs = append(errs, fmt.Errorf("max redirects: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfig reads FEED_FETCH_TIMEOUT, FEED_MAX_BODY_BYTES,
// FEED_MAX_REDIRECTS and FEED_DENY_PRIVATE_IPS, falling back per field.
func LoadConfig(logger *slog.Logger) Config {
	cfg := DefaultConfig()
	warn := func(fallback bool, warning string) {
		if fallback {
			logger.Warn("configuration fallback applied", slog.String("warning", warning))
		}
	}

	d := config.LoadDuration("FEED_FETCH_TIMEOUT", cfg.Timeout, config.DurationRange(time.Second, 5*time.Minute))
	cfg.Timeout = d.Value
	warn(d.FallbackApplied, d.Warning)

	n := config.LoadInt("FEED_MAX_BODY_BYTES", int(cfg.MaxBodySize), config.IntRange(minBodySize, maxBodySize))
	cfg.MaxBodySize = int64(n.Value)
	warn(n.FallbackApplied, n.Warning)

	n = config.LoadInt("FEED_MAX_REDIRECTS", cfg.MaxRedirects, config.IntRange(0, 10))
	cfg.MaxRedirects = n.Value
	warn(n.FallbackApplied, n.Warning)

	b := config.LoadBool("FEED_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)
	cfg.DenyPrivateIPs = b.Value
	warn(b.FallbackApplied, b.Warning)
	if !cfg.DenyPrivateIPs {
		logger.Warn("feed fetches may reach private networks (FEED_DENY_PRIVATE_IPS=false)")
	}
	return cfg
}
