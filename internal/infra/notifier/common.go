package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/retry"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "request_id"

// defaultRetryAfter is used when a 429 carries no usable hint.
const defaultRetryAfter = 5 * time.Second

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

// RateLimitError represents a 429 rate limit error from a webhook service.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// webhook posts JSON payloads to a single URL with rate limiting and retries.
type webhook struct {
	service    string
	url        string
	httpClient *http.Client
	limiter    *RateLimiter
	retryCfg   retry.Config
	// retryAfter parses a 429 body; nil means only the Retry-After header is used.
	retryAfter func(body []byte) time.Duration
}

// post sends payload, retrying 5xx, 429 and network failures.
func (w *webhook) post(ctx context.Context, payload any) error {
	requestID, _ := ctx.Value(requestIDKey).(string)
	if requestID == "" {
		requestID = uuid.New().String()
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", w.service, err)
	}

	if err := w.limiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	attempt := 0
	err = retry.WithBackoff(ctx, w.retryCfg, func() error {
		attempt++
		err := w.send(ctx, body)
		var rl *RateLimitError
		if errors.As(err, &rl) {
			slog.Warn("webhook rate limited, backing off",
				slog.String("request_id", requestID),
				slog.String("service", w.service),
				slog.Duration("retry_after", rl.RetryAfter),
				slog.Int("attempt", attempt))
			select {
			case <-time.After(rl.RetryAfter):
			case <-ctx.Done():
				return ctx.Err()
			}
			return retry.Retryable(err)
		}
		return err
	})
	if err != nil {
		slog.Error("webhook delivery failed",
			slog.String("request_id", requestID),
			slog.String("service", w.service),
			slog.Int("attempts", attempt),
			slog.Any("error", err))
		return fmt.Errorf("%s notification failed: %w", w.service, err)
	}

	slog.Info("webhook delivered",
		slog.String("request_id", requestID),
		slog.String("service", w.service),
		slog.Int("attempt", attempt))
	return nil
}

func (w *webhook) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			Message:    w.service + " rate limit exceeded",
			RetryAfter: w.extractRetryAfter(resp, respBody),
		}
	default:
		return &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API error: %s", w.service, string(respBody)),
		}
	}
}

func (w *webhook) extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	if w.retryAfter != nil {
		if d := w.retryAfter(body); d > 0 {
			return d
		}
	}
	if h := resp.Header.Get("Retry-After"); h != "" {
		if seconds, err := strconv.Atoi(h); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultRetryAfter
}

// truncate cuts s to maxLength bytes including suffix.
func truncate(s string, maxLength int, suffix string) string {
	if len(s) <= maxLength {
		return s
	}
	cut := maxLength - len(suffix)
	if cut < 0 {
		cut = 0
	}
	return s[:cut] + suffix
}
