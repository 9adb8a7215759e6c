package notify

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/requestid"
	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/circuitbreaker"
)

const (
	workerPoolTimeout   = 5 * time.Second
	notificationTimeout = 30 * time.Second
)

// Service dispatches status change notifications.
type Service interface {
	// NotifyStatusChange returns immediately; delivery happens in background
	// goroutines and failures are only logged. Unchanged statuses are ignored.
	NotifyStatusChange(ctx context.Context, change entity.StatusChange) error

	// GetChannelHealth reports the breaker state of every channel.
	GetChannelHealth() []ChannelHealthStatus

	// Shutdown cancels pending deliveries and waits for in-flight ones
	// until ctx expires.
	Shutdown(ctx context.Context) error
}

// ChannelHealthStatus is exposed by the health endpoint.
type ChannelHealthStatus struct {
	Name               string `json:"name"`
	Enabled            bool   `json:"enabled"`
	CircuitBreakerOpen bool   `json:"circuit_breaker_open"`
}

type service struct {
	channels       []Channel
	breakers       map[string]*circuitbreaker.CircuitBreaker
	workerPool     chan struct{}
	wg             sync.WaitGroup
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewService builds a dispatcher for channels with at most maxConcurrent
// deliveries in flight.
func NewService(channels []Channel, maxConcurrent int) Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	svc := &service{
		channels:       channels,
		breakers:       make(map[string]*circuitbreaker.CircuitBreaker, len(channels)),
		workerPool:     make(chan struct{}, maxConcurrent),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}

	enabled := 0
	for _, ch := range channels {
		svc.breakers[ch.Name()] = circuitbreaker.New(circuitbreaker.WebhookConfig(ch.Name()))
		if ch.IsEnabled() {
			enabled++
		}
	}
	enabledChannels.Set(float64(enabled))

	return svc
}

func (s *service) NotifyStatusChange(ctx context.Context, change entity.StatusChange) error {
	if change.Stream == nil {
		slog.Warn("invalid notification input: nil stream")
		return nil
	}
	if !change.Changed() {
		return nil
	}
	if s.shutdownCtx.Err() != nil {
		return nil
	}

	requestID := requestid.FromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	enabled := 0
	for _, ch := range s.channels {
		if !ch.IsEnabled() {
			continue
		}
		enabled++
		s.wg.Add(1)
		go s.notifyChannel(requestID, ch, change)
	}

	if enabled == 0 {
		slog.Debug("no notification channels enabled",
			slog.String("request_id", requestID),
			slog.Int64("stream_id", change.Stream.ID))
		return nil
	}

	slog.Info("dispatching status notification",
		slog.String("request_id", requestID),
		slog.Int64("stream_id", change.Stream.ID),
		slog.String("from", string(change.Previous)),
		slog.String("to", string(change.Current)),
		slog.Int("enabled_channels", enabled))
	return nil
}

func (s *service) notifyChannel(requestID string, channel Channel, change entity.StatusChange) {
	defer s.wg.Done()
	inFlight.Inc()
	defer inFlight.Dec()

	log := slog.With(
		slog.String("request_id", requestID),
		slog.String("channel", channel.Name()),
		slog.Int64("stream_id", change.Stream.ID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("notification channel panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	release, outcome := s.acquireSlot()
	if release == nil {
		if outcome == outcomePoolFull {
			log.Warn("notification dropped, all delivery slots busy")
		}
		countOutcome(channel.Name(), outcome)
		return
	}
	defer release()

	ctx, cancel := context.WithTimeout(s.shutdownCtx, notificationTimeout)
	defer cancel()
	ctx = requestid.WithRequestID(ctx, requestID)

	start := time.Now()
	_, err := s.breakers[channel.Name()].Execute(func() (interface{}, error) {
		return nil, channel.Send(ctx, change)
	})
	took := time.Since(start)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		log.Warn("notification skipped, channel circuit is open")
		countOutcome(channel.Name(), outcomeCircuitOpen)
	case err != nil:
		observeSend(channel.Name(), err, took)
		log.Warn("notification delivery failed", slog.Duration("took", took), slog.Any("error", err))
	default:
		observeSend(channel.Name(), nil, took)
		log.Info("notification delivered", slog.Duration("took", took))
	}
}

// acquireSlot waits for a free delivery slot. It returns a nil release func
// and the drop outcome when no slot can be had.
func (s *service) acquireSlot() (release func(), outcome string) {
	timer := time.NewTimer(workerPoolTimeout)
	defer timer.Stop()

	select {
	case s.workerPool <- struct{}{}:
		return func() { <-s.workerPool }, ""
	case <-s.shutdownCtx.Done():
		return nil, outcomeShutdown
	case <-timer.C:
		return nil, outcomePoolFull
	}
}

func (s *service) GetChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: s.breakers[ch.Name()].IsOpen(),
		})
	}
	return statuses
}

func (s *service) Shutdown(ctx context.Context) error {
	slog.Info("shutting down notification service")
	s.shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("notification service shutdown complete")
		return nil
	case <-ctx.Done():
		slog.Warn("notification service shutdown timeout")
		return ctx.Err()
	}
}
