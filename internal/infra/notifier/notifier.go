// Package notifier delivers live stream status changes to chat webhooks
// (Discord, Slack). The Notifier interface lets the notify use case treat
// every destination the same way.
package notifier

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// Notifier sends a single status change to one destination.
// Implementations apply their own rate limiting and retries.
type Notifier interface {
	// NotifyStatusChange posts change to the destination. It returns an
	// error only after every retry has failed.
	NotifyStatusChange(ctx context.Context, change entity.StatusChange) error
}
