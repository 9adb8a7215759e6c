// Package notify dispatches live stream status changes to the enabled chat
// channels (Discord, Slack) in the background, with a bounded worker pool
// and a circuit breaker per channel.
package notify

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/notifier"
)

// Channel is one notification destination.
//
// Implementations must be safe for concurrent use and must respect ctx.
// Retries and rate limiting happen inside Send.
type Channel interface {
	// Name is the lowercase identifier used in logs and metric labels.
	Name() string
	IsEnabled() bool
	Send(ctx context.Context, change entity.StatusChange) error
}

// WebhookChannel adapts an infra notifier to Channel.
type WebhookChannel struct {
	name     string
	notifier notifier.Notifier
	enabled  bool
}

// NewDiscordChannel returns a channel backed by a Discord webhook, or a
// disabled no-op channel when config.Enabled is false.
func NewDiscordChannel(config notifier.DiscordConfig) *WebhookChannel {
	var n notifier.Notifier = notifier.NewNoOpNotifier()
	if config.Enabled {
		n = notifier.NewDiscordNotifier(config)
	}
	return &WebhookChannel{name: "discord", notifier: n, enabled: config.Enabled}
}

// NewSlackChannel is the Slack counterpart of NewDiscordChannel.
func NewSlackChannel(config notifier.SlackConfig) *WebhookChannel {
	var n notifier.Notifier = notifier.NewNoOpNotifier()
	if config.Enabled {
		n = notifier.NewSlackNotifier(config)
	}
	return &WebhookChannel{name: "slack", notifier: n, enabled: config.Enabled}
}

func (c *WebhookChannel) Name() string    { return c.name }
func (c *WebhookChannel) IsEnabled() bool { return c.enabled }

// Send validates change and delegates to the webhook notifier.
func (c *WebhookChannel) Send(ctx context.Context, change entity.StatusChange) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if change.Stream == nil {
		return ErrInvalidChange
	}
	return c.notifier.NotifyStatusChange(ctx, change)
}
