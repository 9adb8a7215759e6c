package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/retry"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled bool

	// WebhookURL includes the webhook token; never log it.
	WebhookURL string

	Timeout time.Duration
}

// DiscordNotifier posts status changes as Discord embeds.
type DiscordNotifier struct {
	hook *webhook
	now  func() time.Time
}

// NewDiscordNotifier rate limits to 0.5 req/s with a burst of 3
// (Discord allows 30 webhook requests per minute).
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		hook: &webhook{
			service:    "discord",
			url:        config.WebhookURL,
			httpClient: &http.Client{Timeout: config.Timeout},
			limiter:    NewRateLimiter(0.5, 3),
			retryCfg:   retry.WebhookConfig(),
			retryAfter: discordRetryAfter,
		},
		now: time.Now,
	}
}

// DiscordWebhookPayload represents the JSON payload sent to Discord webhook.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed represents a Discord embed message.
type DiscordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      DiscordEmbedFooter  `json:"footer"`
	Timestamp   string              `json:"timestamp"`
}

type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// DiscordErrorResponse represents the error response from Discord API.
type DiscordErrorResponse struct {
	Message    string  `json:"message"`
	Code       int     `json:"code"`
	RetryAfter float64 `json:"retry_after"` // seconds
}

const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	truncationSuffix     = "..."
)

// statusColors maps each status to the embed side color.
var statusColors = map[entity.StreamStatus]int{
	entity.StreamStatusLive:       0xD32F2F,
	entity.StreamStatusSignalOpen: 0x1976D2,
	entity.StreamStatusRecess:     0xF9A825,
	entity.StreamStatusOffline:    0x616161,
}

func (d *DiscordNotifier) buildEmbedPayload(change entity.StatusChange) DiscordWebhookPayload {
	stream := change.Stream
	title := truncate(fmt.Sprintf("%s: %s", stream.Title, change.Current.Label()), maxTitleLength, truncationSuffix)

	embed := DiscordEmbed{
		Title:       title,
		Description: truncate(stream.Description, maxDescriptionLength, truncationSuffix),
		URL:         stream.StreamURL,
		Color:       statusColors[change.Current],
		Fields: []DiscordEmbedField{
			{Name: "Antes", Value: change.Previous.Label(), Inline: true},
			{Name: "Ahora", Value: change.Current.Label(), Inline: true},
		},
		Footer:    DiscordEmbedFooter{Text: stream.Channel},
		Timestamp: d.now().UTC().Format(time.RFC3339),
	}
	return DiscordWebhookPayload{Embeds: []DiscordEmbed{embed}}
}

func discordRetryAfter(body []byte) time.Duration {
	var resp DiscordErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.RetryAfter > 0 {
		return time.Duration(resp.RetryAfter * float64(time.Second))
	}
	return 0
}

// NotifyStatusChange implements Notifier.
func (d *DiscordNotifier) NotifyStatusChange(ctx context.Context, change entity.StatusChange) error {
	if change.Stream == nil {
		return fmt.Errorf("discord: nil stream")
	}
	return d.hook.post(ctx, d.buildEmbedPayload(change))
}
