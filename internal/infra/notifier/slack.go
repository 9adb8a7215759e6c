package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/retry"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	Enabled bool

	// WebhookURL includes the webhook token; never log it.
	WebhookURL string

	Timeout time.Duration
}

// SlackNotifier posts status changes through a Slack Incoming Webhook.
type SlackNotifier struct {
	hook *webhook
	now  func() time.Time
}

// NewSlackNotifier rate limits to 1 req/s (Slack's webhook limit).
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		hook: &webhook{
			service:    "slack",
			url:        config.WebhookURL,
			httpClient: &http.Client{Timeout: config.Timeout},
			limiter:    NewRateLimiter(1.0, 1),
			retryCfg:   retry.WebhookConfig(),
		},
		now: time.Now,
	}
}

// SlackWebhookPayload is a Block Kit message with fallback text.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`
	Blocks []SlackBlock `json:"blocks"`
}

type SlackBlock struct {
	Type     string            `json:"type"`
	Text     *SlackTextObject  `json:"text,omitempty"`
	Elements []SlackTextObject `json:"elements,omitempty"`
}

type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"`
}

const (
	maxSectionTextLength = 3000
	maxFallbackLength    = 150
)

func (s *SlackNotifier) buildBlockKitPayload(change entity.StatusChange) SlackWebhookPayload {
	stream := change.Stream

	fallback := truncate(fmt.Sprintf("%s: %s", stream.Title, change.Current.Label()), maxFallbackLength, truncationSuffix)

	section := fmt.Sprintf("*%s*\n%s → *%s*", stream.Title, change.Previous.Label(), change.Current.Label())
	if stream.StreamURL != "" {
		section = fmt.Sprintf("*<%s|%s>*\n%s → *%s*", stream.StreamURL, stream.Title, change.Previous.Label(), change.Current.Label())
	}
	section = truncate(section, maxSectionTextLength, truncationSuffix)

	contextText := fmt.Sprintf("%s • %s", stream.Channel, s.now().UTC().Format(time.RFC3339))

	return SlackWebhookPayload{
		Text: fallback,
		Blocks: []SlackBlock{
			{Type: "section", Text: &SlackTextObject{Type: "mrkdwn", Text: section}},
			{Type: "context", Elements: []SlackTextObject{{Type: "mrkdwn", Text: contextText}}},
		},
	}
}

// NotifyStatusChange implements Notifier.
func (s *SlackNotifier) NotifyStatusChange(ctx context.Context, change entity.StatusChange) error {
	if change.Stream == nil {
		return fmt.Errorf("slack: nil stream")
	}
	return s.hook.post(ctx, s.buildBlockKitPayload(change))
}
