package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/retry"
)

var fixedNow = time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)

func testChange() entity.StatusChange {
	return entity.StatusChange{
		Stream: &entity.LiveStream{
			ID:          7,
			Title:       "Canal del Congreso",
			Description: "Sesión ordinaria",
			StreamURL:   "https://cdn.example.com/live/master.m3u8",
			Channel:     "45.1",
		},
		Previous: entity.StreamStatusOffline,
		Current:  entity.StreamStatusLive,
	}
}

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func newTestDiscord(url string) *DiscordNotifier {
	d := NewDiscordNotifier(DiscordConfig{Enabled: true, WebhookURL: url, Timeout: time.Second})
	d.hook.retryCfg = fastRetry()
	d.hook.limiter = NewRateLimiter(1000, 100)
	d.now = func() time.Time { return fixedNow }
	return d
}

func TestDiscordNotifier_buildEmbedPayload(t *testing.T) {
	d := newTestDiscord("https://discord.invalid/webhook")

	payload := d.buildEmbedPayload(testChange())

	require.Len(t, payload.Embeds, 1)
	embed := payload.Embeds[0]
	assert.Equal(t, "Canal del Congreso: EN VIVO", embed.Title)
	assert.Equal(t, "Sesión ordinaria", embed.Description)
	assert.Equal(t, "https://cdn.example.com/live/master.m3u8", embed.URL)
	assert.Equal(t, statusColors[entity.StreamStatusLive], embed.Color)
	assert.Equal(t, "45.1", embed.Footer.Text)
	assert.Equal(t, fixedNow.Format(time.RFC3339), embed.Timestamp)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "FUERA DEL AIRE", embed.Fields[0].Value)
	assert.Equal(t, "EN VIVO", embed.Fields[1].Value)
}

func TestDiscordNotifier_buildEmbedPayload_TruncatesTitle(t *testing.T) {
	d := newTestDiscord("https://discord.invalid/webhook")
	change := testChange()
	change.Stream.Title = strings.Repeat("a", 400)

	embed := d.buildEmbedPayload(change).Embeds[0]
	assert.Len(t, embed.Title, maxTitleLength)
	assert.True(t, strings.HasSuffix(embed.Title, truncationSuffix))
}

func TestDiscordNotifier_NotifyStatusChange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got DiscordWebhookPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		err := newTestDiscord(srv.URL).NotifyStatusChange(context.Background(), testChange())
		require.NoError(t, err)
		require.Len(t, got.Embeds, 1)
		assert.Equal(t, "Canal del Congreso: EN VIVO", got.Embeds[0].Title)
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		require.NoError(t, newTestDiscord(srv.URL).NotifyStatusChange(context.Background(), testChange()))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("honours retry_after on 429", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"message":"You are being rate limited.","retry_after":0.01}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		require.NoError(t, newTestDiscord(srv.URL).NotifyStatusChange(context.Background(), testChange()))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("client error is not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Invalid Form Body"}`))
		}))
		defer srv.Close()

		err := newTestDiscord(srv.URL).NotifyStatusChange(context.Background(), testChange())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid Form Body")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("nil stream", func(t *testing.T) {
		err := newTestDiscord("https://discord.invalid").NotifyStatusChange(context.Background(), entity.StatusChange{})
		assert.Error(t, err)
	})
}

func TestDiscordRetryAfter(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, discordRetryAfter([]byte(`{"retry_after":1.5}`)))
	assert.Zero(t, discordRetryAfter([]byte(`not json`)))
}
