package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery outcomes.
const (
	outcomeSent        = "sent"
	outcomeFailed      = "failed"
	outcomePoolFull    = "pool_full"
	outcomeCircuitOpen = "circuit_open"
	outcomeShutdown    = "shutdown"
)

var (
	deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_stream_notifications_total",
		Help: "Stream status notifications by channel and outcome",
	}, []string{"channel", "outcome"})

	deliverySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_stream_notification_duration_seconds",
		Help:    "Webhook round trip of a stream status notification",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"channel"})

	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cms_stream_notifications_in_flight",
		Help: "Notification deliveries currently running or waiting for a slot",
	})

	enabledChannels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cms_stream_notification_channels_enabled",
		Help: "Configured notification channels that are enabled",
	})
)

func countOutcome(channel, outcome string) {
	deliveriesTotal.WithLabelValues(channel, outcome).Inc()
}

func observeSend(channel string, err error, took time.Duration) {
	deliverySeconds.WithLabelValues(channel).Observe(took.Seconds())
	if err != nil {
		countOutcome(channel, outcomeFailed)
		return
	}
	countOutcome(channel, outcomeSent)
}
