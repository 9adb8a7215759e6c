package config

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ConfigMetrics exposes how a component's configuration was loaded:
// <component>_config_load_timestamp, <component>_config_fallbacks_total{field}
// and <component>_config_fallback_active.
type ConfigMetrics struct {
	LoadTimestamp  prometheus.Gauge
	FallbacksTotal *prometheus.CounterVec
	FallbackActive prometheus.Gauge
}

// NewConfigMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which tests rely on.
func NewConfigMetrics(component string, reg prometheus.Registerer) *ConfigMetrics {
	m := &ConfigMetrics{
		LoadTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: component + "_config_load_timestamp",
			Help: "Unix timestamp of the last " + component + " configuration load",
		}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: component + "_config_fallbacks_total",
			Help: "Settings of " + component + " that fell back to their default",
		}, []string{"field"}),
		FallbackActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: component + "_config_fallback_active",
			Help: "1 if any " + component + " setting uses its fallback value",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.LoadTimestamp, m.FallbacksTotal, m.FallbackActive)
	}
	return m
}

func (m *ConfigMetrics) RecordLoad(fallbacks []string) {
	for _, f := range fallbacks {
		m.FallbacksTotal.WithLabelValues(f).Inc()
	}
	if len(fallbacks) > 0 {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
	m.LoadTimestamp.SetToCurrentTime()
}
