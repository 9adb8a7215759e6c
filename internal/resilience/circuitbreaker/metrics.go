package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var stateGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "cms_circuit_breaker_state",
	Help: "Breaker state by name: 0 closed, 1 half-open, 2 open",
}, []string{"name"})

func recordStateChange(name string, to gobreaker.State) {
	v := 0.0
	switch to {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	stateGauge.WithLabelValues(name).Set(v)
}
