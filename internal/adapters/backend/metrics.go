package backend

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for outbound backend calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the backend collectors on reg.
// PRE: reg is non-nil and has not registered these names yet
// POST: Collectors are registered and ready
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ministry",
			Name:      "backend_requests_total",
			Help:      "Outbound backend calls by transport, operation and outcome.",
		}, []string{"transport", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ministry",
			Name:      "backend_request_seconds",
			Help:      "Latency of outbound backend calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transport", "operation"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(transport, operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(transport, operation, outcome).Inc()
	m.duration.WithLabelValues(transport, operation).Observe(seconds)
}
