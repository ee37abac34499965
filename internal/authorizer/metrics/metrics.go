package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the origin-verify authorizer.
type Metrics struct {
	// Decisions by outcome: "allow", "deny", "error"
	Decisions *prometheus.CounterVec

	SecretFetchLatency prometheus.Histogram
}

// New registers the authorizer metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contactus_authorizer_decisions_total",
			Help: "Total authorization decisions by outcome",
		}, []string{"outcome"}),

		SecretFetchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "contactus_authorizer_secret_fetch_duration_seconds",
			Help:    "Duration of secret store lookups, successful or not",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementDecision records a decision outcome.
func (m *Metrics) IncrementDecision(outcome string) {
	if m != nil {
		m.Decisions.WithLabelValues(outcome).Inc()
	}
}

// ObserveSecretFetch records the duration of one secret lookup.
func (m *Metrics) ObserveSecretFetch(d time.Duration) {
	if m != nil {
		m.SecretFetchLatency.Observe(d.Seconds())
	}
}
