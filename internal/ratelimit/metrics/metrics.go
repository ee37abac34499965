package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Checks    *prometheus.CounterVec
	Fallbacks prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contactus_ratelimit_checks_total",
			Help: "Total shared rate limit checks by result",
		}, []string{"result"}),
		Fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "contactus_ratelimit_fallbacks_total",
			Help: "Total checks served by the local limiter because Redis failed",
		}),
	}
}

func (m *Metrics) IncrementCheck(allowed bool) {
	if m == nil {
		return
	}
	result := "allowed"
	if !allowed {
		result = "limited"
	}
	m.Checks.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementFallback() {
	if m != nil {
		m.Fallbacks.Inc()
	}
}
