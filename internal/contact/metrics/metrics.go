package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for contact form submissions.
type Metrics struct {
	// Submissions by result: "success", "failure", "invalid", "method_not_allowed"
	Submissions *prometheus.CounterVec

	SendLatency prometheus.Histogram
}

// New registers the contact metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contactus_submissions_total",
			Help: "Total contact form submissions by result",
		}, []string{"result"}),

		SendLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "contactus_notification_send_duration_seconds",
			Help:    "Duration of outbound notification sends",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementSubmission records a submission result.
func (m *Metrics) IncrementSubmission(result string) {
	if m != nil {
		m.Submissions.WithLabelValues(result).Inc()
	}
}

// ObserveSend records the duration of one notification send.
func (m *Metrics) ObserveSend(d time.Duration) {
	if m != nil {
		m.SendLatency.Observe(d.Seconds())
	}
}
