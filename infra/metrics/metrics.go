package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeForwarded      = "forwarded"
	OutcomeTransportError = "transport_error"
	OutcomeRejected       = "rejected"
	OutcomeFatal          = "fatal"
)

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	Requests        *prometheus.CounterVec
	ForwardDuration *prometheus.HistogramVec
	LogFailures     prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_relay_requests_total",
			Help: "Inbound webhook requests by outcome.",
		}, []string{"outcome"}),
		ForwardDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "webhook_relay_forward_duration_seconds",
			Help:    "Duration of calls to the callback destination.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
		LogFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "webhook_relay_log_failures_total",
			Help: "Audit log appends that failed.",
		}),
	}
}

func (m *Metrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveForward(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ForwardDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
