package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequestCountsByOutcome(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveRequest(OutcomeForwarded)
	m.ObserveRequest(OutcomeForwarded)
	m.ObserveRequest(OutcomeRejected)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Requests.WithLabelValues(OutcomeForwarded)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues(OutcomeRejected)))
}

func TestObserveForwardRecordsHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveForward(OutcomeForwarded, 120*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(m.ForwardDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest(OutcomeFatal)
		m.ObserveForward(OutcomeFatal, time.Second)
	})
}
