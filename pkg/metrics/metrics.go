package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the intake collectors. A nil *Metrics records nothing.
type Metrics struct {
	submissions *prometheus.CounterVec
	storeCalls  *prometheus.HistogramVec
}

// New registers the intake collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sfd",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Form submissions by variant and terminal outcome.",
		}, []string{"variant", "outcome"}),
		storeCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sfd",
			Subsystem: "intake",
			Name:      "store_call_duration_seconds",
			Help:      "Latency of Google Sheets calls by operation and result.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "result"}),
	}
	reg.MustRegister(m.submissions, m.storeCalls)
	return m
}

// ObserveOutcome counts one submission that reached a terminal state
func (m *Metrics) ObserveOutcome(variant, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(variant, outcome).Inc()
}

// ObserveStoreCall records the latency of a store call started at start
func (m *Metrics) ObserveStoreCall(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeCalls.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}
