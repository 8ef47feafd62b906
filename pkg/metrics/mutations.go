package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MutationMetrics records outcomes and latency for stock mutations.
type MutationMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewMutationMetrics registers the mutation metrics on the provided registerer.
func NewMutationMetrics(reg prometheus.Registerer) *MutationMetrics {
	if reg == nil {
		return &MutationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stock_mutation_duration_seconds",
		Help:    "Duration of stock mutation transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_mutation_outcomes_total",
		Help: "Stock mutation results partitioned by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, outcomes)
	return &MutationMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

// ObserveDuration records the transaction duration for the named operation.
func (m *MutationMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess counts a committed mutation.
func (m *MutationMetrics) IncSuccess(operation string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(operation), "success").Inc()
}

// IncRejected counts a mutation refused by a guard (insufficient stock, bad state).
func (m *MutationMetrics) IncRejected(operation string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(operation), "rejected").Inc()
}

// IncFailure counts a mutation that failed on infrastructure.
func (m *MutationMetrics) IncFailure(operation string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(operation), "failure").Inc()
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
