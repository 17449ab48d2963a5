// Copyright 2025 Andamio Labs

package sideeffect

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors an Engine run reports to.
// Registration follows the same NewRegistry/Register pattern used
// elsewhere in this codebase's observability code.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics builds a Metrics and registers its collectors against reg.
// Passing a nil reg is valid and yields an unregistered Metrics usable
// purely for local observation in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "txcore_sideeffect_calls_total",
			Help: "Total side effect invocations by definition name and outcome.",
		}, []string{"def", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "txcore_sideeffect_duration_seconds",
			Help:    "Side effect call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"def"}),
	}
	if reg != nil {
		reg.MustRegister(m.calls, m.duration)
	}
	return m
}

func (m *Metrics) observe(r Result) {
	if m == nil {
		return
	}
	outcome := "success"
	switch {
	case r.Skipped:
		outcome = "skipped"
	case !r.Success:
		outcome = "failure"
	}
	m.calls.WithLabelValues(r.Def, outcome).Inc()
	if !r.Skipped {
		m.duration.WithLabelValues(r.Def).Observe(r.Duration.Seconds())
	}
}
