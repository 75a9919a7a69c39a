// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transitions counts wizard step transitions per graph.
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ildflow",
		Name:      "wizard_transitions_total",
		Help:      "Number of wizard step transitions, per graph.",
	}, []string{"graph"})

	// GenerateRequests counts AI generation requests by outcome.
	GenerateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ildflow",
		Name:      "generate_requests_total",
		Help:      "Number of AI generation requests, by outcome.",
	}, []string{"outcome"})

	// GenerateDuration observes end-to-end generation latency.
	GenerateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ildflow",
		Name:      "generate_duration_seconds",
		Help:      "End-to-end latency of AI generation requests.",
		Buckets:   prometheus.DefBuckets,
	})
)
