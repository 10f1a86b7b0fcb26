// Package metrics exposes the dispatch pipeline's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsReceived counts requests accepted by the transport, labeled by
	// method before method validation runs.
	RequestsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webcore_requests_received_total",
		Help: "Total requests received by the transport, by method.",
	}, []string{"method"})

	// MethodRejected counts requests rejected at the dispatch boundary for
	// using an unrecognized method.
	MethodRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webcore_method_rejected_total",
		Help: "Total requests rejected with 405 for an unrecognized method.",
	})

	// QueueDepth reports the worker pool's current backlog length.
	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "webcore_queue_depth",
		Help: "Current length of the dispatch worker pool's task queue.",
	})

	// DispatchOutcomes counts completed dispatches by outcome: matched,
	// unmatched, static, or panicked.
	DispatchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webcore_dispatch_outcomes_total",
		Help: "Total completed dispatches, by outcome.",
	}, []string{"outcome"})

	// DispatchDuration observes the wall time spent inside requestHandler,
	// from dequeue until after End.
	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "webcore_dispatch_duration_seconds",
		Help:    "Time spent dispatching a request, from dequeue to response end.",
		Buckets: prometheus.DefBuckets,
	})
)

// Outcome labels for DispatchOutcomes.
const (
	OutcomeStatic    = "static"
	OutcomeMatched   = "matched"
	OutcomeUnmatched = "unmatched"
	OutcomePanicked  = "panicked"
)
