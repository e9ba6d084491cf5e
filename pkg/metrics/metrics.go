// Package metrics holds the Prometheus collectors shared across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commentlog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "commentlog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "commentlog_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// StoreConflicts counts transaction attempts replayed after losing a race.
	StoreConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commentlog_store_conflicts_total",
			Help: "Store transaction attempts retried after a concurrent write",
		},
		[]string{"backend"},
	)

	// OperationsTotal counts domain operations by outcome (ok or error code).
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commentlog_operations_total",
			Help: "Domain operations by name and outcome",
		},
		[]string{"op", "outcome"},
	)

	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "commentlog_events_dropped_total",
			Help: "Domain events dropped because the dispatch queue was full",
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commentlog_events_published_total",
			Help: "Domain events handed to the producer by result",
		},
		[]string{"result"},
	)
)
