// Package metrics defines the Prometheus collectors shared across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feedback metrics
var (
	// SubmissionsTotal tracks accepted submissions by satisfaction level
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Total accepted feedback submissions by satisfaction level",
		},
		[]string{"level"},
	)

	// RejectedTotal tracks rejected submissions by reason
	RejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_rejected_total",
			Help: "Total rejected feedback submissions by reason",
		},
		[]string{"reason"},
	)

	// ExportsTotal tracks export downloads by format
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_exports_total",
			Help: "Total export downloads by format",
		},
		[]string{"format"},
	)
)

// Database metrics
var (
	// DBQueryDuration tracks query latency in seconds by query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks query errors by query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)

// WebSocket metrics
var (
	// WSConnectedClients tracks currently connected dashboard clients
	WSConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connected_clients",
			Help: "Currently connected dashboard WebSocket clients",
		},
	)

	// WSBroadcastsTotal tracks stats broadcasts to dashboard clients
	WSBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_broadcasts_total",
			Help: "Total stats broadcasts sent to dashboard clients",
		},
	)
)
