// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_submissions_total",
			Help: "Total number of form submissions by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "churn_submissions_in_flight",
			Help: "Number of submissions waiting on the prediction service",
		},
	)

	PredictionRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "churn_prediction_request_duration_seconds",
			Help:    "Duration of calls to the prediction service in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	RiskRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_risk_rendered_total",
			Help: "Total number of rendered results by risk tier",
		},
		[]string{"tier"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)
)
