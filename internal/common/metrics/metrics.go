// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_report_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_report_stage_failures_total",
			Help: "Total number of failed pipeline stages",
		},
		[]string{"stage", "error_code"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_report_notifications_total",
			Help: "Total number of notification attempts by result",
		},
		[]string{"result"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weather_report_run_duration_seconds",
			Help:    "Duration of a pipeline run in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	RunsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weather_report_runs_active",
			Help: "Number of pipeline runs in progress",
		},
	)
)
