package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	groupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridrun_group_duration_seconds",
			Help:    "Duration of individual group executions",
			Buckets: []float64{1, 10, 60, 300, 1800, 7200, 43200},
		},
	)
	groupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gridrun_group_failures_total",
			Help: "Total number of group executions that exited with an error",
		},
	)
)
