package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridrun_dispatch_duration_seconds",
			Help:    "Duration of action dispatches, resolution through child exit",
			Buckets: []float64{1, 5, 10, 30, 60, 300, 1800},
		},
	)
	dispatchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gridrun_dispatch_failures_total",
			Help: "Total number of dispatches that failed before or during execution",
		},
	)
)
