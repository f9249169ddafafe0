package params

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	expansionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gridrun_expansions_total",
			Help: "Total number of successful parameter expansions",
		},
	)
	expansionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gridrun_expansion_failures_total",
			Help: "Total number of parameter expansions rejected before producing groups",
		},
	)
	expansionGroups = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridrun_expansion_groups",
			Help:    "Number of run groups produced per expansion",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 1000},
		},
	)
)
