package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mowradar_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	stageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mowradar_stage_failures_total",
			Help: "Total number of failed pipeline stages",
		},
		[]string{"stage", "kind"},
	)

	pitchesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mowradar_pitches_generated_total",
			Help: "Total number of pitches generated",
		},
	)
)
