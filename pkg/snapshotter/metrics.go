package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshot collection metrics
	snapshotCollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kubesnap_collection_duration_seconds",
			Help:    "Time taken to collect a complete namespace snapshot",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	snapshotCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubesnap_collection_total",
			Help: "Total number of snapshot collection attempts",
		},
		[]string{"status"}, // success or error
	)

	snapshotPhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kubesnap_phase_duration_seconds",
			Help:    "Time taken by individual collection phases",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"phase"}, // pods, kinds, events, custom, logscan, archive
	)

	snapshotResourceCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kubesnap_resources_collected",
			Help: "Number of resource instances in the last collected snapshot",
		},
	)

	snapshotFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kubesnap_fetch_failures_total",
			Help: "Per-instance fetches that produced no usable file",
		},
	)
)
