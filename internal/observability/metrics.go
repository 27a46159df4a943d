// # internal/observability/metrics.go
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pycycle_scan_seconds",
		Help:    "Time spent on a full project scan.",
		Buckets: prometheus.DefBuckets,
	})

	GraphModules = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pycycle_graph_modules_total",
		Help: "Number of scanned modules in the current import graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pycycle_graph_edges_total",
		Help: "Number of import edges in the current graph.",
	})

	CyclesDetected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pycycle_cycles_total",
		Help: "Number of import cycles found in the latest scan.",
	})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pycycle_parse_failures_total",
		Help: "Total number of files skipped because they could not be parsed.",
	})

	ScansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pycycle_scans_total",
		Help: "Total number of completed scans.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pycycle_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RescansThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pycycle_rescans_throttled_total",
		Help: "Total number of rescans delayed by the minimum rescan interval.",
	})
)
