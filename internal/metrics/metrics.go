// Package metrics exposes the daemon's own operational counters to
// Prometheus. Per-process resource metrics are out of scope; only the
// scan/kill machinery is instrumented.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors for the scan and termination paths.
type Metrics struct {
	Scans        prometheus.Counter
	ScanFailures prometheus.Counter
	ScanDuration prometheus.Histogram
	Changes      prometheus.Counter
	Entries      *prometheus.GaugeVec
	Kills        *prometheus.CounterVec
}

// New registers the collectors on reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Scans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portmanager_scans_total",
			Help: "Completed collect/classify/resolve cycles.",
		}),
		ScanFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portmanager_scan_failures_total",
			Help: "Cycles aborted because socket enumeration failed.",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portmanager_scan_duration_seconds",
			Help:    "Wall time of one full collection cycle.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		Changes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portmanager_snapshot_changes_total",
			Help: "Cycles whose snapshot digest differed from the previous one.",
		}),
		Entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "portmanager_entries",
			Help: "Port-process entries in the latest snapshot, by section.",
		}, []string{"section"}),
		Kills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portmanager_kills_total",
			Help: "Termination requests by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.Scans, m.ScanFailures, m.ScanDuration, m.Changes, m.Entries, m.Kills)
	return m
}

// ObserveSnapshot records the section sizes of an accepted snapshot.
func (m *Metrics) ObserveSnapshot(userEntries, systemEntries int) {
	m.Entries.WithLabelValues("user").Set(float64(userEntries))
	m.Entries.WithLabelValues("system").Set(float64(systemEntries))
}
