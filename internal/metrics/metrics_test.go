package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Kshitijkb28/port-manager/internal/metrics"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Scans.Inc()
	m.ScanFailures.Inc()
	m.Changes.Inc()
	m.Kills.WithLabelValues("killed").Inc()

	if got := testutil.ToFloat64(m.Scans); got != 1 {
		t.Errorf("scans = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Kills.WithLabelValues("killed")); got != 1 {
		t.Errorf("kills{outcome=killed} = %v, want 1", got)
	}

	names, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(names) == 0 {
		t.Error("registry must expose the registered families")
	}
}

func TestObserveSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveSnapshot(12, 34)

	if got := testutil.ToFloat64(m.Entries.WithLabelValues("user")); got != 12 {
		t.Errorf("entries{section=user} = %v, want 12", got)
	}
	if got := testutil.ToFloat64(m.Entries.WithLabelValues("system")); got != 34 {
		t.Errorf("entries{section=system} = %v, want 34", got)
	}

	// Gauges track the latest snapshot, not a running total.
	m.ObserveSnapshot(1, 2)
	if got := testutil.ToFloat64(m.Entries.WithLabelValues("user")); got != 1 {
		t.Errorf("entries{section=user} after second snapshot = %v, want 1", got)
	}
}
