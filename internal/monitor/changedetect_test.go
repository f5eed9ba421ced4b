package monitor_test

import (
	"testing"

	"github.com/Kshitijkb28/port-manager/internal/monitor"
)

func snapshotWith(entries ...monitor.Entry) *monitor.Snapshot {
	return &monitor.Snapshot{User: entries}
}

func TestChangeDetectorFirstSnapshotIsAChange(t *testing.T) {
	d := monitor.NewChangeDetector()
	if !d.HasChanged(snapshotWith()) {
		t.Error("first snapshot must register as a change, even when empty")
	}
}

func TestChangeDetectorSuppressesIdenticalSnapshots(t *testing.T) {
	d := monitor.NewChangeDetector()
	snap := snapshotWith(monitor.Entry{Port: 3000, PID: 10, Name: "node"})

	if !d.HasChanged(snap) {
		t.Fatal("first read must be a change")
	}
	if d.HasChanged(snap) {
		t.Error("identical snapshot must not register as a change")
	}

	// Equal content in a distinct value compares equal too.
	same := snapshotWith(monitor.Entry{Port: 3000, PID: 10, Name: "node"})
	if d.HasChanged(same) {
		t.Error("structurally equal snapshot must not register as a change")
	}
}

func TestChangeDetectorSeesFieldLevelChanges(t *testing.T) {
	d := monitor.NewChangeDetector()
	d.HasChanged(snapshotWith(monitor.Entry{Port: 3000, PID: 10, Name: "node", ConnState: "LISTEN"}))

	// Same port and pid, different state.
	changed := snapshotWith(monitor.Entry{Port: 3000, PID: 10, Name: "node", ConnState: "ESTABLISHED"})
	if !d.HasChanged(changed) {
		t.Error("a field-level difference must register as a change")
	}
}

func TestChangeDetectorReset(t *testing.T) {
	d := monitor.NewChangeDetector()
	snap := snapshotWith(monitor.Entry{Port: 3000, PID: 10})

	d.HasChanged(snap)
	d.Reset()
	if !d.HasChanged(snap) {
		t.Error("after Reset the same snapshot must read as changed")
	}
}
