package monitor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
)

// ChangeDetector suppresses redundant notifications by hashing each snapshot
// and comparing against the previous cycle's digest. One detector is owned
// by a monitoring session; the stored digest is the only state that survives
// across cycles.
type ChangeDetector struct {
	mu   sync.Mutex
	last string
}

// NewChangeDetector starts with no previous state, so the first snapshot is
// always reported as a change.
func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{}
}

// HasChanged digests the snapshot and does a locked read-compare-update
// against the stored digest. The periodic task and on-demand refreshes share
// one detector, so the compare-and-swap must be a single critical section.
func (d *ChangeDetector) HasChanged(snap *Snapshot) bool {
	sum := digest(snap)

	d.mu.Lock()
	defer d.mu.Unlock()
	if sum == d.last {
		return false
	}
	d.last = sum
	return true
}

// Reset forgets the previous digest; the next snapshot reads as changed.
func (d *ChangeDetector) Reset() {
	d.mu.Lock()
	d.last = ""
	d.mu.Unlock()
}

// digest serializes the snapshot canonically (fixed field order, sections
// already port-sorted by the collector) and hashes it.
func digest(snap *Snapshot) string {
	data, err := json.Marshal(snap)
	if err != nil {
		// Snapshot is plain data; Marshal cannot fail on it.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
