package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PortMonitor runs the full collect → classify → resolve → hash cycle, both
// on a fixed interval and on demand. Cycles are short and always run to
// completion; there is no cancellation of an in-flight cycle.
type PortMonitor struct {
	collector *Collector
	detector  *ChangeDetector
	interval  time.Duration

	mu       sync.RWMutex
	current  *Snapshot
	onChange func(*Snapshot)
	onError  func(error)
	onCycle  func(time.Duration)

	busy atomic.Bool
}

// NewPortMonitor creates a monitor with a fresh change detector, scoped to
// this monitoring session.
func NewPortMonitor(collector *Collector, interval time.Duration) *PortMonitor {
	return &PortMonitor{
		collector: collector,
		detector:  NewChangeDetector(),
		interval:  interval,
	}
}

// OnChange sets a callback invoked whenever a periodic cycle produces a
// snapshot that differs from the previous accepted read.
func (m *PortMonitor) OnChange(fn func(*Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// OnError sets a callback for whole-cycle failures of the periodic task.
func (m *PortMonitor) OnError(fn func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}

// OnCycle sets a callback invoked with the duration of every completed
// periodic cycle, changed or not. Used for instrumentation.
func (m *PortMonitor) OnCycle(fn func(time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCycle = fn
}

// Start runs the periodic cycle until the context is cancelled. A tick that
// fires while a cycle is still in flight is skipped rather than queued: two
// racing process enumerations produce nothing extra and waste OS handles.
func (m *PortMonitor) Start(ctx context.Context) error {
	m.tick()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.tick()
		}
	}
}

func (m *PortMonitor) tick() {
	if !m.busy.CompareAndSwap(false, true) {
		return
	}
	defer m.busy.Store(false)

	start := time.Now()
	snap, err := m.PollForChange()

	m.mu.RLock()
	onCycle := m.onCycle
	m.mu.RUnlock()
	if onCycle != nil && err == nil {
		onCycle(time.Since(start))
	}

	if err != nil {
		m.mu.RLock()
		onErr := m.onError
		m.mu.RUnlock()
		if onErr != nil {
			onErr(err)
		}
		return
	}
	if snap == nil {
		return
	}

	m.mu.RLock()
	cb := m.onChange
	m.mu.RUnlock()
	if cb != nil {
		cb(snap)
	}
}

// GetSnapshot runs a full cycle synchronously and accepts the read into the
// change detector. Used for initial and explicit on-demand loads; may run
// concurrently with the periodic task.
func (m *PortMonitor) GetSnapshot() (*Snapshot, error) {
	snap, err := m.collector.Collect()
	if err != nil {
		return nil, err
	}
	m.setCurrent(snap)
	m.detector.HasChanged(snap)
	return snap, nil
}

// PollForChange runs a full cycle and returns nil when nothing changed since
// the previous accepted read.
func (m *PortMonitor) PollForChange() (*Snapshot, error) {
	snap, err := m.collector.Collect()
	if err != nil {
		return nil, err
	}
	m.setCurrent(snap)
	if !m.detector.HasChanged(snap) {
		return nil, nil
	}
	return snap, nil
}

// Current returns the most recently collected snapshot, or nil before the
// first cycle completes.
func (m *PortMonitor) Current() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *PortMonitor) setCurrent(snap *Snapshot) {
	m.mu.Lock()
	m.current = snap
	m.mu.Unlock()
}
