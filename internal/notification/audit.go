package notification

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// AuditEntry is a single audit log entry.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	Details   string    `json:"details,omitempty"`
}

// Auditor writes an append-only audit trail.
type Auditor struct {
	mu   sync.Mutex
	file *os.File
}

// NewAuditor creates a new auditor.
func NewAuditor(filePath string) (*Auditor, error) {
	if filePath == "" {
		return &Auditor{}, nil
	}

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening audit file: %w", err)
	}

	return &Auditor{file: f}, nil
}

// Close closes the audit file.
func (a *Auditor) Close() {
	if a.file != nil {
		a.file.Close()
	}
}

// LogTermination records a process termination.
func (a *Auditor) LogTermination(pid int32, name, outcome string) {
	a.log(AuditEntry{
		Timestamp: time.Now(),
		Event:     "termination",
		Details:   fmt.Sprintf("pid=%d name=%s outcome=%s", pid, name, outcome),
	})
}

// LogSnapshotChange records that a polling cycle observed a changed
// port-to-process state.
func (a *Auditor) LogSnapshotChange(userEntries, systemEntries int) {
	a.log(AuditEntry{
		Timestamp: time.Now(),
		Event:     "snapshot_change",
		Details:   fmt.Sprintf("user=%d system=%d", userEntries, systemEntries),
	})
}

// LogEvent records a general event.
func (a *Auditor) LogEvent(event, details string) {
	a.log(AuditEntry{
		Timestamp: time.Now(),
		Event:     event,
		Details:   details,
	})
}

func (a *Auditor) log(entry AuditEntry) {
	if a.file == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	a.file.Write(data)
	a.file.Write([]byte("\n"))
}
