package process

import (
	"errors"
	"fmt"

	"github.com/Kshitijkb28/port-manager/internal/monitor"
	"github.com/Kshitijkb28/port-manager/internal/safety"
	"github.com/Kshitijkb28/port-manager/internal/sysproc"
)

// Outcome classifies a termination attempt.
type Outcome int

const (
	OutcomeKilled Outcome = iota
	OutcomeNotFound
	OutcomeAccessDenied
	OutcomeBlocked
	OutcomeFailed
)

var outcomeNames = []string{"killed", "not_found", "access_denied", "blocked", "failed"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Result carries the outcome of a termination plus a description for the
// caller.
type Result struct {
	Outcome Outcome
	Message string
}

// Manager handles process termination. It never touches snapshot state and
// may run concurrently with an in-flight collection cycle.
type Manager struct {
	table    sysproc.Table
	resolver *monitor.Resolver
	guard    *safety.Guard
}

// NewManager creates a termination manager.
func NewManager(table sysproc.Table, resolver *monitor.Resolver, guard *safety.Guard) *Manager {
	return &Manager{table: table, resolver: resolver, guard: guard}
}

// Terminate kills pid. In tree mode the controller-tree resolver runs first;
// a found controller is terminated together with all its descendants, which
// prevents a surviving wrapper from respawning the leaf. If that path fails,
// or no controller exists, the operation degrades to terminating only pid.
func (m *Manager) Terminate(pid int32, tree bool) Result {
	if tree {
		if tr := m.resolver.Trace(m.table, pid); tr.Found {
			if res := m.kill(tr.RootPID, tr.RootName, true); res.Outcome == OutcomeKilled {
				return res
			}
		}
	}
	return m.kill(pid, "", false)
}

func (m *Manager) kill(pid int32, name string, tree bool) Result {
	if name == "" {
		if id, err := m.table.Identity(pid); err == nil {
			name = id.Name
		}
	}

	if m.guard != nil {
		if ok, reason := m.guard.Validate(pid, name); !ok {
			return Result{Outcome: OutcomeBlocked, Message: "termination blocked: " + reason}
		}
	}

	err := m.table.Kill(pid, tree)
	switch {
	case err == nil:
		msg := fmt.Sprintf("Process %s (PID: %d) terminated successfully", name, pid)
		if tree {
			msg = fmt.Sprintf("Process %s (PID: %d) and its descendants terminated successfully", name, pid)
		}
		return Result{Outcome: OutcomeKilled, Message: msg}
	case errors.Is(err, sysproc.ErrNotFound):
		return Result{Outcome: OutcomeNotFound, Message: fmt.Sprintf("Process with PID %d not found", pid)}
	case errors.Is(err, sysproc.ErrAccessDenied):
		return Result{Outcome: OutcomeAccessDenied, Message: fmt.Sprintf("Access denied terminating PID %d. Retry with elevated rights.", pid)}
	}
	return Result{Outcome: OutcomeFailed, Message: err.Error()}
}
