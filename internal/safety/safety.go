package safety

import (
	"fmt"
	"strings"
	"sync"
)

// Guard blocks termination of processes the machine cannot afford to lose.
// It sits in front of every kill path, including the tree-kill fallback.
type Guard struct {
	mu             sync.RWMutex
	neverTerminate map[string]bool
}

// NewGuard creates a guard from the configured never-terminate name list.
func NewGuard(neverTermNames []string) *Guard {
	never := make(map[string]bool, len(neverTermNames))
	for _, n := range neverTermNames {
		never[strings.ToLower(n)] = true
	}
	return &Guard{neverTerminate: never}
}

// Validate checks if a process can be safely terminated.
// The lowest PIDs are always refused: 1 and 2 on Linux, 0 and 4 on Windows.
func (g *Guard) Validate(pid int32, name string) (bool, string) {
	if pid <= 4 {
		return false, fmt.Sprintf("PID %d is a critical system process", pid)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.neverTerminate[strings.ToLower(name)] {
		return false, fmt.Sprintf("process '%s' is on the never-terminate list", name)
	}

	return true, "termination allowed"
}

// IsProtected reports whether the guard would refuse to terminate the
// process, without composing a reason.
func (g *Guard) IsProtected(pid int32, name string) bool {
	ok, _ := g.Validate(pid, name)
	return !ok
}
