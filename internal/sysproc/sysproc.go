// Package sysproc wraps the OS socket and process tables behind a small
// capability interface so the monitoring engine can run against fakes in tests.
package sysproc

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Socket is one OS-reported inet socket with its owning PID.
type Socket struct {
	Port     uint16
	PID      int32
	Address  string
	Protocol string // "TCP" or "UDP"
	State    string // LISTEN, ESTABLISHED, ... ("NONE" for UDP)
}

// Identity is a point-in-time copy of a process's identifying attributes.
// The process may exit between lookup and use; callers must tolerate that.
type Identity struct {
	PID      int32
	PPID     int32
	Name     string
	Username string
	Cmdline  string
}

var (
	// ErrNotFound means the target process exited or never existed.
	ErrNotFound = errors.New("process not found")
	// ErrAccessDenied means the caller lacks the rights to touch the process.
	ErrAccessDenied = errors.New("access denied")
)

// Table is the process/socket capability required by the monitor and the
// termination manager.
type Table interface {
	Sockets() ([]Socket, error)
	Identity(pid int32) (Identity, error)
	Parent(pid int32) (int32, error)
	Kill(pid int32, tree bool) error
	Elevated() bool
}

// OSTable reads the live tables through gopsutil.
type OSTable struct{}

// NewOSTable returns a Table backed by the running OS.
func NewOSTable() *OSTable { return &OSTable{} }

// Sockets enumerates all IPv4/IPv6 TCP and UDP sockets.
func (t *OSTable) Sockets() ([]Socket, error) {
	conns, err := psnet.Connections("inet")
	if err != nil {
		return nil, fmt.Errorf("listing inet sockets: %w", err)
	}

	out := make([]Socket, 0, len(conns))
	for _, c := range conns {
		proto := "TCP"
		if c.Type == syscall.SOCK_DGRAM {
			proto = "UDP"
		}
		state := c.Status
		if state == "" {
			state = "NONE"
		}
		out = append(out, Socket{
			Port:     uint16(c.Laddr.Port),
			PID:      c.Pid,
			Address:  fmt.Sprintf("%s:%d", c.Laddr.IP, c.Laddr.Port),
			Protocol: proto,
			State:    state,
		})
	}
	return out, nil
}

// Identity reads the process's name, owner, command line and parent PID.
func (t *OSTable) Identity(pid int32) (Identity, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return Identity{}, mapError(err)
	}
	name, err := p.Name()
	if err != nil {
		return Identity{}, mapError(err)
	}
	ppid, _ := p.Ppid()
	username, err := p.Username()
	if err != nil {
		// Username lookups fail for some privileged processes; the rest of
		// the identity is still usable.
		username = "unknown"
	}
	cmdline, _ := p.Cmdline()

	return Identity{
		PID:      pid,
		PPID:     ppid,
		Name:     name,
		Username: username,
		Cmdline:  cmdline,
	}, nil
}

// Parent returns the parent PID, or an error if the process is gone.
func (t *OSTable) Parent(pid int32) (int32, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return 0, mapError(err)
	}
	ppid, err := p.Ppid()
	if err != nil {
		return 0, mapError(err)
	}
	return ppid, nil
}

// Kill terminates a process. With tree set, descendants are terminated
// depth-first before the process itself.
func (t *OSTable) Kill(pid int32, tree bool) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return mapError(err)
	}
	if tree {
		killDescendants(p, map[int32]bool{pid: true})
	}
	if err := p.Kill(); err != nil {
		return mapError(err)
	}
	return nil
}

func killDescendants(p *process.Process, visited map[int32]bool) {
	children, err := p.Children()
	if err != nil {
		return
	}
	for _, c := range children {
		if visited[c.Pid] {
			continue
		}
		visited[c.Pid] = true
		killDescendants(c, visited)
		_ = c.Kill() // best effort, the child may already be gone
	}
}

// Elevated reports whether the current process runs with root rights.
// On Windows Geteuid reports -1, so elevation always reads false there.
func (t *OSTable) Elevated() bool {
	return os.Geteuid() == 0
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, process.ErrorProcessNotRunning), errors.Is(err, syscall.ESRCH):
		return ErrNotFound
	case errors.Is(err, syscall.EPERM), errors.Is(err, syscall.EACCES), os.IsPermission(err):
		return ErrAccessDenied
	}
	return err
}
