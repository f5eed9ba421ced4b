package monitor_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/Kshitijkb28/port-manager/internal/monitor"
	"github.com/Kshitijkb28/port-manager/internal/sysproc"
)

// fakeTable implements sysproc.Table over fixed in-memory data.
type fakeTable struct {
	sockets    []sysproc.Socket
	socketsErr error
	ids        map[int32]sysproc.Identity
	idErr      map[int32]error
	killErr    map[int32]error
	killed     []int32
	killedTree []bool
	elevated   bool
}

func (f *fakeTable) Sockets() ([]sysproc.Socket, error) {
	if f.socketsErr != nil {
		return nil, f.socketsErr
	}
	return f.sockets, nil
}

func (f *fakeTable) Identity(pid int32) (sysproc.Identity, error) {
	if err, ok := f.idErr[pid]; ok {
		return sysproc.Identity{}, err
	}
	id, ok := f.ids[pid]
	if !ok {
		return sysproc.Identity{}, sysproc.ErrNotFound
	}
	return id, nil
}

func (f *fakeTable) Parent(pid int32) (int32, error) {
	id, err := f.Identity(pid)
	if err != nil {
		return 0, err
	}
	return id.PPID, nil
}

func (f *fakeTable) Kill(pid int32, tree bool) error {
	if err, ok := f.killErr[pid]; ok {
		return err
	}
	f.killed = append(f.killed, pid)
	f.killedTree = append(f.killedTree, tree)
	return nil
}

func (f *fakeTable) Elevated() bool { return f.elevated }

func newTestCollector(table *fakeTable) *monitor.Collector {
	classifier := monitor.NewClassifier(
		[]string{"svchost.exe", "services.exe"},
		[]string{"system", "local service"},
	)
	resolver := monitor.NewResolver(
		[]string{"node.exe", "node", "python"},
		[]string{"cmd.exe", "bash"},
		32,
	)
	return monitor.NewCollector(table, classifier, resolver)
}

func socket(port uint16, pid int32) sysproc.Socket {
	return sysproc.Socket{Port: port, PID: pid, Address: "127.0.0.1", Protocol: "TCP", State: "LISTEN"}
}

func TestCollectDeduplicatesPortPidPairs(t *testing.T) {
	table := &fakeTable{
		sockets: []sysproc.Socket{
			socket(3000, 10),
			socket(3000, 10), // duplicate socket table entry
			socket(3000, 11), // same port, different owner: kept
			socket(8080, 10),
		},
		ids: map[int32]sysproc.Identity{
			10: {PID: 10, PPID: 1, Name: "node.exe", Username: "alice", Cmdline: "node server.js"},
			11: {PID: 11, PPID: 1, Name: "python", Username: "bob", Cmdline: "python app.py"},
		},
	}

	snap, err := newTestCollector(table).Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if got := snap.Len(); got != 3 {
		t.Fatalf("expected 3 entries after dedup, got %d", got)
	}

	seen := make(map[[2]int]bool)
	for _, e := range append(append([]monitor.Entry{}, snap.User...), snap.System...) {
		key := [2]int{int(e.Port), int(e.PID)}
		if seen[key] {
			t.Errorf("duplicate (port, pid) pair: %v", key)
		}
		seen[key] = true
	}
}

func TestCollectSkipsUnattributableSockets(t *testing.T) {
	table := &fakeTable{
		sockets: []sysproc.Socket{
			socket(3000, 0),  // no owning pid
			socket(0, 10),    // no port
			socket(3000, -1), // negative pid
			socket(4000, 10),
		},
		ids: map[int32]sysproc.Identity{
			10: {PID: 10, PPID: 1, Name: "node", Username: "alice"},
		},
	}

	snap, err := newTestCollector(table).Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if snap.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", snap.Len())
	}
}

func TestCollectDropsVanishedProcesses(t *testing.T) {
	table := &fakeTable{
		sockets: []sysproc.Socket{
			socket(3000, 10),
			socket(4000, 20), // exits between enumeration and lookup
			socket(5000, 30), // access denied
		},
		ids: map[int32]sysproc.Identity{
			10: {PID: 10, PPID: 1, Name: "node", Username: "alice"},
		},
		idErr: map[int32]error{
			20: sysproc.ErrNotFound,
			30: sysproc.ErrAccessDenied,
		},
	}

	snap, err := newTestCollector(table).Collect()
	if err != nil {
		t.Fatalf("Collect must not fail on per-entry races: %v", err)
	}
	if snap.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", snap.Len())
	}
}

func TestCollectPartitionsAndSorts(t *testing.T) {
	table := &fakeTable{
		sockets: []sysproc.Socket{
			socket(9000, 10),
			socket(443, 20),
			socket(3000, 11),
			socket(135, 21),
		},
		ids: map[int32]sysproc.Identity{
			10: {PID: 10, PPID: 1, Name: "node", Username: "alice"},
			11: {PID: 11, PPID: 1, Name: "python", Username: "alice"},
			20: {PID: 20, PPID: 1, Name: "svchost.exe", Username: `NT AUTHORITY\SYSTEM`},
			21: {PID: 21, PPID: 1, Name: "services.exe", Username: `NT AUTHORITY\SYSTEM`},
		},
	}

	snap, err := newTestCollector(table).Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if len(snap.User) != 2 || len(snap.System) != 2 {
		t.Fatalf("expected 2 user + 2 system entries, got %d + %d", len(snap.User), len(snap.System))
	}
	for _, e := range snap.System {
		if !e.System {
			t.Errorf("entry %d/%d in system section but not classified system", e.Port, e.PID)
		}
	}
	for _, e := range snap.User {
		if e.System {
			t.Errorf("entry %d/%d in user section but classified system", e.Port, e.PID)
		}
	}

	userSorted := sort.SliceIsSorted(snap.User, func(i, j int) bool { return snap.User[i].Port < snap.User[j].Port })
	sysSorted := sort.SliceIsSorted(snap.System, func(i, j int) bool { return snap.System[i].Port < snap.System[j].Port })
	if !userSorted || !sysSorted {
		t.Error("sections must be sorted ascending by port")
	}
}

func TestCollectEnrichesWithControllerAndAppType(t *testing.T) {
	// The end-to-end example: port 3000, node.exe running next-server,
	// launched through a shell owned by a node controller.
	table := &fakeTable{
		sockets: []sysproc.Socket{socket(3000, 4567)},
		ids: map[int32]sysproc.Identity{
			4567: {PID: 4567, PPID: 70, Name: "node.exe", Username: `DESKTOP\alice`, Cmdline: "node next-server --port 3000"},
			70:   {PID: 70, PPID: 80, Name: "cmd.exe"},
			80:   {PID: 80, PPID: 1, Name: "node.exe"},
		},
	}

	snap, err := newTestCollector(table).Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(snap.User) != 1 {
		t.Fatalf("expected 1 user entry, got %d", len(snap.User))
	}

	e := snap.User[0]
	if e.AppType != monitor.AppNextJS {
		t.Errorf("app type = %s, want %s", e.AppType, monitor.AppNextJS)
	}
	if !e.HasController || e.RootPID != 80 {
		t.Errorf("root controller = %d (found=%v), want 80", e.RootPID, e.HasController)
	}
	if e.ParentPID != 70 {
		t.Errorf("parent pid = %d, want 70", e.ParentPID)
	}
}

func TestCollectFailsWholeCycleOnSocketError(t *testing.T) {
	table := &fakeTable{socketsErr: errors.New("enumeration failed")}

	if _, err := newTestCollector(table).Collect(); err == nil {
		t.Fatal("expected an explicit error, not a partial snapshot")
	}
}
