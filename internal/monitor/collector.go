package monitor

import (
	"fmt"
	"sort"

	"github.com/Kshitijkb28/port-manager/internal/sysproc"
)

// Collector turns raw socket/process data into a deduplicated, classified,
// controller-enriched Snapshot.
type Collector struct {
	table      sysproc.Table
	classifier *Classifier
	resolver   *Resolver
}

// NewCollector wires the collector to its OS table, classifier and resolver.
func NewCollector(table sysproc.Table, classifier *Classifier, resolver *Resolver) *Collector {
	return &Collector{table: table, classifier: classifier, resolver: resolver}
}

// Collect builds a fresh Snapshot. A failing socket enumeration fails the
// whole cycle; a single process that exits or denies access between the
// socket read and the identity lookup is silently dropped — that race is
// expected, not an error.
func (c *Collector) Collect() (*Snapshot, error) {
	sockets, err := c.table.Sockets()
	if err != nil {
		return nil, fmt.Errorf("collecting sockets: %w", err)
	}

	type key struct {
		port uint16
		pid  int32
	}
	seen := make(map[key]bool, len(sockets))
	snap := &Snapshot{}

	for _, s := range sockets {
		// Unattributable records: no port, or no owning pid.
		if s.Port == 0 || s.PID <= 0 {
			continue
		}
		// A process may hold several socket table entries for the same
		// logical listener; the first (port, pid) occurrence wins.
		k := key{s.Port, s.PID}
		if seen[k] {
			continue
		}
		seen[k] = true

		id, err := c.table.Identity(s.PID)
		if err != nil {
			continue
		}

		e := Entry{
			Port:      s.Port,
			PID:       s.PID,
			Name:      id.Name,
			Username:  id.Username,
			Address:   s.Address,
			Protocol:  s.Protocol,
			ConnState: s.State,
			AppType:   DetectAppType(id.Name, id.Cmdline),
			System:    c.classifier.IsSystem(id.Name, id.Username),
			ParentPID: id.PPID,
		}
		if tr := c.resolver.Trace(c.table, s.PID); tr.Found {
			e.RootPID = tr.RootPID
			e.RootName = tr.RootName
			e.HasController = true
		}

		if e.System {
			snap.System = append(snap.System, e)
		} else {
			snap.User = append(snap.User, e)
		}
	}

	// Stable: equal ports keep their discovery order.
	sort.SliceStable(snap.System, func(i, j int) bool { return snap.System[i].Port < snap.System[j].Port })
	sort.SliceStable(snap.User, func(i, j int) bool { return snap.User[i].Port < snap.User[j].Port })

	return snap, nil
}
