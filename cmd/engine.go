package cmd

import (
	"github.com/Kshitijkb28/port-manager/internal/config"
	"github.com/Kshitijkb28/port-manager/internal/monitor"
	"github.com/Kshitijkb28/port-manager/internal/process"
	"github.com/Kshitijkb28/port-manager/internal/safety"
	"github.com/Kshitijkb28/port-manager/internal/sysproc"
)

// engine bundles the core components shared by every command.
type engine struct {
	table    sysproc.Table
	resolver *monitor.Resolver
	mon      *monitor.PortMonitor
	mgr      *process.Manager
}

func buildEngine(cfg *config.Config) *engine {
	table := sysproc.NewOSTable()
	classifier := monitor.NewClassifier(cfg.Classify.SystemProcesses, cfg.Classify.PrivilegedMarkers)
	resolver := monitor.NewResolver(cfg.Resolver.Controllers, cfg.Resolver.Wrappers, cfg.Resolver.MaxDepth)
	collector := monitor.NewCollector(table, classifier, resolver)
	guard := safety.NewGuard(cfg.Safety.NeverTerminate)

	return &engine{
		table:    table,
		resolver: resolver,
		mon:      monitor.NewPortMonitor(collector, cfg.Monitoring.ScanInterval),
		mgr:      process.NewManager(table, resolver, guard),
	}
}
