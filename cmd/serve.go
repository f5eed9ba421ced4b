package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Kshitijkb28/port-manager/internal/config"
	"github.com/Kshitijkb28/port-manager/internal/metrics"
	"github.com/Kshitijkb28/port-manager/internal/monitor"
	"github.com/Kshitijkb28/port-manager/internal/notification"
	"github.com/Kshitijkb28/port-manager/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with background port monitoring",
	Long: `Serves the JSON API (GET /api/ports, POST /api/kill/{pid}) and keeps a
background polling cycle running so changes are detected between requests.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	notifier, err := notification.NewNotifier(cfg.Notifications.LogFile, cfg.Notifications.ColorEnabled, cfg.Notifications.Verbose)
	if err != nil {
		return fmt.Errorf("creating notifier: %w", err)
	}
	defer notifier.Close()

	auditor, err := notification.NewAuditor(cfg.Notifications.AuditFile)
	if err != nil {
		return fmt.Errorf("creating auditor: %w", err)
	}
	defer auditor.Close()

	eng := buildEngine(cfg)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	eng.mon.OnChange(func(snap *monitor.Snapshot) {
		m.Changes.Inc()
		m.ObserveSnapshot(len(snap.User), len(snap.System))
		auditor.LogSnapshotChange(len(snap.User), len(snap.System))
		notifier.Debug(fmt.Sprintf("snapshot changed: %d user, %d system entries", len(snap.User), len(snap.System)))
	})
	eng.mon.OnError(func(err error) {
		m.ScanFailures.Inc()
		notifier.Error(fmt.Sprintf("collection cycle failed: %v", err))
	})
	eng.mon.OnCycle(func(d time.Duration) {
		m.Scans.Inc()
		m.ScanDuration.Observe(d.Seconds())
	})

	srv := server.New(eng.mon, eng.mgr, eng.table, notifier, auditor, m, metricsHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		notifier.Info("Shutting down...")
		cancel()
	}()

	go func() {
		_ = eng.mon.Start(ctx)
	}()

	if !eng.table.Elevated() {
		notifier.Warn("Not running elevated; some processes cannot be inspected or killed.")
	}
	notifier.Info(fmt.Sprintf("Port Manager API listening on http://%s", cfg.Server.Listen))

	if err := srv.ListenAndServe(ctx, cfg.Server.Listen); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
