package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Kshitijkb28/port-manager/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon, elevation and port counts",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	fmt.Println("╔══════════════════════════════════════════╗")
	fmt.Println("║              Port Manager                ║")
	fmt.Println("╚══════════════════════════════════════════╝")
	fmt.Println()

	// Daemon status
	pidFile := filepath.Join(os.TempDir(), "port-manager.pid")
	if data, err := os.ReadFile(pidFile); err == nil {
		fmt.Printf("Daemon:     Running (PID: %s)\n", string(data))
	} else {
		fmt.Println("Daemon:     Not running")
	}

	eng := buildEngine(cfg)

	elevated := "No (some processes will be hidden or unkillable)"
	if eng.table.Elevated() {
		elevated = "Yes"
	}
	fmt.Printf("Elevated:   %s\n", elevated)
	fmt.Println()

	snap, err := eng.mon.GetSnapshot()
	if err != nil {
		return fmt.Errorf("collecting snapshot: %w", err)
	}
	fmt.Println("Ports:")
	fmt.Printf("  Total:    %d\n", snap.Len())
	fmt.Printf("  User:     %d\n", len(snap.User))
	fmt.Printf("  System:   %d\n", len(snap.System))
	fmt.Println()

	fmt.Println("Configuration:")
	fmt.Printf("  Scan interval:  %s\n", cfg.Monitoring.ScanInterval)
	fmt.Printf("  API listen:     %s\n", cfg.Server.Listen)
	fmt.Printf("  Controllers:    %d names\n", len(cfg.Resolver.Controllers))
	fmt.Printf("  Wrappers:       %d names\n", len(cfg.Resolver.Wrappers))

	return nil
}
