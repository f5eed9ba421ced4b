package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kshitijkb28/port-manager/internal/config"
	"github.com/Kshitijkb28/port-manager/internal/monitor"
)

var watchPorts bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List processes bound to network ports",
	Long:  `Collects one snapshot of the port-to-process state and prints it. With --watch the view redraws whenever the state changes.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&watchPorts, "watch", false, "keep polling and redraw on change")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := config.Global
	eng := buildEngine(cfg)

	if !watchPorts {
		snap, err := eng.mon.GetSnapshot()
		if err != nil {
			return err
		}
		printSnapshot(snap, eng.table.Elevated(), cfg)
		return nil
	}

	eng.mon.OnChange(func(snap *monitor.Snapshot) {
		// Clear screen
		fmt.Print("\033[H\033[2J")
		printSnapshot(snap, eng.table.Elevated(), cfg)
		fmt.Printf("\nPress Ctrl+C to exit | Scan interval: %s\n", cfg.Monitoring.ScanInterval)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := eng.mon.Start(ctx); err != context.Canceled {
		return err
	}
	return nil
}

func printSnapshot(snap *monitor.Snapshot, elevated bool, cfg *config.Config) {
	admin := "no"
	if elevated {
		admin = "yes"
	}
	fmt.Printf("\033[1mPort Manager\033[0m | Ports: %d | User: %d | System: %d | Elevated: %s\n",
		snap.Len(), len(snap.User), len(snap.System), admin)

	header := fmt.Sprintf("%6s %7s %-22s %-14s %-10s %-22s %-4s %-12s %s",
		"PORT", "PID", "NAME", "USER", "APP", "ADDRESS", "PROTO", "STATE", "CONTROLLER")
	rule := "─────────────────────────────────────────────────────────────────────────────────────────────────────────────────"

	fmt.Println(rule)
	fmt.Println("User processes:")
	fmt.Println(header)
	for _, e := range snap.User {
		fmt.Println(monitor.FormatEntryLine(e))
	}

	fmt.Println(rule)
	fmt.Println("System processes:")
	fmt.Println(header)
	for _, e := range snap.System {
		fmt.Println(monitor.FormatEntryLine(e))
	}
}
