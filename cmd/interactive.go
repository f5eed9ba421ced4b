package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Kshitijkb28/port-manager/internal/config"
	"github.com/Kshitijkb28/port-manager/internal/notification"
	"github.com/Kshitijkb28/port-manager/internal/ui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launches the interactive terminal UI: a sortable port table with kill and kill-tree keybindings, refreshed whenever the port state changes.`,
	RunE:  runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	// Terminal output would corrupt the TUI; log to file only.
	notifier, err := notification.NewNotifier(cfg.Notifications.LogFile, false, cfg.Notifications.Verbose)
	if err != nil {
		return err
	}
	defer notifier.Close()

	auditor, err := notification.NewAuditor(cfg.Notifications.AuditFile)
	if err != nil {
		return err
	}
	defer auditor.Close()

	eng := buildEngine(cfg)

	app := ui.NewApp(cfg, eng.mon, eng.mgr, eng.table, notifier, auditor)
	return app.Run()
}
