package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/Kshitijkb28/port-manager/internal/monitor"
)

// StatusBar is the top status line: elevation, counts, uptime.
type StatusBar struct {
	app  *App
	view *tview.TextView
}

// NewStatusBar creates the status bar widget.
func NewStatusBar(app *App) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBorder(true).
		SetTitle(" Port Manager ").
		SetBorderPadding(0, 0, 1, 1)

	return &StatusBar{app: app, view: tv}
}

// Update refreshes the status bar display.
func (s *StatusBar) Update(snap *monitor.Snapshot) {
	if snap == nil {
		return
	}

	runtime := time.Since(s.app.startTime).Truncate(time.Second)

	admin := "[red]no"
	if s.app.table.Elevated() {
		admin = "[green]yes"
	}

	s.view.SetText(fmt.Sprintf(
		" [yellow]Runtime:[white] %s | [yellow]Elevated:[white] %s[white] | [yellow]Ports:[white] %d | "+
			"[yellow]User:[white] %d | [yellow]System:[white] %d | [yellow]Interval:[white] %s",
		runtime, admin, snap.Len(), len(snap.User), len(snap.System),
		s.app.cfg.Monitoring.ScanInterval,
	))
}
