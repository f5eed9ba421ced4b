package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Kshitijkb28/port-manager/internal/config"
	"github.com/Kshitijkb28/port-manager/internal/monitor"
	"github.com/Kshitijkb28/port-manager/internal/notification"
	"github.com/Kshitijkb28/port-manager/internal/process"
	"github.com/Kshitijkb28/port-manager/internal/sysproc"
)

// App is the interactive TUI.
type App struct {
	tapp     *tview.Application
	cfg      *config.Config
	mon      *monitor.PortMonitor
	mgr      *process.Manager
	table    sysproc.Table
	notifier *notification.Notifier
	auditor  *notification.Auditor

	statusBar *StatusBar
	portTable *PortTable
	message   *tview.TextView

	mu        sync.RWMutex
	snapshot  *monitor.Snapshot
	startTime time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(
	cfg *config.Config,
	mon *monitor.PortMonitor,
	mgr *process.Manager,
	table sysproc.Table,
	notifier *notification.Notifier,
	auditor *notification.Auditor,
) *App {
	app := &App{
		tapp:      tview.NewApplication(),
		cfg:       cfg,
		mon:       mon,
		mgr:       mgr,
		table:     table,
		notifier:  notifier,
		auditor:   auditor,
		startTime: time.Now(),
	}

	app.ctx, app.cancel = context.WithCancel(context.Background())

	app.statusBar = NewStatusBar(app)
	app.portTable = NewPortTable(app)
	app.message = tview.NewTextView().SetDynamicColors(true)
	app.message.SetBorder(true).SetTitle(" Messages ")

	return app
}

// Run starts the TUI.
func (a *App) Run() error {
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.statusBar.view, 3, 0, false).
		AddItem(a.portTable.table, 0, 3, true).
		AddItem(a.message, 4, 0, false).
		AddItem(a.createFooter(), 1, 0, false)

	a.tapp.SetRoot(mainFlex, true)
	setupKeybindings(a)

	a.mon.OnChange(func(snap *monitor.Snapshot) {
		a.setSnapshot(snap)
		a.tapp.QueueUpdateDraw(func() {
			a.statusBar.Update(snap)
			a.portTable.Update(snap)
		})
	})

	go a.mon.Start(a.ctx)

	return a.tapp.Run()
}

func (a *App) createFooter() *tview.TextView {
	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetText(" [yellow]F5[white]:Refresh [yellow]F6[white]:Sort [yellow]Tab[white]:Section [yellow]F8[white]:Kill Tree [yellow]F9[white]:Kill [yellow]F10[white]:Quit")
	footer.SetBackgroundColor(tcell.ColorDarkSlateGray)
	return footer
}

func (a *App) stop() {
	a.cancel()
	a.tapp.Stop()
}

func (a *App) setSnapshot(snap *monitor.Snapshot) {
	a.mu.Lock()
	a.snapshot = snap
	a.mu.Unlock()
}

func (a *App) getSnapshot() *monitor.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// refresh runs an on-demand cycle outside the periodic task.
func (a *App) refresh() {
	snap, err := a.mon.GetSnapshot()
	if err != nil {
		a.tapp.QueueUpdateDraw(func() {
			a.message.SetText(fmt.Sprintf("[red]Refresh failed: %v", err))
		})
		return
	}
	a.setSnapshot(snap)
	a.tapp.QueueUpdateDraw(func() {
		a.statusBar.Update(snap)
		a.portTable.Update(snap)
	})
}
