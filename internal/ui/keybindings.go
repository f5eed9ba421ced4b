package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Kshitijkb28/port-manager/internal/process"
)

func setupKeybindings(app *App) {
	app.tapp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			go app.refresh()
			return nil

		case tcell.KeyF6:
			app.portTable.CycleSort()
			app.redrawTable(fmt.Sprintf("[yellow]Sorting by: %s", app.portTable.SortName()))
			return nil

		case tcell.KeyTab:
			app.portTable.CycleSection()
			app.redrawTable(fmt.Sprintf("[yellow]Section: %s", app.portTable.SectionName()))
			return nil

		case tcell.KeyF8:
			// Kill the whole controller tree of the selected entry
			if e := app.portTable.SelectedEntry(); e != nil {
				go terminateSelected(app, e.PID, e.Name, true)
			}
			return nil

		case tcell.KeyF9:
			// Kill only the selected process
			if e := app.portTable.SelectedEntry(); e != nil {
				go terminateSelected(app, e.PID, e.Name, false)
			}
			return nil

		case tcell.KeyF10:
			app.stop()
			return nil

		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				app.stop()
				return nil
			case 'r', 'R':
				go app.refresh()
				return nil
			}
		}

		return event
	})
}

// redrawTable runs on the event goroutine; tview draws after the input
// handler returns, so no QueueUpdateDraw here.
func (a *App) redrawTable(msg string) {
	if snap := a.getSnapshot(); snap != nil {
		a.portTable.Update(snap)
	}
	a.message.SetText(msg)
}

func terminateSelected(app *App, pid int32, name string, tree bool) {
	res := app.mgr.Terminate(pid, tree)

	if app.auditor != nil {
		app.auditor.LogTermination(pid, name, res.Outcome.String())
	}

	color := "[red]"
	if res.Outcome == process.OutcomeKilled {
		color = "[green]"
	}
	app.tapp.QueueUpdateDraw(func() {
		app.message.SetText(fmt.Sprintf("%s%s", color, res.Message))
	})

	// Show the post-kill state without waiting for the next tick.
	if res.Outcome == process.OutcomeKilled {
		app.refresh()
	}
}
