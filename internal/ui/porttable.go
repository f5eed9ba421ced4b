package ui

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Kshitijkb28/port-manager/internal/monitor"
)

// SortField determines how the port table is sorted.
type SortField int

const (
	SortByPort SortField = iota
	SortByPID
	SortByName
	SortByApp
)

var sortFieldNames = []string{"PORT", "PID", "NAME", "APP"}

// Section filters which snapshot partition is shown.
type Section int

const (
	SectionAll Section = iota
	SectionUser
	SectionSystem
)

var sectionNames = []string{"All", "User", "System"}

// PortTable displays the snapshot entries in a selectable table.
type PortTable struct {
	app       *App
	table     *tview.Table
	sortField SortField
	section   Section
}

// NewPortTable creates the port table.
func NewPortTable(app *App) *PortTable {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(tview.Borders.Vertical)

	table.SetBorder(true).
		SetTitle(" Ports ").
		SetBorderPadding(0, 0, 0, 0)

	pt := &PortTable{
		app:       app,
		table:     table,
		sortField: SortByPort,
	}

	pt.setHeaders()
	return pt
}

func (pt *PortTable) setHeaders() {
	headers := []string{"PORT", "PID", "NAME", "USER", "APP", "ADDRESS", "PROTO", "STATE", "CONTROLLER"}
	for i, h := range headers {
		cell := tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1)
		pt.table.SetCell(0, i, cell)
	}
}

// Update refreshes the table with the entries of the current section.
func (pt *PortTable) Update(snap *monitor.Snapshot) {
	if snap == nil {
		return
	}

	var entries []monitor.Entry
	switch pt.section {
	case SectionUser:
		entries = append(entries, snap.User...)
	case SectionSystem:
		entries = append(entries, snap.System...)
	default:
		entries = append(entries, snap.User...)
		entries = append(entries, snap.System...)
	}
	pt.sortEntries(entries)

	// Clear existing rows (keep header)
	for r := pt.table.GetRowCount() - 1; r >= 1; r-- {
		pt.table.RemoveRow(r)
	}

	for i, e := range entries {
		row := i + 1

		nameColor := tcell.ColorWhite
		if e.System {
			nameColor = tcell.ColorMediumPurple
		}
		stateColor := tcell.ColorOrange
		if e.ConnState == "LISTEN" {
			stateColor = tcell.ColorGreen
		}

		controller := fmt.Sprintf("ppid %d", e.ParentPID)
		if e.HasController {
			controller = fmt.Sprintf("%s (%d)", e.RootName, e.RootPID)
		}

		pt.table.SetCell(row, 0, tview.NewTableCell(strconv.Itoa(int(e.Port))).SetTextColor(tcell.ColorAqua))
		pt.table.SetCell(row, 1, tview.NewTableCell(strconv.Itoa(int(e.PID))).SetTextColor(tcell.ColorGray))
		pt.table.SetCell(row, 2, tview.NewTableCell(e.Name).SetTextColor(nameColor))
		pt.table.SetCell(row, 3, tview.NewTableCell(e.Username).SetTextColor(tcell.ColorGray))
		pt.table.SetCell(row, 4, tview.NewTableCell(string(e.AppType)).SetTextColor(tcell.ColorLightGreen))
		pt.table.SetCell(row, 5, tview.NewTableCell(e.Address).SetTextColor(tcell.ColorGray))
		pt.table.SetCell(row, 6, tview.NewTableCell(e.Protocol).SetTextColor(tcell.ColorAqua))
		pt.table.SetCell(row, 7, tview.NewTableCell(e.ConnState).SetTextColor(stateColor))
		pt.table.SetCell(row, 8, tview.NewTableCell(controller).SetTextColor(tcell.ColorGray))
	}
}

func (pt *PortTable) sortEntries(entries []monitor.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		switch pt.sortField {
		case SortByPID:
			return entries[i].PID < entries[j].PID
		case SortByName:
			return entries[i].Name < entries[j].Name
		case SortByApp:
			return entries[i].AppType < entries[j].AppType
		default:
			return entries[i].Port < entries[j].Port
		}
	})
}

// SelectedEntry returns the entry under the cursor, or nil.
func (pt *PortTable) SelectedEntry() *monitor.Entry {
	row, _ := pt.table.GetSelection()
	if row < 1 {
		return nil
	}
	pidCell := pt.table.GetCell(row, 1)
	portCell := pt.table.GetCell(row, 0)
	pid, err := strconv.Atoi(pidCell.Text)
	if err != nil {
		return nil
	}
	port, err := strconv.Atoi(portCell.Text)
	if err != nil {
		return nil
	}

	snap := pt.app.getSnapshot()
	if snap == nil {
		return nil
	}
	for _, section := range [][]monitor.Entry{snap.User, snap.System} {
		for i := range section {
			if section[i].PID == int32(pid) && int(section[i].Port) == port {
				return &section[i]
			}
		}
	}
	return nil
}

// CycleSort advances to the next sort field.
func (pt *PortTable) CycleSort() {
	pt.sortField = (pt.sortField + 1) % SortField(len(sortFieldNames))
}

// SortName returns the current sort field name.
func (pt *PortTable) SortName() string {
	return sortFieldNames[pt.sortField]
}

// CycleSection advances to the next section filter.
func (pt *PortTable) CycleSection() {
	pt.section = (pt.section + 1) % Section(len(sectionNames))
}

// SectionName returns the current section filter name.
func (pt *PortTable) SectionName() string {
	return sectionNames[pt.section]
}
