package monitor

import "fmt"

// FormatEntryLine formats an entry for text output.
func FormatEntryLine(e Entry) string {
	controller := fmt.Sprintf("ppid %d", e.ParentPID)
	if e.HasController {
		controller = fmt.Sprintf("%s (%d)", e.RootName, e.RootPID)
	}
	return fmt.Sprintf("%6d %7d %-22s %-14s %-10s %-22s %-4s %-12s %s",
		e.Port, e.PID, truncate(e.Name, 22), truncate(e.Username, 14),
		e.AppType, truncate(e.Address, 22), e.Protocol, e.ConnState, controller)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
