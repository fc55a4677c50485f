package ui

import (
	"fmt"
	"strings"
	"time"
)

const logo = "appshell"

// renderHeader renders the logo, view tabs and connection status.
func (m Model) renderHeader() string {
	styles := m.theme().Styles()

	tabs := []struct {
		view  View
		label string
	}{
		{ViewItems, "Items"},
		{ViewSettings, "Settings"},
		{ViewExport, "Export"},
		{ViewLogs, "Logs"},
	}
	parts := []string{styles.Logo.Render(logo)}
	for _, tab := range tabs {
		if tab.view == m.currentView {
			parts = append(parts, styles.AccentText.Bold(true).Render("["+tab.label+"]"))
		} else {
			parts = append(parts, styles.MutedText.Render(tab.label))
		}
	}
	parts = append(parts, m.renderStatus())

	return styles.Header.Width(max(m.width, 1)).Render(strings.Join(parts, "  "))
}

// renderStatus summarizes request activity and the last refresh outcome.
func (m Model) renderStatus() string {
	styles := m.theme().Styles()

	if m.busy.Busy() {
		label := "Loading"
		if m.values().EnableDebugMode {
			label = fmt.Sprintf("Loading (%d in flight)", m.busy.InFlight)
		}
		return m.spinner.View() + " " + styles.AccentText.Render(label)
	}

	snap := m.snapshot
	switch {
	case snap.IsOffline():
		return styles.DangerText.Render(errorLabel(snap.LastError)) + " " +
			styles.MutedText.Render(fmt.Sprintf("%d failed refreshes", snap.ConsecutiveFailures))
	case snap.LastError != nil:
		return styles.WarningText.Render(errorLabel(snap.LastError))
	case snap.LastUpdated.IsZero():
		return styles.MutedText.Render("Connecting...")
	default:
		return styles.SuccessText.Render("OK") + " " +
			styles.FaintText.Render("updated "+humanizeDuration(time.Since(snap.LastUpdated)))
	}
}

// renderFooter renders the status line and command hints.
func (m Model) renderFooter() string {
	styles := m.theme().Styles()

	var hints []string
	switch m.currentView {
	case ViewItems:
		hints = []string{"j/k move", "r refresh", "n new", "d delete"}
	case ViewSettings:
		hints = []string{"j/k move", "enter toggle", "h/l adjust", "R reset"}
	case ViewExport, ViewLogs:
		hints = []string{"j/k scroll", "esc back"}
	}
	hints = append(hints, "T theme", "tab views", "? help", "q quit")

	line := strings.Join(hints, "  ")
	if m.status != "" {
		line = styles.AccentText.Render(m.status) + "  " + line
	}
	if m.values().EnableDebugMode && m.busy.LastError != nil {
		line += "  " + styles.DangerText.Render("last: "+truncate(m.busy.LastError.Error(), 60))
	}
	return styles.Footer.Width(max(m.width, 1)).Render(line)
}
