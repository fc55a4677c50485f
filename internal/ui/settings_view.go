package ui

import (
	"fmt"
	"strings"

	"github.com/five82/appshell/internal/settings"
)

// settingRow is one editable line of the settings view.
type settingRow struct {
	group  settings.Group
	label  string
	value  func(settings.Values) string
	adjust func(s *settings.Store, delta int)
}

// accentPresets is the cycle offered for the custom accent color.
var accentPresets = []settings.Color{
	{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}, // blue
	{R: 0x34, G: 0xC7, B: 0x59, A: 0xFF}, // green
	{R: 0xFF, G: 0x95, B: 0x00, A: 0xFF}, // orange
	{R: 0xFF, G: 0x3B, B: 0x30, A: 0xFF}, // red
	{R: 0xAF, G: 0x52, B: 0xDE, A: 0xFF}, // purple
}

func nextAccent(current settings.Color, delta int) settings.Color {
	idx := 0
	for i, c := range accentPresets {
		if c == current {
			idx = i
			break
		}
	}
	n := len(accentPresets)
	return accentPresets[((idx+delta)%n+n)%n]
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func boolRow(g settings.Group, label string, get func(settings.Values) bool, set func(*settings.Store, bool)) settingRow {
	return settingRow{
		group:  g,
		label:  label,
		value:  func(v settings.Values) string { return onOff(get(v)) },
		adjust: func(s *settings.Store, _ int) { set(s, !get(s.Values())) },
	}
}

var settingRows = []settingRow{
	boolRow(settings.General, "Notifications",
		func(v settings.Values) bool { return v.EnableNotifications },
		(*settings.Store).SetEnableNotifications),
	boolRow(settings.General, "Auto-save",
		func(v settings.Values) bool { return v.AutoSave },
		(*settings.Store).SetAutoSave),
	{
		group: settings.General,
		label: "Max recent items",
		value: func(v settings.Values) string { return fmt.Sprint(v.MaxRecentItems) },
		adjust: func(s *settings.Store, d int) {
			s.SetMaxRecentItems(s.MaxRecentItems() + d)
		},
	},
	{
		group: settings.General,
		label: "Theme",
		value: func(v settings.Values) string { return string(v.SelectedTheme) },
		adjust: func(s *settings.Store, d int) {
			th := s.SelectedTheme()
			steps := ((d % 3) + 3) % 3
			for range steps {
				th = th.Next()
			}
			s.SetSelectedTheme(th)
		},
	},

	boolRow(settings.Appearance, "System accent color",
		func(v settings.Values) bool { return v.UseSystemAccentColor },
		(*settings.Store).SetUseSystemAccentColor),
	{
		group: settings.Appearance,
		label: "Accent color",
		value: func(v settings.Values) string { return v.CustomAccentColor.Hex() },
		adjust: func(s *settings.Store, d int) {
			s.SetCustomAccentColor(nextAccent(s.CustomAccentColor(), d))
		},
	},
	boolRow(settings.Appearance, "Show sidebar",
		func(v settings.Values) bool { return v.ShowSidebar },
		(*settings.Store).SetShowSidebar),
	{
		group: settings.Appearance,
		label: "Sidebar width",
		value: func(v settings.Values) string { return fmt.Sprintf("%.0f", v.SidebarWidth) },
		adjust: func(s *settings.Store, d int) {
			s.SetSidebarWidth(s.SidebarWidth() + 10*float64(d))
		},
	},

	boolRow(settings.Advanced, "Debug mode",
		func(v settings.Values) bool { return v.EnableDebugMode },
		(*settings.Store).SetEnableDebugMode),
	{
		group: settings.Advanced,
		label: "Max cache size (MB)",
		value: func(v settings.Values) string { return fmt.Sprint(v.MaxCacheSize) },
		adjust: func(s *settings.Store, d int) {
			s.SetMaxCacheSize(s.MaxCacheSize() + 10*d)
		},
	},
	boolRow(settings.Advanced, "Analytics",
		func(v settings.Values) bool { return v.EnableAnalytics },
		(*settings.Store).SetEnableAnalytics),
	{
		group: settings.Advanced,
		label: "Data retention (days)",
		value: func(v settings.Values) string { return fmt.Sprint(v.DataRetentionDays) },
		adjust: func(s *settings.Store, d int) {
			s.SetDataRetentionDays(s.DataRetentionDays() + d)
		},
	},
}

// renderSettings renders every setting grouped by section, marking groups
// with a pending write.
func (m Model) renderSettings() string {
	styles := m.theme().Styles()
	if m.prefs == nil {
		return styles.MutedText.Render("Settings unavailable")
	}
	v := m.prefs.Values()

	var b strings.Builder
	var current settings.Group = -1
	for i, row := range settingRows {
		if row.group != current {
			current = row.group
			if i > 0 {
				b.WriteString("\n")
			}
			title := strings.ToUpper(current.String())
			if _, pending := m.prefs.Pending(current); pending {
				title += styles.FaintText.Render(" (saving...)")
			}
			b.WriteString(styles.AccentText.Bold(true).Render(title))
			b.WriteString("\n")
		}

		line := padRight(row.label, 24) + row.value(v)
		if i == m.settingsRow {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if err := m.prefs.LastPersistError(); err != nil {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render("Save failed: " + err.Error()))
	}
	return b.String()
}
