package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/appshell/internal/api"
)

// visibleItems returns the most recently updated items, capped by the
// maxRecentItems setting.
func (m Model) visibleItems() []api.Item {
	items := slices.Clone(m.snapshot.Items)
	slices.SortStableFunc(items, func(a, b api.Item) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	limit := m.values().MaxRecentItems
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// renderItems renders the item list, with the category sidebar when enabled.
func (m Model) renderItems() string {
	styles := m.theme().Styles()
	visible := m.visibleItems()

	var list strings.Builder
	if len(visible) == 0 {
		if m.snapshot.LastError != nil {
			list.WriteString(styles.DangerText.Render(errorText(m.snapshot.LastError)))
		} else {
			list.WriteString(styles.MutedText.Render("No items"))
		}
	}

	selected, _ := m.selectedID()
	titleWidth := 32
	for i, item := range visible {
		if i > 0 {
			list.WriteString("\n")
		}
		line := fmt.Sprintf("%s  %s  %s",
			padRight(truncate(item.Title, titleWidth), titleWidth),
			padRight(truncate(item.Category, 12), 12),
			humanizeDuration(time.Since(item.UpdatedAt)),
		)
		if item.ID == selected {
			list.WriteString(styles.Selected.Render(line))
		} else {
			list.WriteString(styles.Text.Render(line))
		}
		if sub := strings.TrimSpace(item.Subtitle); sub != "" && item.ID == selected {
			list.WriteString("\n")
			list.WriteString(styles.FaintText.Render("  " + truncate(sub, 60)))
		}
	}

	v := m.values()
	if !v.ShowSidebar {
		return list.String()
	}
	sidebar := styles.Sidebar.Width(sidebarColumns(v.SidebarWidth)).Render(m.renderCategories())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", list.String())
}

// renderCategories lists item counts per category.
func (m Model) renderCategories() string {
	styles := m.theme().Styles()
	counts := make(map[string]int)
	for _, item := range m.snapshot.Items {
		counts[cmp.Or(strings.TrimSpace(item.Category), "Uncategorized")]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Categories"))
	for _, name := range names {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(fmt.Sprintf("%s (%d)", name, counts[name])))
	}
	return b.String()
}

// sidebarColumns maps the sidebar width setting (points) to terminal cells.
func sidebarColumns(width float64) int {
	return max(int(width/10), 1)
}
