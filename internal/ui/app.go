package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/five82/appshell/internal/api"
	"github.com/five82/appshell/internal/settings"
	"github.com/five82/appshell/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewItems View = iota
	ViewSettings
	ViewExport
	ViewLogs

	numViews
)

const (
	defaultUITick = time.Second
	actionTimeout = 30 * time.Second
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Items    api.ItemService
	Refresh  func(context.Context) error // optional; defaults to a direct ListItems into Store
	Store    *state.Store
	Activity *state.Activity
	Settings *settings.Store
	Logger   *slog.Logger
	LogPath  string // application log shown in the logs view; empty hides it
	PollTick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Dependencies
	ctx      context.Context
	items    api.ItemService
	refresh  func(context.Context) error
	store    *state.Store
	activity *state.Activity
	prefs    *settings.Store
	logger   *slog.Logger
	logPath  string
	pollTick time.Duration

	// UI state
	keys           keyMap
	spinner        spinner.Model
	darkBackground bool
	currentView    View
	width          int
	height         int
	ready          bool
	showHelp       bool
	status         string

	// Data state
	snapshot state.Snapshot
	busy     state.ActivitySnapshot

	// Selection
	selectedRow int
	settingsRow int

	// Export view
	exportViewport viewport.Model

	// Logs view
	logViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultUITick
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		ctx:            ctx,
		items:          opts.Items,
		refresh:        opts.Refresh,
		store:          opts.Store,
		activity:       opts.Activity,
		prefs:          opts.Settings,
		logger:         logger,
		logPath:        opts.LogPath,
		pollTick:       pollTick,
		keys:           DefaultKeyMap(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		darkBackground: true,
		currentView:    ViewItems,
	}
	if m.refresh == nil && m.items != nil && m.store != nil {
		m.refresh = func(ctx context.Context) error {
			items, err := m.items.ListItems(ctx)
			m.store.Update(items, err)
			return err
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		m.spinner.Tick,
		fetchSnapshotCmd(m.store, m.activity),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := max(msg.Height-3, 1)
		if !m.ready {
			m.exportViewport = viewport.New(msg.Width, bodyHeight)
			m.logViewport = viewport.New(msg.Width, bodyHeight)
		} else {
			m.exportViewport.Width, m.exportViewport.Height = msg.Width, bodyHeight
			m.logViewport.Width, m.logViewport.Height = msg.Width, bodyHeight
		}
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{fetchSnapshotCmd(m.store, m.activity), tickCmd(m.pollTick)}
		if m.currentView == ViewLogs {
			cmds = append(cmds, readLogCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case logLinesMsg:
		m.setLogLines(msg)
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.busy = msg.activity
		m.clampSelection()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.label + " failed: " + errorText(msg.err)
			m.logger.Warn("ui action failed", "action", msg.label, "error", msg.err)
		} else {
			m.status = msg.label
		}
		return m, fetchSnapshotCmd(m.store, m.activity)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	switch m.currentView {
	case ViewSettings:
		b.WriteString(m.renderSettings())
	case ViewExport:
		b.WriteString(m.exportViewport.View())
	case ViewLogs:
		b.WriteString(m.logViewport.View())
	default:
		b.WriteString(m.renderItems())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		if m.prefs != nil {
			m.prefs.SetSelectedTheme(m.prefs.SelectedTheme().Next())
		}
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.currentView = (m.currentView + 1) % numViews
		if m.currentView == ViewLogs && m.logPath == "" {
			m.currentView = ViewItems
		}
		return m.enterView()
	case key.Matches(msg, m.keys.ViewItems), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewItems
		return m, nil
	case key.Matches(msg, m.keys.ViewSettings):
		m.currentView = ViewSettings
		return m, nil
	case key.Matches(msg, m.keys.ViewExport):
		m.currentView = ViewExport
		return m.enterView()
	case key.Matches(msg, m.keys.ViewLogs):
		if m.logPath == "" {
			return m, nil
		}
		m.currentView = ViewLogs
		return m.enterView()
	}

	switch m.currentView {
	case ViewItems:
		return m.handleItemsKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	case ViewExport:
		var cmd tea.Cmd
		m.exportViewport, cmd = m.exportViewport.Update(msg)
		return m, cmd
	case ViewLogs:
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// enterView prepares the view that just became active.
func (m Model) enterView() (tea.Model, tea.Cmd) {
	if m.currentView == ViewExport && m.prefs != nil {
		m.exportViewport.SetContent(m.prefs.ExportSnapshot())
		m.exportViewport.GotoTop()
	}
	if m.currentView == ViewLogs {
		return m, readLogCmd(m.logPath)
	}
	return m, nil
}

// handleItemsKey processes keyboard input for the items view.
func (m Model) handleItemsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleItems()

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.runAction("Refreshed", m.refresh)
	case key.Matches(msg, m.keys.NewItem):
		if m.items == nil {
			return m, nil
		}
		item := api.NewItem("Untitled", "Created from terminal", "General")
		return m, m.runAction("Item created", func(ctx context.Context) error {
			if _, err := m.items.SaveItem(ctx, item); err != nil {
				return err
			}
			return m.callRefresh(ctx)
		})
	}

	if len(visible) == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(visible)-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = len(visible) - 1
	case key.Matches(msg, m.keys.DeleteItem):
		if m.items == nil {
			return m, nil
		}
		id := visible[m.selectedRow].ID
		return m, m.runAction("Item deleted", func(ctx context.Context) error {
			if err := m.items.DeleteItem(ctx, id); err != nil {
				return err
			}
			return m.callRefresh(ctx)
		})
	}
	return m, nil
}

// handleSettingsKey processes keyboard input for the settings view.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prefs == nil {
		return m, nil
	}
	row := settingRows[m.settingsRow]

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.settingsRow < len(settingRows)-1 {
			m.settingsRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.settingsRow > 0 {
			m.settingsRow--
		}
	case key.Matches(msg, m.keys.Toggle):
		row.adjust(m.prefs, 1)
	case key.Matches(msg, m.keys.Increase):
		row.adjust(m.prefs, 1)
	case key.Matches(msg, m.keys.Decrease):
		row.adjust(m.prefs, -1)
	case key.Matches(msg, m.keys.Reset):
		prefs := m.prefs
		return m, m.runAction("Settings reset to defaults", prefs.ResetToDefaults)
	}
	return m, nil
}

// runAction runs fn off the UI goroutine and reports the outcome as label.
func (m Model) runAction(label string, fn func(context.Context) error) tea.Cmd {
	if fn == nil {
		return nil
	}
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, actionTimeout)
		defer cancel()
		return actionDoneMsg{label: label, err: fn(ctx)}
	}
}

func (m Model) callRefresh(ctx context.Context) error {
	if m.refresh == nil {
		return nil
	}
	return m.refresh(ctx)
}

// clampSelection keeps the cursor on a visible row after the list changes.
func (m *Model) clampSelection() {
	n := len(m.visibleItems())
	if m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}
}

// values returns current settings, or defaults when no store is wired.
func (m Model) values() settings.Values {
	if m.prefs == nil {
		return settings.Defaults()
	}
	return m.prefs.Values()
}

// theme resolves the palette from the current settings.
func (m Model) theme() Theme {
	return ThemeFor(m.values(), m.darkBackground)
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snapshot state.Snapshot
	activity state.ActivitySnapshot
}

type actionDoneMsg struct {
	label string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store, activity *state.Activity) tea.Cmd {
	return func() tea.Msg {
		var msg snapshotMsg
		if store != nil {
			msg.snapshot = store.Snapshot()
		}
		if activity != nil {
			msg.activity = activity.Snapshot()
		}
		return msg
	}
}

// selectedID returns the id under the cursor, if any.
func (m Model) selectedID() (uuid.UUID, bool) {
	visible := m.visibleItems()
	if len(visible) == 0 || m.selectedRow >= len(visible) {
		return uuid.Nil, false
	}
	return visible[m.selectedRow].ID, true
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	m.darkBackground = lipgloss.HasDarkBackground()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
