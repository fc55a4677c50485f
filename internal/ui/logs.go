package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/appshell/internal/logtail"
)

const logFetchLimit = 500

type logLinesMsg struct {
	lines []string
	err   error
}

func readLogCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, logFetchLimit)
		return logLinesMsg{lines: lines, err: err}
	}
}

// setLogLines colors lines by level and keeps the view pinned to the bottom
// when it already was.
func (m *Model) setLogLines(msg logLinesMsg) {
	styles := m.theme().Styles()
	if msg.err != nil {
		m.logViewport.SetContent(styles.DangerText.Render(msg.err.Error()))
		return
	}
	if len(msg.lines) == 0 {
		m.logViewport.SetContent(styles.MutedText.Render("Log is empty"))
		return
	}

	follow := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	rendered := make([]string, len(msg.lines))
	for i, line := range msg.lines {
		switch logtail.Level(line) {
		case "ERROR":
			rendered[i] = styles.DangerText.Render(line)
		case "WARN":
			rendered[i] = styles.WarningText.Render(line)
		case "DEBUG":
			rendered[i] = styles.FaintText.Render(line)
		default:
			rendered[i] = styles.Text.Render(line)
		}
	}
	m.logViewport.SetContent(strings.Join(rendered, "\n"))
	if follow {
		m.logViewport.GotoBottom()
	}
}
