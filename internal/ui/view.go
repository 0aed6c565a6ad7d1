package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mealsearch/internal/ui/theme"
)

// View renders the frame, then draws the help overlay and toast on top.
func (m *App) View() string {
	if m.quitting {
		return ""
	}
	w, h := m.frameSize()
	st := m.ctrl.State()

	lines := []string{
		m.headerView(w),
		m.input.View(),
		m.statusLine(st),
	}
	lines = append(lines, renderRows(st.Candidates, st.Highlight, m.offset, m.maxVisible, w)...)
	if detail := m.detailView(); detail != "" {
		lines = append(lines, splitLines(detail)...)
	}

	// The footer is pinned to the last row.
	bodyHeight := h - 1
	if len(lines) > bodyHeight {
		lines = lines[:bodyHeight]
	}
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	lines = append(lines, m.help.ShortHelpView(m.keys.ShortHelp()))

	return compose(strings.Join(lines, "\n"), w, h, m.helpLayer(), m.toastLayer())
}

func (m *App) headerView(width int) string {
	title := styleAppHeader().Render("mealsearch")
	info := " " + theme.CurrentName()
	if m.version != "" {
		info = " " + m.version + " ·" + info
	}
	rest := width - lipgloss.Width(title)
	if rest <= 0 {
		return title
	}
	return title + styleHeaderInfo().Width(rest).Render(truncate(info, rest))
}
