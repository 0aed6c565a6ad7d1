package ui

import (
	"mealsearch/internal/domain"
)

const (
	minDetailHeight = 3
	detailChrome    = 2 // rounded border rows
)

// renderDetail fills the viewport with the committed meal. Rendering happens
// on commit and resize only, never per frame.
func (m *App) renderDetail() {
	if m.committed == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderMarkdown(m.committed.Markdown()))
	m.viewport.GotoTop()
}

func (m *App) setCommitted(c domain.Candidate) {
	m.committed = &c
	m.renderDetail()
}

func (m *App) clearCommitted() {
	if m.committed == nil {
		return
	}
	m.committed = nil
	m.renderDetail()
}

func (m *App) detailView() string {
	if m.committed == nil || m.viewport.Height <= 0 {
		return ""
	}
	return styleDetailPane().
		Width(m.viewport.Width).
		Render(m.viewport.View())
}
