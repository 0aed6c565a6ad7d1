package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"mealsearch/internal/domain"
	"mealsearch/internal/suggest"
)

const (
	rowMarker     = "▸ "
	rowIndent     = "  "
	ellipsis      = "…"
	subtitleSep   = "  "
	minLabelWidth = 8
)

// windowStart returns the first visible row for a list of total rows shown
// visible at a time, moving offset just enough to keep highlight in view.
func windowStart(offset, highlight, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	if highlight >= 0 {
		if highlight < offset {
			offset = highlight
		}
		if highlight >= offset+visible {
			offset = highlight - visible + 1
		}
	}
	if maxStart := total - visible; offset > maxStart {
		offset = maxStart
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, ellipsis)
}

// renderRows renders exactly visible lines starting at offset. Missing rows
// are blank so the layout below the list never shifts.
func renderRows(items []domain.Candidate, highlight, offset, visible, width int) []string {
	lines := make([]string, visible)
	for row := 0; row < visible; row++ {
		idx := offset + row
		if idx >= len(items) {
			lines[row] = ""
			continue
		}
		lines[row] = renderRow(items[idx], idx == highlight, width)
	}
	return lines
}

func renderRow(c domain.Candidate, highlighted bool, width int) string {
	inner := width - lipgloss.Width(rowIndent)
	if inner < minLabelWidth {
		inner = minLabelWidth
	}

	label := truncate(c.Label, inner)
	sub := ""
	if rest := inner - ansi.StringWidth(label) - len(subtitleSep); rest > minLabelWidth {
		sub = truncate(c.Subtitle(), rest)
	}

	if highlighted {
		text := label
		if sub != "" {
			text += subtitleSep + sub
		}
		return styleRowHighlighted().Width(width).Render(rowMarker + text)
	}
	line := rowIndent + styleRow().Render(label)
	if sub != "" {
		line += subtitleSep + styleRowSubtitle().Render(sub)
	}
	return line
}

// statusLine summarizes the current phase above the list.
func (m *App) statusLine(st suggest.State) string {
	q := strings.TrimSpace(st.Stable)
	switch st.Phase {
	case suggest.PhasePending:
		return m.spinner.View() + styleMuted().Render(fmt.Sprintf(" Searching for %q…", strings.TrimSpace(st.Query)))
	case suggest.PhaseNoMatch:
		if st.LastError != nil {
			return styleMuted().Render("No matches (lookup failed)")
		}
		return styleMuted().Render(fmt.Sprintf("No matches for %q", q))
	case suggest.PhaseShowing:
		n := len(st.Candidates)
		noun := "matches"
		if n == 1 {
			noun = "match"
		}
		return styleMuted().Render(fmt.Sprintf("%d %s for %q", n, noun, q))
	case suggest.PhaseCommitted:
		return styleMuted().Render("Chosen: " + st.Query)
	default:
		return styleMuted().Render("Start typing to search meals")
	}
}
