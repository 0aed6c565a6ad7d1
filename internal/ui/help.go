package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type helpSection struct {
	title string
	rows  [][]string // [keys, description]
}

// getHelpSections derives the help text from the bindings themselves.
func getHelpSections(keys KeyMap) []helpSection {
	row := func(b key.Binding) []string {
		return []string{b.Help().Key, b.Help().Desc}
	}
	return []helpSection{
		{
			title: "SUGGESTIONS",
			rows: [][]string{
				{"type", "Search meals by name"},
				row(keys.Down),
				row(keys.Enter),
				{"click", "Choose a meal"},
			},
		},
		{
			title: "RECIPE",
			rows: [][]string{
				row(keys.PageUp),
				row(keys.PageDown),
				row(keys.Copy),
			},
		},
		{
			title: "GENERAL",
			rows: [][]string{
				row(keys.Theme),
				row(keys.Help),
				{"Esc  Ctrl+C", keys.Quit.Help().Desc},
			},
		},
	}
}

// renderHelpOverlay builds the help box; the caller centers it.
func renderHelpOverlay(keys KeyMap) string {
	sections := getHelpSections(keys)

	left := renderHelpSectionTable(sections[0])
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[1]),
		"",
		renderHelpSectionTable(sections[2]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		styleHelpTitle().Render("✦ MEALSEARCH HELP ✦"),
		styleDivider().Render(strings.Repeat("─", dividerWidth)),
		"",
		columns,
		"",
		styleHelpFooter().Render("Press F1 or Esc to close"),
	)
	return styleHelpOverlay().Render(content)
}

func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(14)
			}
			return styleHelpDesc()
		}).
		Rows(section.rows...)

	header := styleHelpSectionHeader().Render(section.title)
	underline := styleHelpSectionHeader().Render(strings.Repeat("─", len(section.title)))

	// Hidden borders leave an empty first row.
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		strings.TrimPrefix(t.String(), "\n"),
	)
}

func (m *App) helpLayer() Layer {
	if !m.showHelp {
		return nil
	}
	overlay := renderHelpOverlay(m.keys)
	return LayerFunc(func(c *Canvas) {
		c.Center(overlay)
	})
}
