package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"mealsearch/internal/ui/theme"
)

// Styles are rebuilt from the current theme on every call so a theme switch
// takes effect on the next frame.

func baseStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text)
}

func styleAppHeader() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1)
}

func styleHeaderInfo() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(t.BackgroundSecondary).
		Background(t.Primary)
}

func stylePrompt() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Primary).Bold(true)
}

func styleRow() lipgloss.Style {
	return baseStyle()
}

func styleRowHighlighted() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Background(t.BackgroundSecondary).
		Foreground(t.Accent).
		Bold(true)
}

func styleRowSubtitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted).Italic(true)
}

func styleDivider() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().BorderDim)
}

func styleSpinner() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary)
}

func styleDetailPane() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Border)
}

func styleErrorToast() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error).
		Foreground(t.Text).
		Padding(0, 1)
}

func styleSuccessToast() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Success).
		Foreground(t.Text).
		Padding(0, 1)
}

func styleToastTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Error).Bold(true)
}

func styleHelpOverlay() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Primary).
		Padding(1, 2)
}

func styleHelpTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent).Bold(true)
}

func styleHelpSectionHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Primary).Bold(true)
}

func styleHelpKey() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary).Bold(true)
}

func styleHelpDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text)
}

func styleHelpFooter() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted).Italic(true)
}

// buildMarkdownRenderer returns a renderer for the detail pane. format is the
// output.format setting: "plain" only wraps, anything else names a glamour
// style ("rich" meaning dark). Unknown styles fall back to wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
