package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"mealsearch/internal/domain"
	appErrors "mealsearch/internal/errors"
)

func TestWindowStart(t *testing.T) {
	tests := []struct {
		name                              string
		offset, highlight, total, visible int
		want                              int
	}{
		{"fits", 3, 2, 4, 8, 0},
		{"no highlight keeps offset", 2, -1, 10, 4, 2},
		{"highlight below window", 0, 5, 10, 4, 2},
		{"highlight above window", 4, 1, 10, 4, 1},
		{"offset past end clamps", 9, -1, 10, 4, 6},
		{"zero visible", 3, 3, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := windowStart(tt.offset, tt.highlight, tt.total, tt.visible); got != tt.want {
				t.Fatalf("windowStart(%d, %d, %d, %d) = %d, want %d",
					tt.offset, tt.highlight, tt.total, tt.visible, got, tt.want)
			}
		})
	}
}

func TestRenderRowsPadsAndTruncates(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	items := []domain.Candidate{
		{ID: "1", Label: "Beef and Mustard Pie with an unreasonably long name", Category: "Beef", Area: "British"},
		{ID: "2", Label: "Bread omelette", Category: "Breakfast", Area: "Indian"},
	}
	lines := renderRows(items, 1, 0, 4, 30)
	if len(lines) != 4 {
		t.Fatalf("expected one line per visible row, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w > 30 {
			t.Errorf("row %d is %d cells wide: %q", i, w, line)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[0]), ellipsis) {
		t.Errorf("long label should be truncated with an ellipsis: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], rowMarker+"Bread omelette") {
		t.Errorf("highlighted row should carry the marker: %q", lines[1])
	}
	if lines[2] != "" || lines[3] != "" {
		t.Errorf("rows past the list should be blank: %q %q", lines[2], lines[3])
	}
}

func TestCanvasComposeOverlays(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	base := strings.Repeat(strings.Repeat(".", 20)+"\n", 4) + strings.Repeat(".", 20)
	out := compose(base, 20, 5,
		nil,
		LayerFunc(func(c *Canvas) { c.Center("XX") }),
		LayerFunc(func(c *Canvas) { c.BottomRight("TT", 0) }),
	)
	lines := strings.Split(out, "\n")
	if len(lines) < 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if got := lines[2]; got != strings.Repeat(".", 9)+"XX"+strings.Repeat(".", 9) {
		t.Errorf("centered overlay misplaced: %q", got)
	}
	if got := lines[4]; !strings.HasSuffix(got, "TT") || len(got) != 20 {
		t.Errorf("bottom-right overlay misplaced: %q", got)
	}
	if got := compose(base, 20, 5, nil); got != base {
		t.Error("compose without layers should return the base frame untouched")
	}
}

func TestBuildMarkdownRenderer(t *testing.T) {
	doc := domain.Candidate{ID: "1", Label: "Shakshuka", Instructions: strings.Repeat("stir ", 30)}.Markdown()

	plain := buildMarkdownRenderer("plain", 20)(doc)
	if !strings.Contains(plain, "# Shakshuka") {
		t.Errorf("plain output should keep markdown source:\n%s", plain)
	}
	for _, line := range strings.Split(plain, "\n") {
		if len(line) > 20 {
			t.Errorf("plain output should wrap at 20, got %q", line)
		}
	}

	rich := buildMarkdownRenderer("rich", 40)(doc)
	if !strings.Contains(ansi.Strip(rich), "Shakshuka") || strings.Contains(ansi.Strip(rich), "# Shakshuka") {
		t.Errorf("rich output should render the heading:\n%s", rich)
	}

	unknown := buildMarkdownRenderer("no-such-style", 20)(doc)
	if unknown != plain {
		t.Error("unknown styles should fall back to wrapping")
	}
}

func TestDescribeFetchError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{appErrors.New(appErrors.CodeTransport, "dial tcp: connection refused", nil), "service unreachable"},
		{appErrors.New(appErrors.CodeMalformedPayload, "decode meals", nil), "unreadable response"},
		{appErrors.New(appErrors.CodeDatabase, "open meals.db", nil), "database error"},
		{errors.New("first line\nsecond line"), "lookup failed (first line)"},
	}
	for _, tt := range tests {
		got := describeFetchError("soup", tt.err)
		if !strings.Contains(got, tt.want) || !strings.HasPrefix(got, `"soup": `) {
			t.Errorf("describeFetchError(%v) = %q, want it to mention %q", tt.err, got, tt.want)
		}
	}

	if got := describeFetchError("soup", appErrors.New(appErrors.CodeBadStatus, "503", nil)); !strings.Contains(got, "retry") {
		t.Errorf("retryable failures should suggest retrying, got %q", got)
	}
	if got := describeFetchError("soup", appErrors.New(appErrors.CodeMalformedPayload, "bad json", nil)); strings.Contains(got, "retry") {
		t.Errorf("payload failures should not suggest retrying, got %q", got)
	}
}

func TestHelpSectionsUseBindings(t *testing.T) {
	keys := DefaultKeyMap()
	sections := getHelpSections(keys)
	if len(sections) != 3 {
		t.Fatalf("expected 3 help sections, got %d", len(sections))
	}
	found := false
	for _, row := range sections[0].rows {
		if row[0] == keys.Enter.Help().Key && row[1] == keys.Enter.Help().Desc {
			found = true
		}
	}
	if !found {
		t.Error("enter binding missing from suggestion help")
	}
	if len(keys.ShortHelp()) == 0 || len(keys.FullHelp()) != 2 {
		t.Error("key map should provide short and full help")
	}
}
