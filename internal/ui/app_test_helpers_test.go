package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"mealsearch/internal/config"
	"mealsearch/internal/domain"
	"mealsearch/internal/lookup"
	"mealsearch/internal/ui/theme"
)

var (
	chickenCurry = domain.Candidate{
		ID:           "52",
		Label:        "Chicken Curry",
		Category:     "Chicken",
		Area:         "Indian",
		Instructions: "Fry the onions.\r\nAdd the chicken.",
		Tags:         []string{"Curry", "Spicy"},
	}
	chickenHandi = domain.Candidate{ID: "53", Label: "Chicken Handi", Category: "Chicken", Area: "Indian"}
)

func meals(table map[string][]domain.Candidate) *lookup.MockClient {
	return &lookup.MockClient{SearchFn: lookup.StaticResults(table)}
}

// newTestApp builds an App with deterministic rendering, a temp config, a
// near-zero debounce and a fake clipboard.
func newTestApp(t *testing.T, client *lookup.MockClient) *App {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(config.ResetForTesting(t))
	t.Cleanup(func() { theme.SetTheme("tokyonight") })

	origDuration := toastDuration
	toastDuration = time.Millisecond
	origClipboard := writeClipboard
	writeClipboard = func(string) error { return nil }
	t.Cleanup(func() {
		toastDuration = origDuration
		writeClipboard = origClipboard
	})

	m, err := NewApp(Config{
		Lookup:       client,
		Debounce:     time.Millisecond,
		MaxVisible:   4,
		OutputFormat: "plain",
		Theme:        "tokyonight",
		Version:      "v-test",
	})
	if err != nil {
		t.Fatalf("NewApp returned error: %v", err)
	}
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

// drain runs cmd and every command it leads to, feeding each message back
// into the app. Spinner, cursor and toast expiry ticks are dropped so the
// loop settles and toasts stay visible.
func drain(t *testing.T, m *App, cmds ...tea.Cmd) []tea.Msg {
	t.Helper()
	var seen []tea.Msg
	queue := append([]tea.Cmd(nil), cmds...)
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command loop did not settle")
		}
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case spinner.TickMsg, cursor.BlinkMsg, toastExpiredMsg:
			seen = append(seen, msg)
			continue
		}
		seen = append(seen, msg)
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
	return seen
}

// typeText sends one key per rune and drains the resulting commands once
// all keys are in, as a fast typist would.
func typeText(t *testing.T, m *App, text string) []tea.Msg {
	t.Helper()
	var cmds []tea.Cmd
	for _, r := range text {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		cmds = append(cmds, cmd)
	}
	return drain(t, m, cmds...)
}

func press(t *testing.T, m *App, k tea.KeyType) []tea.Msg {
	t.Helper()
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return drain(t, m, cmd)
}

func assertViewContains(t *testing.T, m *App, want ...string) {
	t.Helper()
	view := m.View()
	for _, w := range want {
		if !strings.Contains(view, w) {
			t.Errorf("view missing %q:\n%s", w, view)
		}
	}
}
