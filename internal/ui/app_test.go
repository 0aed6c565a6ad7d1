package ui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mealsearch/internal/config"
	"mealsearch/internal/domain"
	appErrors "mealsearch/internal/errors"
	"mealsearch/internal/lookup"
	"mealsearch/internal/suggest"
	"mealsearch/internal/ui/theme"
)

func TestNewAppRequiresLookup(t *testing.T) {
	_, err := NewApp(Config{})
	if !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTypingShowsSuggestions(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"chick": {chickenCurry}})
	m := newTestApp(t, client)

	typeText(t, m, "chick")

	if got := client.Queries(); !reflect.DeepEqual(got, []string{"chick"}) {
		t.Fatalf("expected a single lookup for the settled text, got %v", got)
	}
	if m.ctrl.Phase() != suggest.PhaseShowing {
		t.Fatalf("expected showing phase, got %s", m.ctrl.Phase())
	}
	assertViewContains(t, m, "Chicken Curry", `1 match for "chick"`, "Chicken · Indian")
}

func TestArrowAndEnterCommit(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"chick": {chickenCurry, chickenHandi}})
	m := newTestApp(t, client)
	typeText(t, m, "chick")

	press(t, m, tea.KeyDown)
	if m.ctrl.Highlight() != 0 {
		t.Fatalf("expected highlight 0 after down, got %d", m.ctrl.Highlight())
	}
	assertViewContains(t, m, rowMarker+"Chicken Curry")

	msgs := press(t, m, tea.KeyEnter)
	if len(msgs) == 0 {
		t.Fatal("expected a committed message")
	}
	if _, ok := msgs[0].(suggest.CommittedMsg); !ok {
		t.Fatalf("expected CommittedMsg, got %T", msgs[0])
	}
	if got := m.input.Value(); got != "Chicken Curry" {
		t.Fatalf("input should hold the committed label, got %q", got)
	}
	if m.ctrl.Len() != 0 || m.ctrl.Highlight() != suggest.NoSelection {
		t.Fatalf("list should be closed after commit, len=%d highlight=%d", m.ctrl.Len(), m.ctrl.Highlight())
	}
	assertViewContains(t, m, "Chosen: Chicken Curry", "## Instructions", "Fry the onions.")
	if got := len(client.Queries()); got != 1 {
		t.Fatalf("commit must not trigger another lookup, saw %d", got)
	}
}

func TestEnterWithoutHighlightKeepsList(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"chick": {chickenCurry}})
	m := newTestApp(t, client)
	typeText(t, m, "chick")

	press(t, m, tea.KeyEnter)
	if m.ctrl.Phase() != suggest.PhaseShowing || m.input.Value() != "chick" {
		t.Fatalf("enter without highlight should be a no-op, phase=%s input=%q", m.ctrl.Phase(), m.input.Value())
	}
}

func TestMouseClickActivatesRow(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"chick": {chickenCurry, chickenHandi}})
	m := newTestApp(t, client)
	typeText(t, m, "chick")

	// A click below the list does nothing.
	_, cmd := m.Update(tea.MouseMsg{X: 4, Y: listTop + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if cmd != nil {
		t.Fatal("click on an empty row should not commit")
	}

	_, cmd = m.Update(tea.MouseMsg{X: 4, Y: listTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	drain(t, m, cmd)
	if m.committed == nil || m.committed.ID != "53" {
		t.Fatalf("expected Chicken Handi committed, got %+v", m.committed)
	}
	if m.input.Value() != "Chicken Handi" {
		t.Fatalf("input should show the clicked label, got %q", m.input.Value())
	}
}

func TestMouseIgnoredUnderHelp(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"chick": {chickenCurry, chickenHandi}})
	m := newTestApp(t, client)
	typeText(t, m, "chick")
	press(t, m, tea.KeyF1)
	if !m.showHelp {
		t.Fatal("expected help overlay")
	}

	_, cmd := m.Update(tea.MouseMsg{X: 4, Y: listTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	drain(t, m, cmd)
	if m.committed != nil || m.ctrl.Phase() == suggest.PhaseCommitted {
		t.Fatalf("click on the help overlay must not commit, got %+v", m.committed)
	}
	if m.input.Value() != "chick" {
		t.Fatalf("input should be untouched, got %q", m.input.Value())
	}
}

func TestLateCommitDoesNotOverwriteTyping(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"chick": {chickenCurry}})
	m := newTestApp(t, client)
	typeText(t, m, "chick")
	press(t, m, tea.KeyDown)

	// Hold the commit message back until after the next keystroke.
	_, commit := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(t, m, "s")
	drain(t, m, commit)

	if got := m.input.Value(); got != "Chicken Currys" || got != m.ctrl.Query() {
		t.Fatalf("input %q should keep the later keystroke and match the controller %q", got, m.ctrl.Query())
	}
	if m.committed != nil {
		t.Fatalf("stale commit should not reopen the detail pane, got %+v", m.committed)
	}
}

func TestListWindowFollowsHighlight(t *testing.T) {
	var many []domain.Candidate
	for _, label := range []string{"Soup 1", "Soup 2", "Soup 3", "Soup 4", "Soup 5", "Soup 6"} {
		many = append(many, domain.Candidate{ID: label, Label: label})
	}
	m := newTestApp(t, meals(map[string][]domain.Candidate{"soup": many}))
	typeText(t, m, "soup")

	for i := 0; i < 6; i++ {
		press(t, m, tea.KeyDown)
	}
	if m.ctrl.Highlight() != 5 {
		t.Fatalf("expected highlight clamped at 5, got %d", m.ctrl.Highlight())
	}
	if m.offset != 2 {
		t.Fatalf("expected window offset 2 with 4 visible rows, got %d", m.offset)
	}
	view := m.View()
	if strings.Contains(view, "Soup 1") || !strings.Contains(view, rowMarker+"Soup 6") {
		t.Fatalf("window should show the last four rows:\n%s", view)
	}

	// Row mapping accounts for the scroll offset.
	if id, ok := m.candidateAt(listTop); !ok || id != "Soup 3" {
		t.Fatalf("candidateAt(listTop) = %q, %v; want Soup 3", id, ok)
	}
}

func TestClearingInputSkipsLookup(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"ab": {{ID: "1", Label: "Abalone"}}})
	m := newTestApp(t, client)
	typeText(t, m, "ab")

	_, c1 := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	_, c2 := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	drain(t, m, c1, c2)

	if got := client.Queries(); !reflect.DeepEqual(got, []string{"ab"}) {
		t.Fatalf("clearing the input should not look anything up, got %v", got)
	}
	if m.ctrl.Len() != 0 || m.ctrl.Phase() != suggest.PhaseIdle {
		t.Fatalf("expected empty idle list, len=%d phase=%s", m.ctrl.Len(), m.ctrl.Phase())
	}
	assertViewContains(t, m, "Start typing to search meals")
}

func TestFetchErrorShowsToast(t *testing.T) {
	client := &lookup.MockClient{SearchFn: func(context.Context, string) ([]domain.Candidate, error) {
		return nil, appErrors.New(appErrors.CodeBadStatus, "lookup returned 503 Service Unavailable", nil)
	}}
	m := newTestApp(t, client)
	typeText(t, m, "chick")

	if m.ctrl.Phase() != suggest.PhaseNoMatch {
		t.Fatalf("failure should degrade to no matches, got %s", m.ctrl.Phase())
	}
	if m.toast == nil || m.toast.kind != toastError {
		t.Fatalf("expected an error toast, got %+v", m.toast)
	}
	assertViewContains(t, m, "Lookup failed", "service error", "No matches (lookup failed)")

	// A stale expiry leaves the toast alone; the matching one clears it.
	m.Update(toastExpiredMsg{id: m.toast.id - 1})
	if m.toast == nil {
		t.Fatal("stale expiry should not clear the toast")
	}
	m.Update(toastExpiredMsg{id: m.toast.id})
	if m.toast != nil {
		t.Fatal("expected toast to be cleared")
	}
}

func TestHelpOverlayToggle(t *testing.T) {
	m := newTestApp(t, meals(nil))

	press(t, m, tea.KeyF1)
	if !m.showHelp {
		t.Fatal("F1 should open help")
	}
	assertViewContains(t, m, "MEALSEARCH HELP", "Choose highlighted meal", "Next theme")

	// Typing is swallowed while help is open.
	typeText(t, m, "x")
	if m.input.Value() != "" {
		t.Fatalf("help overlay should capture keys, input=%q", m.input.Value())
	}

	press(t, m, tea.KeyEsc)
	if m.showHelp || m.quitting {
		t.Fatalf("esc should close help without quitting, help=%v quitting=%v", m.showHelp, m.quitting)
	}
}

func TestQuitDisposesController(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"ab": {{ID: "1", Label: "Abalone"}}})
	m := newTestApp(t, client)

	_, pending := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("esc should quit")
	}
	if !m.quitting || m.View() != "" {
		t.Fatal("view should be empty once quitting")
	}

	drain(t, m, pending)
	if got := client.Queries(); len(got) != 0 {
		t.Fatalf("timer pending at quit must not fire a lookup, got %v", got)
	}
}

func TestCopyCommittedLabel(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"chick": {chickenCurry}})
	m := newTestApp(t, client)
	var copied []string
	writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	press(t, m, tea.KeyCtrlY)
	if len(copied) != 0 || m.toast == nil || m.toast.title != "Nothing to copy" {
		t.Fatalf("copy before commit should only warn, copied=%v toast=%+v", copied, m.toast)
	}

	typeText(t, m, "chick")
	press(t, m, tea.KeyDown)
	press(t, m, tea.KeyEnter)
	press(t, m, tea.KeyCtrlY)
	if !reflect.DeepEqual(copied, []string{"Chicken Curry"}) {
		t.Fatalf("expected committed label copied, got %v", copied)
	}
	assertViewContains(t, m, "Copied")

	writeClipboard = func(string) error { return errors.New("no clipboard utility") }
	press(t, m, tea.KeyCtrlY)
	if m.toast == nil || m.toast.kind != toastError {
		t.Fatalf("expected error toast on clipboard failure, got %+v", m.toast)
	}
}

func TestTypingAfterCommitClearsDetail(t *testing.T) {
	client := meals(map[string][]domain.Candidate{"chick": {chickenCurry}})
	m := newTestApp(t, client)
	typeText(t, m, "chick")
	press(t, m, tea.KeyDown)
	press(t, m, tea.KeyEnter)
	if m.committed == nil {
		t.Fatal("expected committed meal")
	}

	typeText(t, m, "s")
	if m.committed != nil {
		t.Fatal("editing the query should close the detail pane")
	}
	if got := client.Queries(); !reflect.DeepEqual(got, []string{"chick", "Chicken Currys"}) {
		t.Fatalf("expected a fresh lookup after editing, got %v", got)
	}
}

func TestCycleThemePersists(t *testing.T) {
	m := newTestApp(t, meals(nil))
	before := theme.CurrentName()

	press(t, m, tea.KeyCtrlT)
	after := theme.CurrentName()
	if after == before {
		t.Fatalf("theme should change, still %q", after)
	}
	if got := config.GetString(config.KeyTheme); got != after {
		t.Fatalf("expected theme %q saved to config, got %q", after, got)
	}
	assertViewContains(t, m, "Theme: "+after, after)
}
