package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mealsearch/internal/config"
	"mealsearch/internal/debug"
	"mealsearch/internal/domain"
	appErrors "mealsearch/internal/errors"
	"mealsearch/internal/suggest"
	"mealsearch/internal/ui/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// listTop is the first screen row of the suggestion list: header, input
	// and status line sit above it.
	listTop = 3

	inputPrompt = "Meal › "
)

// writeClipboard is swapped out by tests.
var writeClipboard = clipboard.WriteAll

// Config configures the UI application.
type Config struct {
	Lookup        suggest.Lookup
	Reporter      suggest.Reporter
	Debounce      time.Duration
	LookupTimeout time.Duration
	MaxVisible    int
	OutputFormat  string
	Theme         string
	Version       string // shown in the header
}

// App is the Bubble Tea model hosting the suggestion controller.
type App struct {
	ctrl *suggest.Controller
	keys KeyMap

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	spinning   bool
	offset     int
	maxVisible int

	committed      *domain.Candidate
	outputFormat   string
	renderMarkdown func(string) string

	showHelp bool
	toast    *toast
	toastSeq int

	width    int
	height   int
	version  string
	quitting bool
}

// NewApp builds the model. A nil Lookup is a configuration error.
func NewApp(cfg Config) (*App, error) {
	if cfg.Lookup == nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "ui: no lookup backend configured", nil)
	}
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = config.DefaultMaxVisible
	}
	if cfg.Theme != "" && !theme.SetTheme(cfg.Theme) {
		debug.Logf("unknown theme %q, keeping %s", cfg.Theme, theme.CurrentName())
	}

	ti := textinput.New()
	ti.Prompt = inputPrompt
	ti.PromptStyle = stylePrompt()
	ti.Placeholder = "type a meal name, e.g. chicken"
	ti.CharLimit = 128
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styleSpinner()

	m := &App{
		ctrl: suggest.NewController(cfg.Lookup, suggest.Options{
			Debounce:      cfg.Debounce,
			LookupTimeout: cfg.LookupTimeout,
			Reporter:      cfg.Reporter,
		}),
		keys:         DefaultKeyMap(),
		input:        ti,
		spinner:      sp,
		viewport:     viewport.New(defaultWidth-2, minDetailHeight),
		help:         help.New(),
		maxVisible:   cfg.MaxVisible,
		outputFormat: cfg.OutputFormat,
		version:      cfg.Version,
	}
	m.layout()
	debug.Event("ui ready", "debounce", m.ctrl.Debounce(), "max_visible", m.maxVisible, "theme", theme.CurrentName())
	return m, nil
}

// Init starts the cursor blinking.
func (m *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes messages to the controller and the widgets.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case suggest.DebouncedMsg:
		return m, m.startSpinner(m.ctrl.Update(msg))

	case suggest.ResultMsg:
		m.ctrl.Update(msg)
		st := m.ctrl.State()
		if st.Applied != msg.Seq {
			return m, nil
		}
		m.offset = 0
		if msg.Err != nil {
			return m, m.showToast(toastError, "Lookup failed", describeFetchError(msg.Query, msg.Err))
		}
		return m, nil

	case suggest.CommittedMsg:
		// syncInput already rewrote the input; a keystroke since then wins.
		if m.ctrl.Phase() != suggest.PhaseCommitted || m.ctrl.Query() != msg.Candidate.Label {
			return m, nil
		}
		m.setCommitted(msg.Candidate)
		debug.Event("meal chosen", "id", msg.Candidate.ID, "label", msg.Candidate.Label)
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Phase() != suggest.PhasePending {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			debug.Logf("save theme %s: %v", msg.name, msg.err)
			return m, m.showToast(toastError, "Theme not saved", msg.err.Error())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m.quit()
		case key.Matches(msg, m.keys.Help), msg.Type == tea.KeyEsc:
			m.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyCommitted()
	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	case key.Matches(msg, m.keys.PageUp):
		_ = m.viewport.PageUp()
		return nil
	case key.Matches(msg, m.keys.PageDown):
		_ = m.viewport.PageDown()
		return nil
	case key.Matches(msg, m.keys.Up):
		return m.navigate(suggest.KeyArrowUp)
	case key.Matches(msg, m.keys.Down):
		return m.navigate(suggest.KeyArrowDown)
	case key.Matches(msg, m.keys.Enter):
		return m.navigate(suggest.KeyEnter)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.clearCommitted()
		return tea.Batch(cmd, m.ctrl.OnTextChange(after))
	}
	return cmd
}

// navigate hands a list key to the controller and keeps the highlight in
// view. A commit rewrites the input without counting as typing.
func (m *App) navigate(k suggest.Key) tea.Cmd {
	handled, cmd := m.ctrl.OnKeyDown(k)
	if !handled {
		return nil
	}
	m.offset = windowStart(m.offset, m.ctrl.Highlight(), m.ctrl.Len(), m.maxVisible)
	if cmd != nil {
		m.syncInput()
	}
	return cmd
}

func (m *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp {
		return nil
	}
	inList := msg.Y >= listTop && msg.Y < listTop+m.maxVisible
	switch {
	case msg.Button == tea.MouseButtonWheelUp && inList:
		return m.navigate(suggest.KeyArrowUp)
	case msg.Button == tea.MouseButtonWheelDown && inList:
		return m.navigate(suggest.KeyArrowDown)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		id, ok := m.candidateAt(msg.Y)
		if !ok {
			return nil
		}
		cmd := m.ctrl.OnCandidateActivate(id)
		if cmd != nil {
			m.syncInput()
		}
		return cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// candidateAt maps a screen row to the id of the candidate drawn there.
func (m *App) candidateAt(y int) (string, bool) {
	row := y - listTop
	if row < 0 || row >= m.maxVisible {
		return "", false
	}
	items := m.ctrl.State().Candidates
	idx := m.offset + row
	if idx >= len(items) {
		return "", false
	}
	return items[idx].ID, true
}

func (m *App) syncInput() {
	m.input.SetValue(m.ctrl.Query())
	m.input.CursorEnd()
	m.offset = 0
}

func (m *App) startSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil || m.ctrl.Phase() != suggest.PhasePending || m.spinning {
		return cmd
	}
	m.spinning = true
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *App) copyCommitted() tea.Cmd {
	if m.committed == nil {
		return m.showToast(toastInfo, "Nothing to copy", "Choose a meal first.")
	}
	label := m.committed.Label
	if err := writeClipboard(label); err != nil {
		return m.showToast(toastError, "Copy failed", err.Error())
	}
	return m.showToast(toastInfo, "Copied", fmt.Sprintf("%q to clipboard.", label))
}

func (m *App) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	m.input.PromptStyle = stylePrompt()
	m.spinner.Style = styleSpinner()
	debug.Event("theme changed", "theme", name)
	return tea.Batch(
		m.showToast(toastInfo, "Theme: "+name, ""),
		saveThemeCmd(name),
	)
}

func saveThemeCmd(name string) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{name: name, err: config.SaveTheme(name)}
	}
}

func (m *App) quit() tea.Cmd {
	m.ctrl.Dispose()
	m.quitting = true
	return tea.Quit
}

// layout sizes the widgets for the current terminal.
func (m *App) layout() {
	w, h := m.frameSize()
	m.input.Width = w - lipgloss.Width(inputPrompt) - 1
	m.help.Width = w

	m.viewport.Width = w - detailChrome
	if m.viewport.Width < minLabelWidth {
		m.viewport.Width = minLabelWidth
	}
	height := h - listTop - m.maxVisible - 1 - detailChrome
	if height < minDetailHeight {
		height = minDetailHeight
	}
	m.viewport.Height = height

	m.renderMarkdown = buildMarkdownRenderer(m.outputFormat, m.viewport.Width-2)
	m.renderDetail()
}

func (m *App) frameSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
