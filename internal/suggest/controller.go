package suggest

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mealsearch/internal/domain"
)

// Phase is the coarse state of the suggestion box.
type Phase int

const (
	// PhaseIdle - nothing to show.
	PhaseIdle Phase = iota
	// PhasePending - the latest lookup has not resolved.
	PhasePending
	// PhaseShowing - candidates are listed.
	PhaseShowing
	// PhaseNoMatch - the latest lookup resolved with nothing.
	PhaseNoMatch
	// PhaseCommitted - a candidate was chosen and the list closed.
	PhaseCommitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseShowing:
		return "showing"
	case PhaseNoMatch:
		return "no-match"
	case PhaseCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Key is a keyboard event the controller understands.
type Key int

const (
	KeyOther Key = iota
	KeyArrowDown
	KeyArrowUp
	KeyEnter
)

// CommittedMsg is sent when a candidate is committed by Enter or activation.
type CommittedMsg struct {
	Candidate domain.Candidate
}

// State is a render-ready snapshot of the controller.
type State struct {
	Query      string
	Stable     string
	Candidates []domain.Candidate
	Highlight  int
	Phase      Phase
	// LastError is the failure behind the currently shown (empty) result,
	// if any. It is informational only.
	LastError error
	// Applied is the sequence number of the result currently shown, 0 if
	// none has been applied.
	Applied uint64
}

// Options configures a Controller.
type Options struct {
	Debounce      time.Duration
	LookupTimeout time.Duration
	Reporter      Reporter
}

// Controller turns text and key events into lookups and a highlighted list.
type Controller struct {
	query   string
	stable  string
	phase   Phase
	lastErr error
	applied uint64
	// superseded is set by a commit: the next settled value fetches even if
	// it equals stable.
	superseded bool

	debouncer *Debouncer
	fetcher   *Fetcher
	selection Selection
}

// NewController returns a controller querying lookup.
func NewController(lookup Lookup, opts Options) *Controller {
	return &Controller{
		debouncer: NewDebouncer(opts.Debounce),
		fetcher:   NewFetcher(lookup, opts.LookupTimeout, opts.Reporter),
	}
}

// OnTextChange records new input text. The highlight is cleared at once; the
// lookup waits for the debounce period.
func (c *Controller) OnTextChange(text string) tea.Cmd {
	c.query = text
	c.selection.Reset()
	if c.phase == PhaseCommitted {
		c.phase = PhaseIdle
	}
	return c.debouncer.Update(text)
}

// OnKeyDown handles navigation and commit keys. handled reports whether the
// key was consumed, in which case the host must not apply its default action.
func (c *Controller) OnKeyDown(k Key) (handled bool, cmd tea.Cmd) {
	switch k {
	case KeyArrowDown:
		c.selection.MoveDown()
		return true, nil
	case KeyArrowUp:
		c.selection.MoveUp()
		return true, nil
	case KeyEnter:
		cand, ok := c.selection.Current()
		if !ok {
			return false, nil
		}
		return true, c.commit(cand)
	}
	return false, nil
}

// OnCandidateActivate commits the listed candidate with the given id.
// Unknown ids are ignored.
func (c *Controller) OnCandidateActivate(id string) tea.Cmd {
	cand, ok := c.selection.Find(id)
	if !ok {
		return nil
	}
	return c.commit(cand)
}

// Update applies debounce and lookup messages; other messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DebouncedMsg:
		value, ok := c.debouncer.Settle(msg)
		if !ok {
			return nil
		}
		// An unchanged stable value only refetches to retry a failure.
		if value == c.stable && c.lastErr == nil && !c.superseded {
			return nil
		}
		c.stable = value
		c.superseded = false
		_, cmd := c.fetcher.Fetch(value)
		if cmd == nil {
			c.selection.Replace(nil)
			c.lastErr = nil
			c.phase = PhaseIdle
			return nil
		}
		c.phase = PhasePending
		return cmd

	case ResultMsg:
		if !c.fetcher.Accept(msg) {
			return nil
		}
		c.selection.Replace(msg.Candidates)
		c.lastErr = msg.Err
		c.applied = msg.Seq
		switch {
		case c.fetcher.Outstanding():
			c.phase = PhasePending
		case c.selection.Len() > 0:
			c.phase = PhaseShowing
		default:
			c.phase = PhaseNoMatch
		}
	}
	return nil
}

// commit makes cand the input value and closes the list. Pending timers and
// in-flight lookups are superseded so nothing reopens it.
func (c *Controller) commit(cand domain.Candidate) tea.Cmd {
	c.query = cand.Label
	c.superseded = true
	c.selection.Replace(nil)
	c.debouncer.Cancel()
	c.fetcher.Supersede()
	c.lastErr = nil
	c.phase = PhaseCommitted
	return func() tea.Msg {
		return CommittedMsg{Candidate: cand}
	}
}

// Dispose stops the debouncer. In-flight lookups still complete but their
// results are discarded.
func (c *Controller) Dispose() {
	c.debouncer.Stop()
	c.fetcher.Supersede()
}

// State returns a snapshot for rendering.
func (c *Controller) State() State {
	return State{
		Query:      c.query,
		Stable:     c.stable,
		Candidates: c.selection.Items(),
		Highlight:  c.selection.Index(),
		Phase:      c.phase,
		LastError:  c.lastErr,
		Applied:    c.applied,
	}
}

// Query returns the current input text.
func (c *Controller) Query() string { return c.query }

// Highlight returns the highlight index, NoSelection when none.
func (c *Controller) Highlight() int { return c.selection.Index() }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Len returns the number of listed candidates.
func (c *Controller) Len() int { return c.selection.Len() }

// Debounce returns the configured quiet period.
func (c *Controller) Debounce() time.Duration { return c.debouncer.Delay() }
