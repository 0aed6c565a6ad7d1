package suggest

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// DebouncedMsg is delivered when a quiet-period timer fires. Only the message
// carrying the current generation is honoured.
type DebouncedMsg struct {
	Gen   uint64
	Value string
}

// scheduleFunc matches tea.Tick; tests substitute an immediate version.
type scheduleFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// Debouncer publishes a value once it has stopped changing for delay.
type Debouncer struct {
	delay    time.Duration
	schedule scheduleFunc

	gen     uint64
	value   string
	pending bool
	stopped bool
}

// NewDebouncer returns a debouncer with the given quiet period. Non-positive
// delays fall back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, schedule: tea.Tick}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Update records value and restarts the timer. Any earlier timer becomes
// inert. After Stop it returns nil.
func (d *Debouncer) Update(value string) tea.Cmd {
	if d.stopped {
		return nil
	}
	d.gen++
	d.value = value
	d.pending = true
	gen := d.gen
	return d.schedule(d.delay, func(time.Time) tea.Msg {
		return DebouncedMsg{Gen: gen, Value: value}
	})
}

// Settle consumes a timer message. It reports the value to publish and true
// exactly once per uninterrupted quiet period; superseded, cancelled or
// duplicate messages report false.
func (d *Debouncer) Settle(msg DebouncedMsg) (string, bool) {
	if d.stopped || !d.pending || msg.Gen != d.gen {
		return "", false
	}
	d.pending = false
	return d.value, true
}

// Cancel drops the pending timer, if any. The debouncer stays usable.
func (d *Debouncer) Cancel() {
	if d.pending {
		d.gen++
		d.pending = false
	}
}

// Stop cancels the pending timer and disables further emissions.
func (d *Debouncer) Stop() {
	d.Cancel()
	d.stopped = true
}

// Pending reports whether a timer is running.
func (d *Debouncer) Pending() bool {
	return d.pending
}
