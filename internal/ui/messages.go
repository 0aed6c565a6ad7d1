package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastDuration is how long a toast stays up. Tests shorten it.
var toastDuration = 3 * time.Second

// toastExpiredMsg clears the toast it was scheduled for; a newer toast
// carries a different id and survives.
type toastExpiredMsg struct {
	id int
}

func scheduleToastExpiry(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// themeSavedMsg reports the outcome of persisting a theme choice.
type themeSavedMsg struct {
	name string
	err  error
}
