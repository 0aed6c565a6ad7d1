package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appErrors "mealsearch/internal/errors"
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastError
)

type toast struct {
	id    int
	kind  toastKind
	title string
	body  string
}

const toastMaxWidth = 60

// showToast replaces the current toast and returns the command that expires
// it.
func (m *App) showToast(kind toastKind, title, body string) tea.Cmd {
	m.toastSeq++
	m.toast = &toast{id: m.toastSeq, kind: kind, title: title, body: body}
	return scheduleToastExpiry(m.toastSeq)
}

func (m *App) toastLayer() Layer {
	if m.toast == nil {
		return nil
	}
	t := *m.toast
	return LayerFunc(func(c *Canvas) {
		c.BottomRight(renderToast(t), 1)
	})
}

func renderToast(t toast) string {
	body := t.body
	if lipgloss.Width(body) > toastMaxWidth {
		body = truncate(body, toastMaxWidth)
	}
	if t.kind == toastError {
		return styleErrorToast().Render(styleToastTitle().Render("⚠ "+t.title) + "\n" + body)
	}
	content := t.title
	if body != "" {
		content += "\n" + body
	}
	return styleSuccessToast().Render(content)
}

// describeFetchError turns a lookup failure into one short line.
func describeFetchError(query string, err error) string {
	var reason string
	switch appErrors.CodeOf(err) {
	case appErrors.CodeTransport:
		reason = "service unreachable"
	case appErrors.CodeBadStatus:
		reason = "service error"
	case appErrors.CodeMalformedPayload:
		reason = "unreadable response"
	case appErrors.CodeDatabase:
		reason = "database error"
	default:
		reason = "lookup failed"
	}
	msg := err.Error()
	if idx := strings.Index(msg, "\n"); idx >= 0 {
		msg = msg[:idx]
	}
	line := fmt.Sprintf("%q: %s (%s)", query, reason, msg)
	if appErrors.Retryable(err) {
		line += " · pause typing to retry"
	}
	return line
}
