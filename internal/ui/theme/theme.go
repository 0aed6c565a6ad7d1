// Package theme provides the semantic color palettes used by the mealsearch UI.
package theme

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of semantic colors. Every color adapts to light and
// dark terminals.
type Theme struct {
	Primary   lipgloss.AdaptiveColor // header bar, focused borders
	Secondary lipgloss.AdaptiveColor // subtitles, help keys
	Accent    lipgloss.AdaptiveColor // labels, titles

	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor

	Background          lipgloss.AdaptiveColor
	BackgroundSecondary lipgloss.AdaptiveColor // highlighted row

	Border    lipgloss.AdaptiveColor
	BorderDim lipgloss.AdaptiveColor
}

type registry struct {
	mu          sync.RWMutex
	themes      map[string]Theme
	currentName string
}

var global = &registry{themes: make(map[string]Theme)}

// Register adds a theme. The first registered theme becomes current.
func Register(name string, t Theme) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.themes[name] = t
	if global.currentName == "" {
		global.currentName = name
	}
}

// SetTheme switches to a registered theme by name and reports whether it
// exists.
func SetTheme(name string) bool {
	global.mu.Lock()
	defer global.mu.Unlock()
	if _, ok := global.themes[name]; !ok {
		return false
	}
	global.currentName = name
	return true
}

// Current returns the active theme.
func Current() Theme {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.themes[global.currentName]
}

// CurrentName returns the name of the active theme.
func CurrentName() string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.currentName
}

// Available returns the registered theme names in sorted order.
func Available() []string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.sortedNames()
}

// CycleTheme switches to the next theme in sorted order, wrapping around, and
// returns its name.
func CycleTheme() string {
	global.mu.Lock()
	defer global.mu.Unlock()

	names := global.sortedNames()
	if len(names) == 0 {
		return ""
	}
	next := 0
	for i, name := range names {
		if name == global.currentName {
			next = (i + 1) % len(names)
			break
		}
	}
	global.currentName = names[next]
	return global.currentName
}

func (r *registry) sortedNames() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
