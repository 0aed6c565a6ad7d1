package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes lipgloss-rendered blocks into a cell buffer so overlays can
// be drawn on top of the main frame without breaking its ANSI sequences.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

// NewCanvas returns a blank canvas; non-positive sizes become 1.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes content with its top-left corner at x,y, cropping
// anything outside the canvas.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.drawBlockAt(x, y, splitLines(content))
}

// Center draws content in the middle of the canvas.
func (c *Canvas) Center(content string) {
	lines := splitLines(content)
	if len(lines) == 0 || c == nil {
		return
	}
	x := (c.width - maxLineWidth(lines)) / 2
	y := (c.height - len(lines)) / 2
	c.drawBlockAt(x, y, lines)
}

// BottomRight anchors content to the bottom-right corner, keeping padding
// cells free on both edges.
func (c *Canvas) BottomRight(content string, padding int) {
	lines := splitLines(content)
	if len(lines) == 0 || c == nil {
		return
	}
	if padding < 0 {
		padding = 0
	}
	x := c.width - maxLineWidth(lines) - padding
	y := c.height - len(lines) - padding
	c.drawBlockAt(x, y, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the frame as newline-delimited text and releases the screen.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

// Layer is an overlay that draws itself onto the frame canvas.
type Layer interface {
	Draw(c *Canvas)
}

// LayerFunc adapts a function to Layer.
type LayerFunc func(c *Canvas)

// Draw implements Layer.
func (f LayerFunc) Draw(c *Canvas) {
	f(c)
}

// compose draws layers over base. Without layers base is returned untouched.
func compose(base string, width, height int, layers ...Layer) string {
	active := layers[:0]
	for _, l := range layers {
		if l != nil {
			active = append(active, l)
		}
	}
	if len(active) == 0 {
		return base
	}
	canvas := NewCanvas(width, height)
	canvas.DrawStringAt(0, 0, base)
	for _, l := range active {
		l.Draw(canvas)
	}
	return canvas.Render()
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func maxLineWidth(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > max {
			max = w
		}
	}
	return max
}
