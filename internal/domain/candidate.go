// Package domain holds the records exchanged between the lookup backends,
// the suggestion controller and the UI.
package domain

import (
	"fmt"
	"strings"
)

// Candidate is one suggestion as returned by a lookup backend. ID and Label
// are always present; the remaining fields are whatever the backend knows
// and are only used for the detail pane.
type Candidate struct {
	ID           string
	Label        string
	Category     string
	Area         string
	Instructions string
	Tags         []string
	Thumbnail    string
}

// Subtitle joins category and area for secondary display, e.g. "Chicken · Indian".
func (c Candidate) Subtitle() string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(c.Category); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(c.Area); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " · ")
}

// Markdown renders the candidate as a markdown document for the detail pane.
func (c Candidate) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Label)
	if sub := c.Subtitle(); sub != "" {
		fmt.Fprintf(&b, "_%s_\n\n", sub)
	}
	if len(c.Tags) > 0 {
		tags := make([]string, 0, len(c.Tags))
		for _, t := range c.Tags {
			tags = append(tags, "`"+t+"`")
		}
		fmt.Fprintf(&b, "%s\n\n", strings.Join(tags, " "))
	}
	if instr := strings.TrimSpace(c.Instructions); instr != "" {
		b.WriteString("## Instructions\n\n")
		b.WriteString(strings.ReplaceAll(instr, "\r\n", "\n"))
		b.WriteString("\n")
	}
	if c.Thumbnail != "" {
		fmt.Fprintf(&b, "\n[Photo](%s)\n", c.Thumbnail)
	}
	return b.String()
}

// SplitTags parses a comma separated tag list, dropping blanks.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
