package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TruncateLines wraps text to the given display width and cuts it to at
// most maxLines lines, appending an ellipsis when anything was dropped.
// Width is measured in terminal cells, so double-width runes wrap instead
// of overflowing the layout.
func TruncateLines(text string, width, maxLines int) string {
	if width < 1 || maxLines < 1 {
		return ""
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// Render with width to handle both explicit newlines and wrapping.
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= maxLines {
		return wrapped
	}

	// Make room for the ellipsis so the last line stays within width.
	last := strings.TrimRight(lines[maxLines-1], " ")
	if ansi.StringWidth(last) > width-1 {
		last = ansi.Cut(last, 0, width-1)
	}
	lines[maxLines-1] = last + "…"
	return strings.Join(lines[:maxLines], "\n")
}

// FormatTags renders a tag list like "#go #web".
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, " ")
}

// RelativeTime renders a timestamp like "5m ago", falling back to a date
// for anything older than a week.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 02 2006")
	}
}
