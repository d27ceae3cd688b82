package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matieusz/onlyyes/internal/core"
	"github.com/matieusz/onlyyes/internal/tui/styles"
)

// History displays recently played tracks, newest first.
type History struct{}

// NewHistory creates a new History component.
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel.
func (h *History) Render(entries []core.Track, width, height int, focused bool) string {
	title := styles.PanelTitle("Recently Played", focused)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No history yet")
	} else {
		content = h.renderEntries(entries, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (h *History) renderEntries(entries []core.Track, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	for i, track := range entries {
		if i >= maxLines {
			break
		}
		pos := styles.Dim.Render(fmt.Sprintf("%2d.", i+1))
		line := fmt.Sprintf("%s %s", pos, truncate(track.Display(), width-5))
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// truncate shortens a string to max runes, appending an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
