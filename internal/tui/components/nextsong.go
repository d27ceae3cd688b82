package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matieusz/onlyyes/internal/core"
	"github.com/matieusz/onlyyes/internal/tui/styles"
)

// NextSong displays the upcoming track.
type NextSong struct{}

// NewNextSong creates a new NextSong component.
func NewNextSong() *NextSong {
	return &NextSong{}
}

// Render renders the next song panel.
func (n *NextSong) Render(next *core.Track, width, height int, focused bool) string {
	title := styles.PanelTitle("Up Next", focused)

	var content string
	if next == nil {
		content = styles.Muted.Render("Nothing queued")
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left,
			styles.Title.Render(next.Title),
			styles.Subtitle.Render(next.Artist),
		)
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
