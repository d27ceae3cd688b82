package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matieusz/onlyyes/internal/api"
	"github.com/matieusz/onlyyes/internal/tui/styles"
)

// Listeners displays who is tuned in right now.
type Listeners struct{}

// NewListeners creates a new Listeners component.
func NewListeners() *Listeners {
	return &Listeners{}
}

// Render renders the listeners panel.
func (l *Listeners) Render(listeners []api.Listener, width, height int, focused bool) string {
	title := styles.PanelTitle(fmt.Sprintf("Listeners (%d)", len(listeners)), focused)

	var content string
	if len(listeners) == 0 {
		content = styles.Muted.Render("Nobody tuned in yet")
	} else {
		content = l.renderListeners(listeners, width-4, height-4)
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

func (l *Listeners) renderListeners(listeners []api.Listener, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	for i, lst := range listeners {
		if i >= maxLines {
			break
		}

		name := truncate(lst.Username, width-3)
		if lst.IsGuest || name == "" {
			name = styles.Dim.Render("guest")
		}

		icon := styles.Dim.Render("🎧")
		if lst.IsPlaying {
			icon = styles.Playing.Render("🎧")
		}

		lines = append(lines, fmt.Sprintf("%s %s", icon, name))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
