package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matieusz/onlyyes/internal/core"
	"github.com/matieusz/onlyyes/internal/tui/styles"
)

// NowPlaying displays the current track, the hero panel of the UI.
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component.
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel.
func (n *NowPlaying) Render(snap core.Snapshot, vote *core.VoteType, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if !snap.HasTrack() {
		content = styles.Muted.Render("Waiting for the station...")
	} else {
		content = n.renderTrack(snap, vote, width-4)
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

func (n *NowPlaying) renderTrack(snap core.Snapshot, vote *core.VoteType, width int) string {
	track := snap.Current

	trackTitle := track.Title
	artist := track.Artist
	if snap.ShouldGlitch {
		trackTitle = Scramble(trackTitle)
		artist = Scramble(artist)
	}

	icon := styles.StatusIcon(snap.IsPlaying)
	titleStyle := styles.Title.Width(width - 4)
	if snap.ShouldGlitch {
		titleStyle = styles.Glitch.Width(width - 4)
	}

	volumeWidth := width - 14
	if volumeWidth < 10 {
		volumeWidth = 10
	}
	volume := fmt.Sprintf("🔊 %s %3d%%",
		styles.VolumeBar(snap.Volume, volumeWidth),
		int(snap.Volume*100))

	status := styles.ConnIcon(snap.Connected)
	if vote != nil {
		verdict := "👍 liked"
		if *vote == core.VoteDislike {
			verdict = "👎 disliked"
		}
		status += styles.Dim.Render("  ·  ") + styles.Label.Render(verdict)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+titleStyle.Render(trackTitle),
		"  "+styles.Subtitle.Render(artist),
		"",
		volume,
		"",
		status,
	)
}
