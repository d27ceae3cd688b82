package styles

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Colors follow the Catppuccin palette. SetTheme swaps the flavor; the
// defaults are Mocha (dark).
var (
	Primary   = lipgloss.Color(catppuccin.Mocha.Mauve().Hex)
	Secondary = lipgloss.Color(catppuccin.Mocha.Green().Hex)
	Accent    = lipgloss.Color(catppuccin.Mocha.Peach().Hex)

	Success = lipgloss.Color(catppuccin.Mocha.Green().Hex)
	Warning = lipgloss.Color(catppuccin.Mocha.Yellow().Hex)
	Error   = lipgloss.Color(catppuccin.Mocha.Red().Hex)
	Info    = lipgloss.Color(catppuccin.Mocha.Blue().Hex)

	Border    = lipgloss.Color(catppuccin.Mocha.Surface1().Hex)
	Text      = lipgloss.Color(catppuccin.Mocha.Text().Hex)
	TextMuted = lipgloss.Color(catppuccin.Mocha.Subtext0().Hex)
	TextDim   = lipgloss.Color(catppuccin.Mocha.Overlay0().Hex)
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Success)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)

	Glitch = lipgloss.NewStyle().
		Bold(true).
		Foreground(Error)
)

// Border styles
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)
)

// SetTheme switches the palette flavor. Unknown names keep the current
// flavor.
func SetTheme(name string) {
	var flavor catppuccin.Flavour
	switch name {
	case "latte":
		flavor = catppuccin.Latte
	case "mocha", "auto":
		flavor = catppuccin.Mocha
	default:
		return
	}
	apply(flavor)
}

func apply(f catppuccin.Flavour) {
	Primary = lipgloss.Color(f.Mauve().Hex)
	Secondary = lipgloss.Color(f.Green().Hex)
	Accent = lipgloss.Color(f.Peach().Hex)
	Success = lipgloss.Color(f.Green().Hex)
	Warning = lipgloss.Color(f.Yellow().Hex)
	Error = lipgloss.Color(f.Red().Hex)
	Info = lipgloss.Color(f.Blue().Hex)
	Border = lipgloss.Color(f.Surface1().Hex)
	Text = lipgloss.Color(f.Text().Hex)
	TextMuted = lipgloss.Color(f.Subtext0().Hex)
	TextDim = lipgloss.Color(f.Overlay0().Hex)

	Title = Title.Foreground(Text)
	Subtitle = Subtitle.Foreground(TextMuted)
	Label = Label.Foreground(TextDim)
	Highlight = Highlight.Foreground(Primary)
	Muted = Muted.Foreground(TextMuted)
	Dim = Dim.Foreground(TextDim)
	Playing = Playing.Foreground(Success)
	Paused = Paused.Foreground(Warning)
	Glitch = Glitch.Foreground(Error)
	BorderStyle = BorderStyle.BorderForeground(Border)
	FocusedBorder = FocusedBorder.BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus.
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title.
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// VolumeBar renders the volume fraction as a bar.
func VolumeBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(Repeat("━", filled)) +
		emptyStyle.Render(Repeat("─", width-filled))
}

// StatusIcon returns an icon for playback status.
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// ConnIcon returns the live-updates indicator.
func ConnIcon(connected bool) string {
	if connected {
		return Playing.Render("● live")
	}
	return Paused.Render("○ reconnecting")
}

// Repeat repeats a string n times.
func Repeat(s string, n int) string {
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
