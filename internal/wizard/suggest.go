// Package wizard holds the interactive prompts used when a command needs
// more input than its arguments provided.
package wizard

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/matieusz/onlyyes/internal/api"
)

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SuggestResult is the outcome of the suggestion wizard.
type SuggestResult struct {
	Submitted bool
	ID        int
	Preview   *api.SuggestionPreview
}

// RunSuggest walks the user through suggesting a song: resolve the input
// to metadata, show what was found, and submit on confirmation. The input
// may be empty, in which case the wizard asks for it.
func RunSuggest(client *api.Client, input string) (*SuggestResult, error) {
	theme := huh.ThemeCatppuccin()

	if input == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Suggest a song").
					Description("Paste a song link or type \"Artist - Title\"").
					Placeholder("https://... or Artist - Title").
					Value(&input).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("enter a link or a song name")
						}
						return nil
					}),
			),
		).WithTheme(theme)

		if err := form.Run(); err != nil {
			return nil, fmt.Errorf("suggestion cancelled: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	preview, err := client.PreviewSuggestion(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("resolving suggestion: %w", err)
	}

	label := preview.Title
	if preview.Artist != "" {
		label = fmt.Sprintf("%s — %s", preview.Artist, preview.Title)
	}
	description := fmt.Sprintf("Source: %s", preview.SourceType)
	if preview.DurationSeconds > 0 {
		description += fmt.Sprintf(" · %d:%02d", preview.DurationSeconds/60, preview.DurationSeconds%60)
	}

	var confirmed bool
	confirm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Suggest \"" + label + "\"?").
				Description(description).
				Affirmative("Suggest it").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(theme)

	if err := confirm.Run(); err != nil {
		return nil, fmt.Errorf("suggestion cancelled: %w", err)
	}
	if !confirmed {
		return &SuggestResult{Preview: preview}, nil
	}

	result, err := client.CreateSuggestion(ctx, api.SuggestionRequest{
		Input:           input,
		Title:           preview.Title,
		Artist:          preview.Artist,
		SourceType:      preview.SourceType,
		ThumbnailURL:    preview.Thumbnail,
		DurationSeconds: preview.DurationSeconds,
	})
	if err != nil {
		return nil, err
	}

	return &SuggestResult{
		Submitted: true,
		ID:        result.ID,
		Preview:   preview,
	}, nil
}
