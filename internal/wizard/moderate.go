package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/matieusz/onlyyes/internal/api"
)

// Decision is a moderation verdict for one suggestion.
type Decision struct {
	ID       int
	Approved bool
}

// RunModerate shows the pending suggestions one at a time and collects
// approve/reject/skip decisions. Returns the decisions actually applied.
func RunModerate(client *api.Client, suggestions []api.Suggestion) ([]Decision, error) {
	theme := huh.ThemeCatppuccin()
	var applied []Decision

	for _, s := range suggestions {
		if s.Status != "pending" {
			continue
		}

		label := s.Title
		if s.Artist != "" {
			label = fmt.Sprintf("%s — %s", s.Artist, s.Title)
		}

		var verdict string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(label).
					Description("Suggested input: "+s.RawInput).
					Options(
						huh.NewOption("Approve", "approve"),
						huh.NewOption("Reject", "reject"),
						huh.NewOption("Skip", "skip"),
						huh.NewOption("Done", "done"),
					).
					Value(&verdict),
			),
		).WithTheme(theme)

		if err := form.Run(); err != nil {
			return applied, fmt.Errorf("moderation cancelled: %w", err)
		}

		switch verdict {
		case "approve", "reject":
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			var err error
			if verdict == "approve" {
				err = client.ApproveSuggestion(ctx, s.ID)
			} else {
				err = client.RejectSuggestion(ctx, s.ID)
			}
			cancel()
			if err != nil {
				return applied, err
			}
			applied = append(applied, Decision{ID: s.ID, Approved: verdict == "approve"})
		case "done":
			return applied, nil
		}
	}

	return applied, nil
}
