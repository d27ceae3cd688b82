package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matieusz/onlyyes/internal/api"
	"github.com/matieusz/onlyyes/internal/wizard"
)

var suggestYes bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [link or \"Artist - Title\"]",
	Short: "Suggest a song for the rotation",
	Long: `Suggests a song to the station moderators. The input can be a song
link or free text; the backend resolves it to metadata, which you confirm
before submitting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVarP(&suggestYes, "yes", "y", false, "submit without the confirmation prompt")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	client := newClient()

	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	// Non-interactive path: resolve and submit in one go.
	if suggestYes || !wizard.IsTerminal() {
		if input == "" {
			return fmt.Errorf("a song link or name is required in non-interactive mode")
		}
		return suggestDirect(cmd, client, input)
	}

	result, err := wizard.RunSuggest(client, input)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	if !result.Submitted {
		Minimal("Suggestion cancelled")
		return nil
	}
	NormalF("Suggested %s — %s (#%d). Moderators will review it.",
		result.Preview.Artist, result.Preview.Title, result.ID)
	return nil
}

func suggestDirect(cmd *cobra.Command, client *api.Client, input string) error {
	ctx := cmd.Context()

	preview, err := client.PreviewSuggestion(ctx, input)
	if err != nil {
		return fmt.Errorf("resolving suggestion: %w", err)
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
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	NormalF("Suggested %s — %s (#%d)", preview.Artist, preview.Title, result.ID)
	return nil
}
