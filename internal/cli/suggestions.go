package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matieusz/onlyyes/internal/wizard"
)

var suggestionsStatus string

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Review song suggestions (moderators)",
}

var suggestionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suggestions",
	RunE:  runSuggestionsList,
}

var suggestionsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuggestionVerdict(cmd, args[0], true)
	},
}

var suggestionsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuggestionVerdict(cmd, args[0], false)
	},
}

var suggestionsModerateCmd = &cobra.Command{
	Use:   "moderate",
	Short: "Review pending suggestions one by one",
	RunE:  runSuggestionsModerate,
}

func init() {
	suggestionsListCmd.Flags().StringVarP(&suggestionsStatus, "status", "s", "", "filter by status (pending/approved/rejected)")
	suggestionsCmd.AddCommand(suggestionsListCmd)
	suggestionsCmd.AddCommand(suggestionsApproveCmd)
	suggestionsCmd.AddCommand(suggestionsRejectCmd)
	suggestionsCmd.AddCommand(suggestionsModerateCmd)
	rootCmd.AddCommand(suggestionsCmd)
}

func runSuggestionsList(cmd *cobra.Command, args []string) error {
	suggestions, err := newClient().ListSuggestions(cmd.Context())
	if err != nil {
		return err
	}

	if suggestionsStatus != "" {
		filtered := suggestions[:0]
		for _, s := range suggestions {
			if s.Status == suggestionsStatus {
				filtered = append(filtered, s)
			}
		}
		suggestions = filtered
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(suggestions)
	}

	if len(suggestions) == 0 {
		Minimal("No suggestions")
		return nil
	}

	t := NewTable("ID", "SONG", "STATUS", "SUGGESTED")
	for _, s := range suggestions {
		name := s.Title
		if s.Artist != "" {
			name = fmt.Sprintf("%s — %s", s.Artist, s.Title)
		}
		t.Row(strconv.Itoa(s.ID), TruncateString(name, 50), s.Status, s.CreatedAt)
	}
	t.Flush()
	return nil
}

func runSuggestionVerdict(cmd *cobra.Command, rawID string, approve bool) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid suggestion id %q", rawID)
	}

	client := newClient()
	if approve {
		err = client.ApproveSuggestion(cmd.Context(), id)
	} else {
		err = client.RejectSuggestion(cmd.Context(), id)
	}
	if err != nil {
		return err
	}

	verdict := "approved"
	if !approve {
		verdict = "rejected"
	}
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"status": verdict,
			"id":     id,
		})
	}
	NormalF("Suggestion #%d %s", id, verdict)
	return nil
}

func runSuggestionsModerate(cmd *cobra.Command, args []string) error {
	if !wizard.IsTerminal() {
		return fmt.Errorf("moderation requires a terminal; use 'suggestions approve/reject' instead")
	}

	client := newClient()
	suggestions, err := client.ListSuggestions(cmd.Context())
	if err != nil {
		return err
	}

	decisions, err := wizard.RunModerate(client, suggestions)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(decisions)
	}
	NormalF("Reviewed %d suggestion(s)", len(decisions))
	return nil
}
