package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	profileBadges  bool
	profileHistory bool
	profileXP      bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your station profile",
	Long:  `Shows your rank, XP, vote and suggestion counters, badges and activity.`,
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().BoolVar(&profileBadges, "badges", false, "include earned badges")
	profileCmd.Flags().BoolVar(&profileHistory, "history", false, "include recent activity")
	profileCmd.Flags().BoolVar(&profileXP, "xp", false, "include XP award history")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()

	user, err := client.Me(ctx)
	if err != nil {
		return err
	}

	stats, statsErr := client.MyStats(ctx)

	if JSONOutput() {
		out := map[string]interface{}{"user": user}
		if statsErr == nil {
			out["stats"] = stats
		}
		if profileBadges {
			if badges, err := client.MyBadges(ctx); err == nil {
				out["badges"] = badges
			}
		}
		if profileHistory {
			if history, err := client.MyHistory(ctx); err == nil {
				out["history"] = history
			}
		}
		if profileXP {
			if xp, err := client.MyXPHistory(ctx); err == nil {
				out["xp_history"] = xp
			}
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	role := ""
	if user.IsAdmin {
		role = " · moderator"
	}
	NormalF("%s — %s (%d XP)%s", user.Username, user.RankName, user.XP, role)
	if statsErr == nil {
		NormalF("  %d votes · %d suggestions · reputation %d",
			stats.VotesCount, stats.SuggestionsCount, stats.ReputationScore)
	}

	if profileBadges {
		badges, err := client.MyBadges(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		if len(badges) == 0 {
			Minimal("No badges yet")
		}
		for _, b := range badges {
			NormalF("%s %s — %s", b.Icon, b.Name, b.Description)
		}
	}

	if profileHistory {
		entries, err := client.MyHistory(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		t := NewTable("WHEN", "TYPE", "SONG", "DETAIL")
		for _, e := range entries {
			detail := e.Status
			if e.Type == "vote" {
				detail = e.VoteType
			}
			name := e.Title
			if e.Artist != "" {
				name = fmt.Sprintf("%s — %s", e.Artist, e.Title)
			}
			t.Row(e.CreatedAt, e.Type, TruncateString(name, 40), detail)
		}
		t.Flush()
	}

	if profileXP {
		entries, err := client.MyXPHistory(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		t := NewTable("WHEN", "XP", "REASON")
		for _, e := range entries {
			t.Row(e.CreatedAt, fmt.Sprintf("+%d", e.XP), e.Description)
		}
		t.Flush()
	}

	return nil
}
