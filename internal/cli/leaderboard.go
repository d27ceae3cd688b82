package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	leaderboardLimit int

	chartsWorst  bool
	chartsPeriod string
	chartsLimit  int
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the XP leaderboard",
	RunE:  runLeaderboard,
}

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Show the community song charts",
	Long:  `Shows the most-liked songs for a period, built from listener votes.`,
	RunE:  runCharts,
}

func init() {
	leaderboardCmd.Flags().IntVarP(&leaderboardLimit, "limit", "n", 10, "number of entries")
	chartsCmd.Flags().BoolVar(&chartsWorst, "worst", false, "most-disliked songs instead")
	chartsCmd.Flags().StringVarP(&chartsPeriod, "period", "p", "week", "period (week/month)")
	chartsCmd.Flags().IntVarP(&chartsLimit, "limit", "n", 10, "number of entries")
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(chartsCmd)
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	entries, err := newClient().Leaderboard(cmd.Context(), leaderboardLimit)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	t := NewTable("#", "LISTENER", "RANK", "XP")
	for _, e := range entries {
		t.Row(strconv.Itoa(e.Rank), e.Username, e.RankName, strconv.Itoa(e.XP))
	}
	t.Flush()
	return nil
}

func runCharts(cmd *cobra.Command, args []string) error {
	client := newClient()

	fetch := client.Charts
	if chartsWorst {
		fetch = client.WorstCharts
	}
	entries, err := fetch(cmd.Context(), chartsPeriod, chartsLimit)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	t := NewTable("#", "Δ", "SONG", "👍", "👎")
	for _, e := range entries {
		t.Row(
			strconv.Itoa(e.Position),
			chartTrend(e.Position, e.PrevPosition),
			TruncateString(fmt.Sprintf("%s — %s", e.Artist, e.Title), 50),
			strconv.Itoa(e.Likes),
			strconv.Itoa(e.Dislikes),
		)
	}
	t.Flush()
	return nil
}

// chartTrend renders the position change against the previous period.
func chartTrend(position int, prev *int) string {
	if prev == nil {
		return "new"
	}
	switch {
	case *prev > position:
		return fmt.Sprintf("↑%d", *prev-position)
	case *prev < position:
		return fmt.Sprintf("↓%d", position-*prev)
	default:
		return "="
	}
}
