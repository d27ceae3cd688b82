package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played songs",
	RunE:  runHistory,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the upcoming song",
	RunE:  runNext,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of songs (default from config)")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(nextCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit := historyLimit
	if limit <= 0 {
		limit = cfg.Radio.HistoryLimit
	}

	songs, err := newClient().RecentSongs(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(songs)
	}

	if len(songs) == 0 {
		Minimal("No history yet")
		return nil
	}
	for i, song := range songs {
		NormalF("%2d. %s", i+1, songLine(song))
	}
	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	song, err := newClient().NextSong(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching next song: %w", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(song)
	}

	if song == nil {
		Minimal("Nothing queued")
		return nil
	}
	Minimal(songLine(*song))
	return nil
}
