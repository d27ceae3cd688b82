package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matieusz/onlyyes/internal/api"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the station is playing",
	Long:  `Shows the current track, the upcoming one and headline station stats.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()

	song, err := client.NowPlaying(ctx)
	if err != nil {
		return fmt.Errorf("fetching now playing: %w", err)
	}

	// Secondary info is best effort: a dead endpoint should not hide the
	// current track.
	next, nextErr := client.NextSong(ctx)
	info, infoErr := client.StationInfo(ctx)

	if JSONOutput() {
		out := map[string]interface{}{
			"now_playing": song,
		}
		if nextErr == nil {
			out["next_song"] = next
		}
		if infoErr == nil {
			out["station"] = info
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	NormalF("▶ %s — %s", song.Artist, song.Title)
	if nextErr == nil && next != nil {
		NormalF("  up next: %s — %s", next.Artist, next.Title)
	}
	if infoErr == nil {
		NormalF("  %d listening · %d songs in rotation · %d played today",
			info.ListenersOnline, info.SongsInDatabase, info.SongsPlayedToday)
	}
	if Verbose() {
		printStatusErrors(nextErr, infoErr)
	}
	return nil
}

func printStatusErrors(errs ...error) {
	for _, err := range errs {
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
}

// songLine formats a song for list output.
func songLine(song api.Song) string {
	if song.Artist == "" {
		return song.Title
	}
	return fmt.Sprintf("%s — %s", song.Artist, song.Title)
}
