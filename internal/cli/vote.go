package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matieusz/onlyyes/internal/core"
)

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Vote on the current song",
	Long:  `Like or dislike songs. Votes feed the weekly charts and earn XP.`,
}

var voteLikeCmd = &cobra.Command{
	Use:   "like [song-id]",
	Short: "Like a song (default: the one playing now)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVote(cmd, args, core.VoteLike)
	},
}

var voteDislikeCmd = &cobra.Command{
	Use:   "dislike [song-id]",
	Short: "Dislike a song (default: the one playing now)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVote(cmd, args, core.VoteDislike)
	},
}

var voteStatusCmd = &cobra.Command{
	Use:   "status [song-id]",
	Short: "Show your vote on a song",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVoteStatus,
}

var voteRemoveCmd = &cobra.Command{
	Use:   "remove [song-id]",
	Short: "Withdraw your vote on a song",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVoteRemove,
}

func init() {
	voteCmd.AddCommand(voteLikeCmd)
	voteCmd.AddCommand(voteDislikeCmd)
	voteCmd.AddCommand(voteStatusCmd)
	voteCmd.AddCommand(voteRemoveCmd)
	rootCmd.AddCommand(voteCmd)
}

// resolveSongID returns the explicit argument or the current song's id.
func resolveSongID(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	song, err := newClient().NowPlaying(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching current song: %w", err)
	}
	if song.SongID == "" {
		return "", fmt.Errorf("the current song has no id to vote on")
	}
	return song.SongID, nil
}

func runVote(cmd *cobra.Command, args []string, voteType core.VoteType) error {
	ctx := cmd.Context()

	songID, err := resolveSongID(ctx, args)
	if err != nil {
		return err
	}

	result, err := newClient().SubmitVote(ctx, songID, voteType)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	icon := "👍"
	if voteType == core.VoteDislike {
		icon = "👎"
	}
	line := fmt.Sprintf("%s Voted on song %s", icon, songID)
	if result.XPAwarded {
		line += " (+XP)"
	}
	Minimal(line)
	return nil
}

func runVoteStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	songID, err := resolveSongID(ctx, args)
	if err != nil {
		return err
	}

	vote, err := newClient().GetVote(ctx, songID)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"song_id":   songID,
			"vote_type": vote,
		})
	}

	if vote == nil {
		Minimal("No vote yet")
	} else if *vote == core.VoteLike {
		Minimal("👍 Liked")
	} else {
		Minimal("👎 Disliked")
	}
	return nil
}

func runVoteRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	songID, err := resolveSongID(ctx, args)
	if err != nil {
		return err
	}

	if err := newClient().DeleteVote(ctx, songID); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status":  "removed",
			"song_id": songID,
		})
	}
	Minimal("Vote removed")
	return nil
}
