package api

import (
	"context"

	"github.com/matieusz/onlyyes/internal/core"
)

type voteRequest struct {
	SongID   string `json:"song_id"`
	VoteType string `json:"vote_type"`
}

// GetVote returns the current user's vote for a song, or nil when the
// user has not voted (or is not signed in).
func (c *Client) GetVote(ctx context.Context, songID string) (*core.VoteType, error) {
	var status VoteStatus
	if err := c.Get(ctx, "/votes/"+songID, &status); err != nil {
		return nil, err
	}
	if status.VoteType == nil {
		return nil, nil
	}
	vt := core.VoteType(*status.VoteType)
	return &vt, nil
}

// SubmitVote records or updates the user's vote for a song.
func (c *Client) SubmitVote(ctx context.Context, songID string, vote core.VoteType) (*VoteResult, error) {
	var result VoteResult
	body := voteRequest{SongID: songID, VoteType: string(vote)}
	if err := c.Post(ctx, "/votes", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteVote removes the user's vote for a song.
func (c *Client) DeleteVote(ctx context.Context, songID string) error {
	return c.Delete(ctx, "/votes/"+songID)
}
