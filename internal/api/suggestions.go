package api

import (
	"context"
	"fmt"
)

type suggestionPreviewRequest struct {
	Input string `json:"input"`
}

// PreviewSuggestion resolves metadata for a suggestion input (song URL or
// free-text query) without submitting it.
func (c *Client) PreviewSuggestion(ctx context.Context, input string) (*SuggestionPreview, error) {
	var preview SuggestionPreview
	body := suggestionPreviewRequest{Input: input}
	if err := c.Post(ctx, "/suggestions/preview", body, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

// CreateSuggestion submits a song suggestion for moderation.
func (c *Client) CreateSuggestion(ctx context.Context, req SuggestionRequest) (*SuggestionResult, error) {
	var result SuggestionResult
	if err := c.Post(ctx, "/suggestions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListSuggestions returns all suggestions, newest first. Moderators only.
func (c *Client) ListSuggestions(ctx context.Context) ([]Suggestion, error) {
	var suggestions []Suggestion
	if err := c.Get(ctx, "/suggestions", &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// ApproveSuggestion accepts a pending suggestion. Moderators only.
func (c *Client) ApproveSuggestion(ctx context.Context, id int) error {
	return c.Post(ctx, fmt.Sprintf("/suggestions/%d/approve", id), nil, nil)
}

// RejectSuggestion declines a pending suggestion. Moderators only.
func (c *Client) RejectSuggestion(ctx context.Context, id int) error {
	return c.Post(ctx, fmt.Sprintf("/suggestions/%d/reject", id), nil, nil)
}
