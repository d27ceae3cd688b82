package api

import (
	"context"
	"strconv"
)

// NowPlaying returns the current track snapshot.
func (c *Client) NowPlaying(ctx context.Context) (*Song, error) {
	var song Song
	if err := c.Get(ctx, "/radio/now-playing", &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// RecentSongs returns the most recently played tracks, newest first.
func (c *Client) RecentSongs(ctx context.Context, limit int) ([]Song, error) {
	path := BuildURL("/radio/recent-songs", map[string]string{
		"limit": strconv.Itoa(limit),
	})
	var songs []Song
	if err := c.Get(ctx, path, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// NextSong returns the upcoming track, or nil when the queue is empty.
func (c *Client) NextSong(ctx context.Context) (*Song, error) {
	var song *Song
	if err := c.Get(ctx, "/radio/next-song", &song); err != nil {
		return nil, err
	}
	return song, nil
}

// StationInfo returns headline station statistics.
func (c *Client) StationInfo(ctx context.Context) (*StationInfo, error) {
	var info StationInfo
	if err := c.Get(ctx, "/radio/info", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// StreamURL returns the direct (unproxied) stream URL, for use by
// external players.
func (c *Client) StreamURL(ctx context.Context) (string, error) {
	var resp StreamURLResponse
	if err := c.Get(ctx, "/radio/stream-url", &resp); err != nil {
		return "", err
	}
	return resp.StreamURL, nil
}

// ActiveListeners returns the currently connected listener sessions.
func (c *Client) ActiveListeners(ctx context.Context) ([]Listener, error) {
	var resp ListenersResponse
	if err := c.Get(ctx, "/radio/active-listeners", &resp); err != nil {
		return nil, err
	}
	return resp.Listeners, nil
}

// Schedules returns the enabled show schedule for the current week.
func (c *Client) Schedules(ctx context.Context, limit int) ([]Schedule, error) {
	path := "/radio/schedules"
	if limit > 0 {
		path = BuildURL(path, map[string]string{"limit": strconv.Itoa(limit)})
	}
	var schedules []Schedule
	if err := c.Get(ctx, path, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

type playingStateRequest struct {
	ListenerID string `json:"listener_id"`
	IsPlaying  bool   `json:"is_playing"`
}

// UpdatePlayingState reports this listener's play/pause state so the
// station can track who is actually listening.
func (c *Client) UpdatePlayingState(ctx context.Context, listenerID string, isPlaying bool) error {
	body := playingStateRequest{ListenerID: listenerID, IsPlaying: isPlaying}
	return c.Post(ctx, "/radio/update-playing-state", body, nil)
}
