package api

import (
	"context"
	"strconv"
)

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// MyStats returns the authenticated user's counters.
func (c *Client) MyStats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.Get(ctx, "/users/me/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// MyBadges returns the authenticated user's earned badges.
func (c *Client) MyBadges(ctx context.Context) ([]Badge, error) {
	var badges []Badge
	if err := c.Get(ctx, "/users/me/badges", &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// MyHistory returns the authenticated user's recent activity
// (votes and suggestions interleaved, newest first).
func (c *Client) MyHistory(ctx context.Context) ([]ActivityEntry, error) {
	var entries []ActivityEntry
	if err := c.Get(ctx, "/users/me/history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// MyXPHistory returns the authenticated user's XP award history.
func (c *Client) MyXPHistory(ctx context.Context) ([]XPEntry, error) {
	var entries []XPEntry
	if err := c.Get(ctx, "/users/me/xp-history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Leaderboard returns the XP leaderboard.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	path := "/leaderboard"
	if limit > 0 {
		path = BuildURL(path, map[string]string{"limit": strconv.Itoa(limit)})
	}
	var entries []LeaderboardEntry
	if err := c.Get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Charts returns the top-voted songs for a period ("week" or "month").
func (c *Client) Charts(ctx context.Context, period string, limit int) ([]ChartEntry, error) {
	return c.charts(ctx, "/charts", period, limit)
}

// WorstCharts returns the most-disliked songs for a period.
func (c *Client) WorstCharts(ctx context.Context, period string, limit int) ([]ChartEntry, error) {
	return c.charts(ctx, "/charts/worst", period, limit)
}

func (c *Client) charts(ctx context.Context, path, period string, limit int) ([]ChartEntry, error) {
	params := map[string]string{}
	if period != "" {
		params["period"] = period
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	var entries []ChartEntry
	if err := c.Get(ctx, BuildURL(path, params), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
