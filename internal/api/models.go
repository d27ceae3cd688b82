package api

// Song is the wire shape of a track as the backend reports it.
type Song struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
	SongID    string `json:"songId"`
	StreamURL string `json:"streamUrl"`
}

// StationInfo holds headline station statistics.
type StationInfo struct {
	ListenersOnline  int `json:"listeners_online"`
	SongsInDatabase  int `json:"songs_in_database"`
	SongsPlayedToday int `json:"songs_played_today"`
}

// StreamURLResponse is the payload of /radio/stream-url.
type StreamURLResponse struct {
	StreamURL string `json:"streamUrl"`
}

// Listener is a connected client session as tracked by the backend.
type Listener struct {
	ListenerID string `json:"listener_id"`
	UserID     int    `json:"user_id,omitempty"`
	Username   string `json:"username,omitempty"`
	IsGuest    bool   `json:"is_guest"`
	IsPlaying  bool   `json:"is_playing"`
}

// ListenersResponse is the payload of /radio/active-listeners.
type ListenersResponse struct {
	Listeners []Listener `json:"listeners"`
}

// Schedule describes a scheduled show slot.
type Schedule struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsNow     bool   `json:"is_now"`
	IsEnabled bool   `json:"is_enabled"`
}

// VoteStatus is the payload of GET /votes/{song_id}.
type VoteStatus struct {
	VoteType *string `json:"vote_type"`
}

// VoteResult is the payload of POST /votes.
type VoteResult struct {
	Status    string `json:"status"`
	VoteType  string `json:"vote_type"`
	XPAwarded bool   `json:"xp_awarded"`
}

// SuggestionPreview is the resolved metadata for a suggestion input.
type SuggestionPreview struct {
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Thumbnail       string `json:"thumbnail"`
	SourceType      string `json:"source_type"`
	DurationSeconds int    `json:"duration_seconds"`
}

// SuggestionRequest is the body of POST /suggestions.
type SuggestionRequest struct {
	Input           string `json:"input"`
	Title           string `json:"title,omitempty"`
	Artist          string `json:"artist,omitempty"`
	SourceType      string `json:"source_type"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// SuggestionResult is the payload of POST /suggestions.
type SuggestionResult struct {
	Status string `json:"status"`
	ID     int    `json:"id"`
}

// Suggestion is a queued song suggestion (admin view).
type Suggestion struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	RawInput   string `json:"raw_input"`
	SourceType string `json:"source_type"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// User is the authenticated user's profile.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	XP        int    `json:"xp"`
	IsAdmin   bool   `json:"is_admin"`
	RankName  string `json:"rank_name"`
}

// UserStats holds per-user counters.
type UserStats struct {
	SuggestionsCount int `json:"suggestions_count"`
	VotesCount       int `json:"votes_count"`
	ReputationScore  int `json:"reputation_score"`
}

// Badge is an earned achievement.
type Badge struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	AwardedAt   string `json:"awarded_at"`
}

// ActivityEntry is one row of the user's activity history
// (votes and suggestions interleaved, newest first).
type ActivityEntry struct {
	ID        int    `json:"id"`
	Type      string `json:"type"` // "suggestion" or "vote"
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Status    string `json:"status,omitempty"`
	VoteType  string `json:"vote_type,omitempty"`
	CreatedAt string `json:"created_at"`
}

// XPEntry is one row of the user's XP award history.
type XPEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	XP          int    `json:"xp"`
	Description string `json:"description"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	CreatedAt   string `json:"created_at"`
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	ID         int    `json:"id"`
	Username   string `json:"username"`
	AvatarURL  string `json:"avatar_url"`
	XP         int    `json:"xp"`
	RankName   string `json:"rank_name"`
	Progress   float64 `json:"progress"`
	NextRank   string `json:"next_rank"`
	NextRankXP int    `json:"next_rank_xp"`
}

// ChartEntry is one row of the weekly charts.
type ChartEntry struct {
	Position     int    `json:"position"`
	PrevPosition *int   `json:"prev_position"`
	SongID       string `json:"song_id"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Thumbnail    string `json:"thumbnail"`
	Likes        int    `json:"likes"`
	Dislikes     int    `json:"dislikes"`
	Score        int    `json:"score"`
}
