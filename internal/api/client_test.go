package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matieusz/onlyyes/internal/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-session", 2*time.Second)
}

func TestNowPlaying(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/radio/now-playing" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if cookie, err := r.Cookie("session"); err != nil || cookie.Value != "test-session" {
			t.Error("missing session cookie")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Neon Drive","artist":"Stacja X","thumbnail":null,"songId":"42","streamUrl":"/api/radio/stream"}`))
	})

	song, err := c.NowPlaying(context.Background())
	if err != nil {
		t.Fatalf("NowPlaying() error = %v", err)
	}
	if song.Title != "Neon Drive" || song.Artist != "Stacja X" {
		t.Errorf("song = %+v", song)
	}
	if song.SongID != "42" {
		t.Errorf("SongID = %q", song.SongID)
	}
}

func TestRecentSongsLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q, want 10", got)
		}
		_, _ = w.Write([]byte(`[{"title":"A","artist":"B"},{"title":"C","artist":"D"}]`))
	})

	songs, err := c.RecentSongs(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentSongs() error = %v", err)
	}
	if len(songs) != 2 {
		t.Errorf("len = %d, want 2", len(songs))
	}
}

func TestNextSongNull(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	song, err := c.NextSong(context.Background())
	if err != nil {
		t.Fatalf("NextSong() error = %v", err)
	}
	if song != nil {
		t.Errorf("song = %+v, want nil", song)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
	})

	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Detail != "Not authenticated" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if !IsNotAuthenticated(err) {
		t.Error("IsNotAuthenticated() = false")
	}
}

func TestGetVote(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *core.VoteType
	}{
		{name: "no vote", body: `{"vote_type":null}`, want: nil},
		{name: "like", body: `{"vote_type":"LIKE"}`, want: votePtr(core.VoteLike)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			got, err := c.GetVote(context.Background(), "42")
			if err != nil {
				t.Fatalf("GetVote() error = %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("got = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestSubmitVote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/votes" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"success","vote_type":"LIKE","xp_awarded":true}`))
	})

	result, err := c.SubmitVote(context.Background(), "42", core.VoteLike)
	if err != nil {
		t.Fatalf("SubmitVote() error = %v", err)
	}
	if !result.XPAwarded {
		t.Error("XPAwarded = false")
	}
}

func TestUpdatePlayingState(t *testing.T) {
	var gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = string(buf)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if err := c.UpdatePlayingState(context.Background(), "abc", true); err != nil {
		t.Fatalf("UpdatePlayingState() error = %v", err)
	}
	want := `{"listener_id":"abc","is_playing":true}`
	if gotBody != want {
		t.Errorf("body = %q, want %q", gotBody, want)
	}
}

func TestBuildURL(t *testing.T) {
	got := BuildURL("/radio/recent-songs", map[string]string{"limit": "5"})
	if got != "/radio/recent-songs?limit=5" {
		t.Errorf("BuildURL() = %q", got)
	}
	if got := BuildURL("/radio/next-song", nil); got != "/radio/next-song" {
		t.Errorf("BuildURL() = %q", got)
	}
}

func votePtr(v core.VoteType) *core.VoteType { return &v }
