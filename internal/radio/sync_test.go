package radio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matieusz/onlyyes/internal/api"
	"github.com/matieusz/onlyyes/internal/core"
	apperrors "github.com/matieusz/onlyyes/internal/errors"
	"github.com/matieusz/onlyyes/internal/events"
)

func newTestSync(t *testing.T, opts ...SyncOption) *Synchronizer {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "state.json"))
	s := NewSynchronizer(nil, store, opts...)
	t.Cleanup(s.Close)
	return s
}

// recorder counts subscriber notifications and keeps the last snapshot.
type recorder struct {
	mu    sync.Mutex
	count int
	last  core.Snapshot
}

func (r *recorder) record(snap core.Snapshot) {
	r.mu.Lock()
	r.count++
	r.last = snap
	r.mu.Unlock()
}

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *recorder) snapshot() core.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func nowPlayingEvent(title, artist, songID string) events.Envelope {
	data, _ := json.Marshal(api.Song{Title: title, Artist: artist, SongID: songID, StreamURL: "/api/radio/stream"})
	return events.Envelope{Type: events.TypeNowPlaying, Data: data}
}

// recentSongsEvent builds the envelope the backend broadcasts: the song
// list sits under a "songs" key, not at the top level.
func recentSongsEvent(songs ...api.Song) events.Envelope {
	data, _ := json.Marshal(struct {
		Songs []api.Song `json:"songs"`
	}{Songs: songs})
	return events.Envelope{Type: events.TypeRecentSongs, Data: data}
}

func TestApplyEventNowPlayingDeduplicates(t *testing.T) {
	s := newTestSync(t, WithGlitchWindow(time.Hour))
	rec := &recorder{}
	s.Subscribe(rec.record)

	s.ApplyEvent(nowPlayingEvent("Neon Drive", "Stacja X", "42"))
	if got := rec.calls(); got != 1 {
		t.Fatalf("calls after first event = %d, want 1", got)
	}

	// Identical resend: no notification, no glitch restart.
	s.ApplyEvent(nowPlayingEvent("Neon Drive", "Stacja X", "42"))
	if got := rec.calls(); got != 1 {
		t.Errorf("calls after duplicate = %d, want 1", got)
	}

	// Same song re-entered under a new catalog id is a real change.
	s.ApplyEvent(nowPlayingEvent("Neon Drive", "Stacja X", "99"))
	if got := rec.calls(); got != 2 {
		t.Errorf("calls after new songId = %d, want 2", got)
	}
}

func TestTrackChangeArmsAndClearsGlitch(t *testing.T) {
	s := newTestSync(t, WithGlitchWindow(30*time.Millisecond))

	s.ApplyEvent(nowPlayingEvent("A", "B", "1"))
	if !s.Snapshot().ShouldGlitch {
		t.Fatal("ShouldGlitch = false right after track change")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.Snapshot().ShouldGlitch && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.Snapshot().ShouldGlitch {
		t.Error("ShouldGlitch still true after the glitch window")
	}
}

func TestApplyEventRecentSongsDeduplicates(t *testing.T) {
	s := newTestSync(t)
	rec := &recorder{}
	s.Subscribe(rec.record)

	s.ApplyEvent(recentSongsEvent(api.Song{Title: "A", Artist: "B"}, api.Song{Title: "C", Artist: "D"}))
	if got := len(s.Snapshot().Recent); got != 2 {
		t.Fatalf("len(Recent) = %d, want 2", got)
	}
	if got := rec.calls(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}

	// Resend with the same newest entry is treated as unchanged, even when
	// the tail differs.
	s.ApplyEvent(recentSongsEvent(api.Song{Title: "A", Artist: "B"}))
	if got := rec.calls(); got != 1 {
		t.Errorf("calls after resend = %d, want 1", got)
	}
	if got := len(s.Snapshot().Recent); got != 2 {
		t.Errorf("len(Recent) after resend = %d, want 2", got)
	}
}

func TestApplyEventRecentSongsWireShape(t *testing.T) {
	s := newTestSync(t)

	// Literal broadcast payload, as the backend sends it.
	raw := json.RawMessage(`{"songs":[{"title":"A","artist":"B"},{"title":"C","artist":"D"}]}`)
	s.ApplyEvent(events.Envelope{Type: events.TypeRecentSongs, Data: raw})

	recent := s.Snapshot().Recent
	if len(recent) != 2 {
		t.Fatalf("len(Recent) = %d, want 2", len(recent))
	}
	if recent[0].Title != "A" || recent[1].Artist != "D" {
		t.Errorf("Recent = %+v", recent)
	}
}

func TestApplyEventNextSong(t *testing.T) {
	s := newTestSync(t)
	rec := &recorder{}
	s.Subscribe(rec.record)

	next, _ := json.Marshal(api.Song{Title: "Up Next", Artist: "Ktoś"})
	s.ApplyEvent(events.Envelope{Type: events.TypeNextSong, Data: next})
	if snap := s.Snapshot(); snap.Next == nil || snap.Next.Title != "Up Next" {
		t.Fatalf("Next = %+v", snap.Next)
	}

	// Same upcoming track resent: ignored.
	s.ApplyEvent(events.Envelope{Type: events.TypeNextSong, Data: next})
	if got := rec.calls(); got != 1 {
		t.Errorf("calls after duplicate = %d, want 1", got)
	}

	// Queue drained.
	s.ApplyEvent(events.Envelope{Type: events.TypeNextSong, Data: json.RawMessage(`null`)})
	if snap := s.Snapshot(); snap.Next != nil {
		t.Errorf("Next = %+v, want nil", snap.Next)
	}
}

func TestApplyEventConnectedRecordsListener(t *testing.T) {
	s := newTestSync(t)

	s.ApplyEvent(events.Envelope{Type: events.TypeConnected, ListenerID: "lst-7"})
	snap := s.Snapshot()
	if !snap.Connected {
		t.Error("Connected = false")
	}
	if snap.ListenerID != "lst-7" {
		t.Errorf("ListenerID = %q", snap.ListenerID)
	}
}

func TestApplyEventUnknownTypeIgnored(t *testing.T) {
	s := newTestSync(t)
	rec := &recorder{}
	s.Subscribe(rec.record)

	s.ApplyEvent(events.Envelope{Type: events.Type("mystery"), Data: json.RawMessage(`{}`)})
	if got := rec.calls(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestApplyEventMalformedPayloadDiscarded(t *testing.T) {
	s := newTestSync(t)
	s.ApplyEvent(nowPlayingEvent("Keep", "Me", "1"))

	s.ApplyEvent(events.Envelope{Type: events.TypeNowPlaying, Data: json.RawMessage(`"not an object"`)})
	if got := s.Snapshot().Current.Title; got != "Keep" {
		t.Errorf("Current.Title = %q after malformed payload", got)
	}
}

func TestSetVolumeClampsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewSynchronizer(nil, NewStore(path))
	defer s.Close()

	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.5, want: 0.5},
		{in: -3, want: 0},
		{in: 1.8, want: 1},
	}
	for _, tt := range tests {
		if got := s.SetVolume(tt.in); got != tt.want {
			t.Errorf("SetVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got := s.Snapshot().Volume; got != tt.want {
			t.Errorf("Snapshot().Volume = %v, want %v", got, tt.want)
		}
	}

	// A fresh synchronizer reads the last saved value back.
	again := NewSynchronizer(nil, NewStore(path))
	defer again.Close()
	if got := again.Snapshot().Volume; got != 1 {
		t.Errorf("restored volume = %v, want 1", got)
	}
}

func TestTogglePlayWithoutStream(t *testing.T) {
	s := newTestSync(t)

	if _, err := s.TogglePlay(context.Background()); !errors.Is(err, apperrors.ErrNoStream) {
		t.Errorf("TogglePlay() error = %v, want ErrNoStream", err)
	}
	if s.Snapshot().IsPlaying {
		t.Error("IsPlaying = true after failed toggle")
	}
}

func TestTogglePlayReportsState(t *testing.T) {
	bodies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/radio/update-playing-state" {
			data, _ := io.ReadAll(r.Body)
			bodies <- string(data)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, "", 2*time.Second)
	s := NewSynchronizer(client, NewStore(filepath.Join(t.TempDir(), "state.json")))
	t.Cleanup(s.Close)

	s.ApplyEvent(events.Envelope{Type: events.TypeConnected, ListenerID: "lst-1"})
	s.ApplyEvent(nowPlayingEvent("A", "B", "1"))

	playing, err := s.TogglePlay(context.Background())
	if err != nil {
		t.Fatalf("TogglePlay() error = %v", err)
	}
	if !playing {
		t.Error("playing = false, want true")
	}

	select {
	case body := <-bodies:
		want := `{"listener_id":"lst-1","is_playing":true}`
		if body != want {
			t.Errorf("report body = %q, want %q", body, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("playing-state report never sent")
	}
}

func TestCloseFreezesState(t *testing.T) {
	s := newTestSync(t)
	s.ApplyEvent(nowPlayingEvent("Frozen", "Solid", "1"))
	s.Close()

	s.ApplyEvent(nowPlayingEvent("After", "Close", "2"))
	s.SetConnected(true)
	s.SetVolume(0.1)

	snap := s.Snapshot()
	if snap.Current.Title != "Frozen" {
		t.Errorf("Current.Title = %q after Close", snap.Current.Title)
	}
	if snap.Connected {
		t.Error("Connected mutated after Close")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := newTestSync(t)
	rec := &recorder{}
	off := s.Subscribe(rec.record)

	s.ApplyEvent(nowPlayingEvent("One", "Two", "1"))
	off()
	off() // safe to call twice
	s.ApplyEvent(nowPlayingEvent("Three", "Four", "2"))

	if got := rec.calls(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestInitializeSurvivesPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/radio/now-playing":
			_, _ = w.Write([]byte(`{"title":"Live","artist":"Now","songId":"5","streamUrl":"/api/radio/stream"}`))
		case "/api/radio/recent-songs":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"boom"}`))
		case "/api/radio/next-song":
			_, _ = w.Write([]byte(`{"title":"Soon","artist":"Later"}`))
		}
	}))
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, "", 2*time.Second)
	s := NewSynchronizer(client, NewStore(filepath.Join(t.TempDir(), "state.json")))
	t.Cleanup(s.Close)

	s.Initialize(context.Background())

	snap := s.Snapshot()
	if snap.Current.Title != "Live" {
		t.Errorf("Current.Title = %q, want Live", snap.Current.Title)
	}
	if snap.Next == nil || snap.Next.Title != "Soon" {
		t.Errorf("Next = %+v", snap.Next)
	}
	if len(snap.Recent) != 0 {
		t.Errorf("Recent = %+v, want empty", snap.Recent)
	}
}

func TestNormalizeStreamURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty falls back to proxy", in: "", want: ProxyStreamPath},
		{name: "relative kept", in: "/api/radio/stream", want: "/api/radio/stream"},
		{name: "other relative kept", in: "/somewhere/else.mp3", want: "/somewhere/else.mp3"},
		{name: "absolute cdn rewritten", in: "https://cdn.example.com/live.mp3", want: ProxyStreamPath},
		{name: "absolute proxy kept", in: "https://onlyyes.matieusz.pl/api/radio/stream", want: "https://onlyyes.matieusz.pl/api/radio/stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeStreamURL(tt.in); got != tt.want {
				t.Errorf("NormalizeStreamURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
