package events

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// sseServer streams the given lines and then blocks until the client goes
// away.
func sseServer(t *testing.T, lines []string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n\n", line)
		}
		flusher.Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func collectEnvelopes(t *testing.T, lines []string, want int) []Envelope {
	t.Helper()
	srv := sseServer(t, lines)

	var mu sync.Mutex
	var got []Envelope
	done := make(chan struct{})

	s := New(srv.URL, func(env Envelope) {
		mu.Lock()
		got = append(got, env)
		if len(got) == want {
			close(done)
		}
		mu.Unlock()
	})
	s.Connect()
	defer s.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d envelopes, got %d", want, len(got))
	}

	mu.Lock()
	defer mu.Unlock()
	return got
}

func TestStreamDispatchesEnvelopes(t *testing.T) {
	lines := []string{
		`data: {"type":"connected","listener_id":"abc-123"}`,
		`data: {"type":"now_playing","data":{"title":"Neon Drive","artist":"Stacja X"}}`,
		`data: {"type":"next_song","data":{"title":"B-Side","artist":"Inny"}}`,
	}

	got := collectEnvelopes(t, lines, 3)

	if got[0].Type != TypeConnected || got[0].ListenerID != "abc-123" {
		t.Errorf("first envelope = %+v", got[0])
	}
	if got[1].Type != TypeNowPlaying {
		t.Errorf("second envelope type = %q", got[1].Type)
	}
	if got[2].Type != TypeNextSong {
		t.Errorf("third envelope type = %q", got[2].Type)
	}
}

func TestStreamSkipsMalformedAndNonDataLines(t *testing.T) {
	lines := []string{
		`: keepalive comment`,
		`data: {not json`,
		`event: something`,
		`data: {"type":"now_playing","data":{"title":"Ok","artist":"Ok"}}`,
	}

	got := collectEnvelopes(t, lines, 1)
	if got[0].Type != TypeNowPlaying {
		t.Errorf("envelope type = %q", got[0].Type)
	}
}

func TestStreamRecordsListenerID(t *testing.T) {
	lines := []string{`data: {"type":"connected","listener_id":"xyz"}`}

	srv := sseServer(t, lines)
	done := make(chan struct{})
	s := New(srv.URL, func(env Envelope) {
		if env.Type == TypeConnected {
			close(done)
		}
	})
	s.Connect()
	defer s.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handshake")
	}

	if got := s.ListenerID(); got != "xyz" {
		t.Errorf("ListenerID() = %q, want %q", got, "xyz")
	}
	if !s.Connected() {
		t.Error("Connected() = false after handshake")
	}
}

func TestStreamUnknownTypeIsForwardedNotFatal(t *testing.T) {
	lines := []string{
		`data: {"type":"brand_new_thing","data":{}}`,
		`data: {"type":"now_playing","data":{"title":"Still works","artist":"X"}}`,
	}

	got := collectEnvelopes(t, lines, 2)
	if got[0].Type != Type("brand_new_thing") {
		t.Errorf("first type = %q", got[0].Type)
	}
	if got[1].Type != TypeNowPlaying {
		t.Errorf("second type = %q", got[1].Type)
	}
}

func TestStreamReconnectsAfterDelay(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		// Refuse to stream: immediate error on the client side.
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	s := New(srv.URL, nil, WithReconnectDelay(30*time.Millisecond))
	s.Connect()
	defer s.Close()

	deadline := time.Now().Add(2 * time.Second)
	for attempts.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if attempts.Load() < 2 {
		t.Fatalf("attempts = %d, want at least 2", attempts.Load())
	}
	if s.Connected() {
		t.Error("Connected() = true while server is failing")
	}
}

func TestStreamSchedulesOnlyOneReconnectTimer(t *testing.T) {
	s := New("http://127.0.0.1:0/events", nil, WithReconnectDelay(time.Hour))

	s.onError(fmt.Errorf("boom"))
	first := s.reconnect
	if first == nil {
		t.Fatal("no reconnect timer scheduled")
	}

	// A second error before the delay elapses must not replace or add a
	// timer.
	s.onError(fmt.Errorf("boom again"))
	if s.reconnect != first {
		t.Error("second error replaced the pending reconnect timer")
	}
	if s.Connected() {
		t.Error("Connected() = true after transport error")
	}

	s.Close()
	if s.reconnect != nil {
		t.Error("Close did not cancel the pending reconnect timer")
	}
}

func TestStreamConnectDefersToPendingReconnect(t *testing.T) {
	s := New("http://127.0.0.1:0/events", nil, WithReconnectDelay(time.Hour))
	defer s.Close()

	s.onError(fmt.Errorf("boom"))
	if s.reconnect == nil {
		t.Fatal("no reconnect timer scheduled")
	}

	// The pending timer already owns the next attempt; Connect must not
	// open a second channel alongside it.
	s.Connect()
	if got := s.State(); got != StateDisconnected {
		t.Errorf("State() = %v after Connect with pending reconnect, want StateDisconnected", got)
	}
	if s.reconnect == nil {
		t.Error("Connect cleared the pending reconnect timer")
	}
}

func TestStreamCloseCancelsReconnect(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	s := New(srv.URL, nil, WithReconnectDelay(50*time.Millisecond))
	s.Connect()

	// Wait for the first failed attempt, then tear down before the
	// reconnect fires.
	deadline := time.Now().Add(2 * time.Second)
	for attempts.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Close()

	before := attempts.Load()
	time.Sleep(150 * time.Millisecond)
	if got := attempts.Load(); got != before {
		t.Errorf("reconnect fired after Close: attempts %d -> %d", before, got)
	}
}
