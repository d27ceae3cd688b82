// Package events maintains the persistent push channel to the station
// backend. The backend publishes typed JSON envelopes over a single SSE
// endpoint; this package owns exactly one live connection, parses the
// envelopes, and delivers them to a handler.
package events

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Type identifies a push message kind. Unrecognized types are forwarded
// and ignored downstream, so new backend message kinds are safe.
type Type string

const (
	TypeNowPlaying  Type = "now_playing"
	TypeRecentSongs Type = "recent_songs"
	TypeNextSong    Type = "next_song"
	TypeConnected   Type = "connected"
)

// Envelope is the wire format of a push message.
type Envelope struct {
	Type       Type            `json:"type"`
	Data       json.RawMessage `json:"data"`
	ListenerID string          `json:"listener_id,omitempty"`
}

// ConnState is the connector's connection state.
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

// ReconnectDelay is the fixed wait before a reconnect attempt. The policy
// is a flat, unlimited retry: the stream is expected to be long-lived and
// a failed attempt is cheap.
const ReconnectDelay = 3 * time.Second

// Handler receives each parsed envelope.
type Handler func(Envelope)

// Stream is the event stream connector. At most one live channel and at
// most one pending reconnect timer exist per Stream.
type Stream struct {
	url     string
	client  *http.Client
	handler Handler
	logger  *zap.Logger
	delay   time.Duration
	onState func(connected bool)

	mu         sync.Mutex
	state      ConnState
	listenerID string
	reconnect  *time.Timer
	cancel     context.CancelFunc
	closed     bool
}

// Option configures a Stream.
type Option func(*Stream)

// WithReconnectDelay overrides the reconnect delay.
func WithReconnectDelay(d time.Duration) Option {
	return func(s *Stream) {
		s.delay = d
	}
}

// WithHTTPClient overrides the HTTP client used for the streaming request.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Stream) {
		s.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Stream) {
		s.logger = l
	}
}

// WithStateFunc registers a callback invoked on every connection state
// flip. Called outside the Stream's lock.
func WithStateFunc(fn func(connected bool)) Option {
	return func(s *Stream) {
		s.onState = fn
	}
}

// New creates a connector for the given SSE endpoint URL. The handler is
// invoked from the stream's reader goroutine, one envelope at a time.
func New(url string, handler Handler, opts ...Option) *Stream {
	s := &Stream{
		url:     url,
		handler: handler,
		logger:  zap.NewNop(),
		delay:   ReconnectDelay,
		// No overall timeout: the response body is a never-ending stream.
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect opens the push channel. It returns immediately; connection and
// all subsequent reconnects happen on a background goroutine. A pending
// reconnect timer counts as an in-flight connection attempt.
func (s *Stream) Connect() {
	s.mu.Lock()
	if s.closed || s.state != StateDisconnected || s.reconnect != nil {
		s.mu.Unlock()
		return
	}
	s.state = StateConnecting
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(ctx)
}

// Close tears the connector down: any pending reconnect timer is
// cancelled before the channel is closed, so no reconnect can fire after
// teardown. Close is idempotent.
func (s *Stream) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.reconnect != nil {
		s.reconnect.Stop()
		s.reconnect = nil
	}
	cancel := s.cancel
	s.state = StateDisconnected
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// State returns the current connection state.
func (s *Stream) State() ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connected reports whether the channel is currently open.
func (s *Stream) Connected() bool {
	return s.State() == StateConnected
}

// ListenerID returns the id assigned by the backend's handshake message,
// or "" before the handshake arrives.
func (s *Stream) ListenerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenerID
}

func (s *Stream) run(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		s.onError(err)
		return
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		s.onError(err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.onError(fmt.Errorf("event stream: unexpected status %d", resp.StatusCode))
		return
	}

	s.setConnected()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}

		var env Envelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			// A malformed message must not kill the stream.
			s.logger.Debug("discarding malformed push message", zap.Error(err))
			continue
		}

		if env.Type == TypeConnected {
			s.mu.Lock()
			if env.ListenerID != "" {
				s.listenerID = env.ListenerID
			}
			s.mu.Unlock()
		}

		if s.handler != nil {
			s.handler(env)
		}
	}

	err = scanner.Err()
	if err == nil {
		err = fmt.Errorf("event stream: server closed connection")
	}
	s.onError(err)
}

func (s *Stream) setConnected() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state = StateConnected
	notify := s.onState
	s.mu.Unlock()

	s.logger.Info("event stream connected")
	if notify != nil {
		notify(true)
	}
}

// onError transitions to DISCONNECTED and schedules exactly one reconnect
// attempt. A second error while a timer is already pending is a no-op.
func (s *Stream) onError(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	wasConnected := s.state == StateConnected
	s.state = StateDisconnected
	notify := s.onState

	if s.reconnect == nil {
		s.reconnect = time.AfterFunc(s.delay, func() {
			s.mu.Lock()
			s.reconnect = nil
			if s.closed {
				s.mu.Unlock()
				return
			}
			s.state = StateConnecting
			ctx, cancel := context.WithCancel(context.Background())
			s.cancel = cancel
			s.mu.Unlock()

			go s.run(ctx)
		})
	}
	s.mu.Unlock()

	s.logger.Warn("event stream error, reconnecting", zap.Error(err), zap.Duration("delay", s.delay))
	if wasConnected && notify != nil {
		notify(false)
	}
}
