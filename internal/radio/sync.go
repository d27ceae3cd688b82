package radio

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matieusz/onlyyes/internal/api"
	"github.com/matieusz/onlyyes/internal/core"
	apperrors "github.com/matieusz/onlyyes/internal/errors"
	"github.com/matieusz/onlyyes/internal/events"
)

// ProxyStreamPath is the station's server-side audio proxy. Direct CDN
// URLs reported by the backend are rewritten to it so that playback never
// fights CDN geo-blocks or CORS.
const ProxyStreamPath = "/api/radio/stream"

// GlitchWindow is how long the visual glitch effect stays armed after a
// track change.
const GlitchWindow = 400 * time.Millisecond

// Subscriber receives a state snapshot after every mutation.
type Subscriber func(core.Snapshot)

// Synchronizer owns the shared playback state. Push events, REST
// snapshots and user actions all funnel through it; UI surfaces only ever
// see immutable snapshots.
//
// All exported methods are safe for concurrent use. After Close, mutating
// methods become no-ops so a late push event or timer cannot resurrect
// state.
type Synchronizer struct {
	client  *api.Client
	store   *Store
	logger  *zap.Logger
	glitch  time.Duration
	history int

	mu           sync.Mutex
	current      core.Track
	next         *core.Track
	recent       []core.Track
	isPlaying    bool
	volume       float64
	shouldGlitch bool
	connected    bool
	listenerID   string
	glitchTimer  *time.Timer
	subscribers  map[int]Subscriber
	nextSubID    int
	closed       bool
}

// SyncOption configures a Synchronizer.
type SyncOption func(*Synchronizer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) SyncOption {
	return func(s *Synchronizer) {
		s.logger = l
	}
}

// WithGlitchWindow overrides the glitch duration.
func WithGlitchWindow(d time.Duration) SyncOption {
	return func(s *Synchronizer) {
		s.glitch = d
	}
}

// WithHistoryLimit sets how many recent tracks are kept.
func WithHistoryLimit(n int) SyncOption {
	return func(s *Synchronizer) {
		s.history = n
	}
}

// NewSynchronizer creates a synchronizer. The initial volume comes from
// the store; everything else starts empty until Initialize or the first
// push event.
func NewSynchronizer(client *api.Client, store *Store, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		client:      client,
		store:       store,
		logger:      zap.NewNop(),
		glitch:      GlitchWindow,
		history:     10,
		volume:      DefaultVolume,
		subscribers: map[int]Subscriber{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if store != nil {
		s.volume = store.Volume()
	}
	return s
}

// Initialize seeds the state with one REST round-trip per concern. The
// three fetches run concurrently and fail independently: a dead
// recent-songs endpoint must not blank the hero player.
func (s *Synchronizer) Initialize(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		song, err := s.client.NowPlaying(ctx)
		if err != nil {
			s.logger.Warn("initial now-playing fetch failed", zap.Error(err))
			return
		}
		s.setCurrent(trackFromSong(*song))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		songs, err := s.client.RecentSongs(ctx, s.history)
		if err != nil {
			s.logger.Warn("initial recent-songs fetch failed", zap.Error(err))
			return
		}
		s.setRecent(tracksFromSongs(songs))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		song, err := s.client.NextSong(ctx)
		if err != nil {
			s.logger.Warn("initial next-song fetch failed", zap.Error(err))
			return
		}
		var next *core.Track
		if song != nil {
			t := trackFromSong(*song)
			next = &t
		}
		s.setNext(next)
	}()

	wg.Wait()
}

// ApplyEvent folds one push envelope into the state. Unknown types are
// ignored; payloads that fail to decode are discarded.
func (s *Synchronizer) ApplyEvent(env events.Envelope) {
	switch env.Type {
	case events.TypeNowPlaying:
		var song api.Song
		if err := json.Unmarshal(env.Data, &song); err != nil {
			s.logger.Debug("bad now_playing payload", zap.Error(err))
			return
		}
		s.setCurrent(trackFromSong(song))

	case events.TypeRecentSongs:
		// Unlike the REST endpoint, the broadcast wraps the list in an
		// object: {"songs": [...]}.
		var payload struct {
			Songs []api.Song `json:"songs"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			s.logger.Debug("bad recent_songs payload", zap.Error(err))
			return
		}
		s.setRecent(tracksFromSongs(payload.Songs))

	case events.TypeNextSong:
		var song *api.Song
		if err := json.Unmarshal(env.Data, &song); err != nil {
			s.logger.Debug("bad next_song payload", zap.Error(err))
			return
		}
		var next *core.Track
		if song != nil {
			t := trackFromSong(*song)
			next = &t
		}
		s.setNext(next)

	case events.TypeConnected:
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.connected = true
		if env.ListenerID != "" {
			s.listenerID = env.ListenerID
		}
		s.mu.Unlock()
		s.notify()
	}
}

// SetConnected records the push-channel state. Wired to the event stream's
// state callback.
func (s *Synchronizer) SetConnected(connected bool) {
	s.mu.Lock()
	if s.closed || s.connected == connected {
		s.mu.Unlock()
		return
	}
	s.connected = connected
	s.mu.Unlock()
	s.notify()
}

// setCurrent replaces the active track unless the update is a duplicate.
// A repeat of the same songId, title and artist carries no information
// and must not retrigger the glitch effect.
func (s *Synchronizer) setCurrent(track core.Track) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if track.SongID == s.current.SongID && track.SameAs(s.current) {
		s.mu.Unlock()
		return
	}
	track.StreamURL = NormalizeStreamURL(track.StreamURL)
	s.current = track
	s.armGlitchLocked()
	s.mu.Unlock()
	s.notify()
}

// setRecent replaces the history list. The list is considered unchanged
// when its newest entry matches the current newest entry, which is how
// the backend resends it.
func (s *Synchronizer) setRecent(tracks []core.Track) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if len(tracks) > 0 && len(s.recent) > 0 && tracks[0].SameAs(s.recent[0]) {
		s.mu.Unlock()
		return
	}
	if len(tracks) > s.history {
		tracks = tracks[:s.history]
	}
	s.recent = tracks
	s.mu.Unlock()
	s.notify()
}

// setNext replaces the upcoming track, skipping same-track repeats.
func (s *Synchronizer) setNext(next *core.Track) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if next != nil && s.next != nil && next.SameAs(*s.next) {
		s.mu.Unlock()
		return
	}
	if next == nil && s.next == nil {
		s.mu.Unlock()
		return
	}
	s.next = next
	s.mu.Unlock()
	s.notify()
}

// armGlitchLocked starts (or restarts) the glitch window. Caller holds
// s.mu.
func (s *Synchronizer) armGlitchLocked() {
	s.shouldGlitch = true
	if s.glitchTimer != nil {
		s.glitchTimer.Stop()
	}
	s.glitchTimer = time.AfterFunc(s.glitch, func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.shouldGlitch = false
		s.mu.Unlock()
		s.notify()
	})
}

// TogglePlay flips the play/pause state. It fails when no track with a
// stream URL is known yet. The play state is reported to the backend in
// the background; a reporting failure never blocks or reverts the local
// toggle.
func (s *Synchronizer) TogglePlay(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, apperrors.ErrNotConnected
	}
	if !s.current.HasStream() {
		s.mu.Unlock()
		return false, apperrors.ErrNoStream
	}
	s.isPlaying = !s.isPlaying
	playing := s.isPlaying
	listenerID := s.listenerID
	s.mu.Unlock()
	s.notify()

	if listenerID != "" {
		go func() {
			reportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := s.client.UpdatePlayingState(reportCtx, listenerID, playing); err != nil {
				s.logger.Debug("playing-state report failed", zap.Error(err))
			}
		}()
	}
	return playing, nil
}

// ForcePause stops playback locally, used when the audio pipeline dies.
func (s *Synchronizer) ForcePause() {
	s.mu.Lock()
	if s.closed || !s.isPlaying {
		s.mu.Unlock()
		return
	}
	s.isPlaying = false
	s.mu.Unlock()
	s.notify()
}

// SetVolume clamps the volume to [0, 1], persists it and notifies
// subscribers. A persistence failure is logged and otherwise ignored.
func (s *Synchronizer) SetVolume(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return v
	}
	s.volume = v
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveVolume(v); err != nil {
			s.logger.Warn("saving volume failed", zap.Error(err))
		}
	}
	s.notify()
	return v
}

// Snapshot returns a copy of the current state.
func (s *Synchronizer) Snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Synchronizer) snapshotLocked() core.Snapshot {
	snap := core.Snapshot{
		Current:      s.current,
		IsPlaying:    s.isPlaying,
		Volume:       s.volume,
		ShouldGlitch: s.shouldGlitch,
		Connected:    s.connected,
		ListenerID:   s.listenerID,
	}
	if s.next != nil {
		next := *s.next
		snap.Next = &next
	}
	if len(s.recent) > 0 {
		snap.Recent = make([]core.Track, len(s.recent))
		copy(snap.Recent, s.recent)
	}
	return snap
}

// Subscribe registers fn to be called after every state change. The
// returned function removes the subscription and is safe to call more
// than once.
func (s *Synchronizer) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// Close shuts the synchronizer down. Pending glitch timers are cancelled
// and every later mutation becomes a no-op.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.glitchTimer != nil {
		s.glitchTimer.Stop()
		s.glitchTimer = nil
	}
	s.subscribers = map[int]Subscriber{}
	s.mu.Unlock()
}

func (s *Synchronizer) notify() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// NormalizeStreamURL rewrites absolute stream URLs to the server-side
// proxy. Relative URLs are trusted as-is; an empty URL falls back to the
// proxy.
func NormalizeStreamURL(raw string) string {
	if raw == "" {
		return ProxyStreamPath
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if !strings.Contains(raw, ProxyStreamPath) {
			return ProxyStreamPath
		}
	}
	return raw
}

func trackFromSong(song api.Song) core.Track {
	return core.Track{
		Title:     song.Title,
		Artist:    song.Artist,
		Thumbnail: song.Thumbnail,
		SongID:    song.SongID,
		StreamURL: song.StreamURL,
	}
}

func tracksFromSongs(songs []api.Song) []core.Track {
	tracks := make([]core.Track, len(songs))
	for i, song := range songs {
		tracks[i] = trackFromSong(song)
	}
	return tracks
}
