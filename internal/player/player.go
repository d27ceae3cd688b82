// Package player turns the station's proxied MP3 stream into sound. It is
// the only package that touches the audio device; everything else deals in
// play/pause intent and a volume fraction.
package player

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"
)

// dialTries is how often Play retries the stream request before giving up.
// Radio proxies drop connections routinely, so a couple of quick retries
// beat surfacing every hiccup to the user.
const dialTries = 5

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// Player streams one URL at a time through the system mixer.
type Player struct {
	client  *http.Client
	logger  *zap.Logger
	onStall func(error)

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	body     io.Closer
	volume   *effects.Volume
	playing  bool
	gain     float64
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) {
		p.logger = l
	}
}

// WithHTTPClient overrides the HTTP client used to dial the stream.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Player) {
		p.client = c
	}
}

// WithStallFunc registers a callback invoked when a running stream dies.
// Used to flip the UI back to paused.
func WithStallFunc(fn func(error)) Option {
	return func(p *Player) {
		p.onStall = fn
	}
}

// New creates a stopped player with the given initial volume fraction.
func New(volume float64, opts ...Option) *Player {
	p := &Player{
		client: &http.Client{},
		logger: zap.NewNop(),
		gain:   volume,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play dials the stream URL and starts playback, replacing whatever was
// playing before.
func (p *Player) Play(ctx context.Context, url string) error {
	decoded, format, body, err := p.dial(ctx, url)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}

	speakerOnce.Do(func() {
		speakerRate = format.SampleRate
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if speakerErr != nil {
		decoded.Close()
		body.Close()
		return fmt.Errorf("initializing audio device: %w", speakerErr)
	}

	p.mu.Lock()
	p.stopLocked()

	var stream beep.Streamer = decoded
	if format.SampleRate != speakerRate {
		stream = beep.Resample(4, format.SampleRate, speakerRate, decoded)
	}
	vol := &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   gainToVolume(p.gain),
		Silent:   p.gain == 0,
	}

	p.streamer = decoded
	p.body = body
	p.volume = vol
	p.playing = true
	p.mu.Unlock()

	done := beep.Callback(func() {
		// The streamer only ends when the connection died; a live radio
		// stream never finishes on its own.
		p.stalled()
	})
	speaker.Play(beep.Seq(vol, done))

	p.logger.Info("playback started", zap.String("url", url))
	return nil
}

// Stop halts playback and releases the stream connection.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Playing reports whether a stream is currently running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// SetVolume adjusts the gain of the running stream and remembers it for
// the next one. The fraction is expected to be clamped to [0, 1] already.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.gain = v
	vol := p.volume
	p.mu.Unlock()

	if vol == nil {
		return
	}
	speaker.Lock()
	vol.Volume = gainToVolume(v)
	vol.Silent = v == 0
	speaker.Unlock()
}

func (p *Player) stopLocked() {
	if !p.playing && p.streamer == nil {
		return
	}
	speaker.Clear()
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.body != nil {
		p.body.Close()
		p.body = nil
	}
	p.volume = nil
	p.playing = false
}

func (p *Player) stalled() {
	p.mu.Lock()
	wasPlaying := p.playing
	p.stopLocked()
	p.mu.Unlock()

	if !wasPlaying {
		return
	}
	err := fmt.Errorf("audio stream ended unexpectedly")
	p.logger.Warn("playback stalled", zap.Error(err))
	if p.onStall != nil {
		p.onStall(err)
	}
}

func (p *Player) dial(ctx context.Context, url string) (beep.StreamSeekCloser, beep.Format, io.ReadCloser, error) {
	var lastErr error
	for i := 0; i < dialTries; i++ {
		if ctx.Err() != nil {
			return nil, beep.Format{}, nil, ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, beep.Format{}, nil, err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(250 * time.Millisecond)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("stream returned status %d", resp.StatusCode)
			time.Sleep(250 * time.Millisecond)
			continue
		}

		decoded, format, err := mp3.Decode(resp.Body)
		if err == nil {
			return decoded, format, resp.Body, nil
		}
		resp.Body.Close()
		lastErr = err
		time.Sleep(250 * time.Millisecond)
	}
	return nil, beep.Format{}, nil, lastErr
}

// gainToVolume maps a linear [0, 1] fraction to beep's exponential volume
// scale, where 0 is the mixer's natural level and each -1 halves it.
func gainToVolume(v float64) float64 {
	if v <= 0 {
		return -10
	}
	return math.Log2(v) * 2
}
