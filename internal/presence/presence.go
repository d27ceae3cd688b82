// Package presence mirrors the station's now-playing state into Discord
// rich presence. It is a pure consumer: it subscribes to state snapshots
// and never feeds anything back.
package presence

import (
	"sync"
	"time"

	"github.com/babycommando/rich-go/client"
	"go.uber.org/zap"

	"github.com/matieusz/onlyyes/internal/core"
)

// Updater pushes snapshot changes to the local Discord client.
type Updater struct {
	appID   string
	siteURL string
	logger  *zap.Logger

	mu        sync.Mutex
	connected bool
	last      core.Track
	wasActive bool
	started   time.Time
}

// New creates an updater for the given Discord application id. The site
// URL backs the "Listen along" button.
func New(appID, siteURL string, logger *zap.Logger) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{appID: appID, siteURL: siteURL, logger: logger}
}

// Connect logs into the local Discord IPC socket. Failure is not fatal:
// the updater just stays dormant, since most sessions run without Discord.
func (u *Updater) Connect() {
	if err := client.Login(u.appID); err != nil {
		u.logger.Debug("discord presence unavailable", zap.Error(err))
		return
	}
	u.mu.Lock()
	u.connected = true
	u.mu.Unlock()
	u.logger.Info("discord presence connected")
}

// Apply reflects a snapshot in the presence. Intended as a Synchronizer
// subscriber.
func (u *Updater) Apply(snap core.Snapshot) {
	u.mu.Lock()
	if !u.connected {
		u.mu.Unlock()
		return
	}

	active := snap.IsPlaying && snap.HasTrack()
	if !active {
		if u.wasActive {
			u.wasActive = false
			u.last = core.Track{}
			u.mu.Unlock()
			if err := client.SetActivity(client.Activity{}); err != nil {
				u.logger.Debug("clearing presence failed", zap.Error(err))
			}
			return
		}
		u.mu.Unlock()
		return
	}

	if u.wasActive && snap.Current.SameAs(u.last) {
		u.mu.Unlock()
		return
	}
	if !u.wasActive {
		u.started = time.Now()
	}
	u.wasActive = true
	u.last = snap.Current
	started := u.started
	u.mu.Unlock()

	activity := client.Activity{
		Type:       2, // listening
		Details:    snap.Current.Title,
		State:      snap.Current.Artist,
		LargeImage: "logo",
		LargeText:  "ONLY YES RADIO",
		Timestamps: &client.Timestamps{Start: &started},
	}
	if u.siteURL != "" {
		activity.Buttons = []*client.Button{
			{Label: "Listen along", Url: u.siteURL},
		}
	}
	if err := client.SetActivity(activity); err != nil {
		u.logger.Debug("updating presence failed", zap.Error(err))
	}
}

// Close clears the presence.
func (u *Updater) Close() {
	u.mu.Lock()
	connected := u.connected
	u.connected = false
	u.mu.Unlock()

	if connected {
		_ = client.SetActivity(client.Activity{})
		client.Logout()
	}
}
