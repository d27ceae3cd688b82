// Package tail turns the stream of state snapshots into a line-oriented
// event feed, for following the station from a terminal or piping into
// other tools.
package tail

import (
	"time"

	"github.com/matieusz/onlyyes/internal/core"
	"github.com/matieusz/onlyyes/internal/radio"
)

// EventType represents the type of station event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventNextChange
	EventPause
	EventResume
	EventVolumeChange
	EventConnected
	EventDisconnected
)

// Event represents one observed state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  core.Snapshot
	Current   core.Snapshot
}

// Source is anything that emits state snapshots.
type Source interface {
	Subscribe(fn radio.Subscriber) func()
}

// Watcher subscribes to a snapshot source and emits diff events.
type Watcher struct {
	events chan Event
	off    func()

	prev   core.Snapshot
	primed bool
}

// NewWatcher creates a watcher and starts listening immediately.
func NewWatcher(src Source) *Watcher {
	w := &Watcher{
		events: make(chan Event, 16),
	}
	w.off = src.Subscribe(w.apply)
	return w
}

// Events returns the channel of station events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop unsubscribes and closes the event channel.
func (w *Watcher) Stop() {
	w.off()
	close(w.events)
}

// apply runs on the source's notification path, so snapshots arrive one
// at a time and no locking is needed here.
func (w *Watcher) apply(curr core.Snapshot) {
	events := diffSnapshots(w.prev, curr, w.primed)
	w.prev = curr
	w.primed = true

	for _, e := range events {
		select {
		case w.events <- e:
		default:
			// Drop event if nobody is draining fast enough.
		}
	}
}

// diffSnapshots compares two snapshots and returns detected events.
func diffSnapshots(prev, curr core.Snapshot, primed bool) []Event {
	now := time.Now()
	var events []Event

	emit := func(t EventType) {
		events = append(events, Event{
			Type:      t,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	// First snapshot: announce the current track and nothing else.
	if !primed {
		if curr.HasTrack() {
			emit(EventTrackChange)
		}
		return events
	}

	if curr.HasTrack() && !curr.Current.SameAs(prev.Current) {
		emit(EventTrackChange)
	}

	if nextChanged(prev.Next, curr.Next) {
		emit(EventNextChange)
	}

	if prev.IsPlaying && !curr.IsPlaying {
		emit(EventPause)
	} else if !prev.IsPlaying && curr.IsPlaying {
		emit(EventResume)
	}

	if prev.Volume != curr.Volume {
		emit(EventVolumeChange)
	}

	if !prev.Connected && curr.Connected {
		emit(EventConnected)
	} else if prev.Connected && !curr.Connected {
		emit(EventDisconnected)
	}

	return events
}

func nextChanged(prev, curr *core.Track) bool {
	if prev == nil && curr == nil {
		return false
	}
	if prev == nil || curr == nil {
		return true
	}
	return !prev.SameAs(*curr)
}
