package tail

import (
	"strings"
	"testing"
	"time"

	"github.com/matieusz/onlyyes/internal/core"
	"github.com/matieusz/onlyyes/internal/radio"
)

func snap(title, artist string, playing bool) core.Snapshot {
	return core.Snapshot{
		Current:   core.Track{Title: title, Artist: artist},
		IsPlaying: playing,
		Volume:    0.7,
	}
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestDiffSnapshots(t *testing.T) {
	tests := []struct {
		name   string
		prev   core.Snapshot
		curr   core.Snapshot
		primed bool
		want   []EventType
	}{
		{
			name: "first snapshot with track",
			curr: snap("A", "B", false),
			want: []EventType{EventTrackChange},
		},
		{
			name: "first snapshot without track",
			curr: core.Snapshot{},
			want: nil,
		},
		{
			name:   "track change",
			prev:   snap("A", "B", true),
			curr:   snap("C", "D", true),
			primed: true,
			want:   []EventType{EventTrackChange},
		},
		{
			name:   "same track no events",
			prev:   snap("A", "B", true),
			curr:   snap("A", "B", true),
			primed: true,
			want:   nil,
		},
		{
			name:   "pause",
			prev:   snap("A", "B", true),
			curr:   snap("A", "B", false),
			primed: true,
			want:   []EventType{EventPause},
		},
		{
			name:   "resume",
			prev:   snap("A", "B", false),
			curr:   snap("A", "B", true),
			primed: true,
			want:   []EventType{EventResume},
		},
		{
			name:   "volume change",
			prev:   core.Snapshot{Volume: 0.7},
			curr:   core.Snapshot{Volume: 0.5},
			primed: true,
			want:   []EventType{EventVolumeChange},
		},
		{
			name:   "connect",
			prev:   core.Snapshot{},
			curr:   core.Snapshot{Connected: true},
			primed: true,
			want:   []EventType{EventConnected},
		},
		{
			name:   "disconnect",
			prev:   core.Snapshot{Connected: true},
			curr:   core.Snapshot{},
			primed: true,
			want:   []EventType{EventDisconnected},
		},
		{
			name: "next song appears",
			prev: snap("A", "B", true),
			curr: core.Snapshot{
				Current:   core.Track{Title: "A", Artist: "B"},
				Next:      &core.Track{Title: "N", Artist: "M"},
				IsPlaying: true,
				Volume:    0.7,
			},
			primed: true,
			want:   []EventType{EventNextChange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eventTypes(diffSnapshots(tt.prev, tt.curr, tt.primed))
			if len(got) != len(tt.want) {
				t.Fatalf("events = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatterLine(t *testing.T) {
	f := NewFormatter(WithEmoji(false))
	e := Event{
		Type:      EventTrackChange,
		Timestamp: time.Now(),
		Current:   snap("Neon Drive", "Stacja X", true),
	}

	got := f.Format(e)
	if got != "Now playing: Stacja X - Neon Drive" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatterTemplate(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Type}}|{{.Artist}}|{{.Title}}|{{.Volume}}"))
	e := Event{
		Type:    EventTrackChange,
		Current: snap("Neon Drive", "Stacja X", true),
	}

	got := f.Format(e)
	if got != "track_change|Stacja X|Neon Drive|70" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatterTimestamp(t *testing.T) {
	f := NewFormatter(WithEmoji(false), WithTimestamp(true))
	e := Event{
		Type:      EventPause,
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	got := f.Format(e)
	if !strings.HasPrefix(got, "09:30:00 ") {
		t.Errorf("Format() = %q, want timestamp prefix", got)
	}
}

type fakeSource struct {
	fn radio.Subscriber
}

func (s *fakeSource) Subscribe(fn radio.Subscriber) func() {
	s.fn = fn
	return func() { s.fn = nil }
}

func TestWatcherEmitsOnSnapshot(t *testing.T) {
	src := &fakeSource{}
	w := NewWatcher(src)

	src.fn(snap("A", "B", false))
	src.fn(snap("A", "B", true))

	want := []EventType{EventTrackChange, EventResume}
	for i, wt := range want {
		select {
		case e := <-w.Events():
			if e.Type != wt {
				t.Errorf("event[%d] = %v, want %v", i, e.Type, wt)
			}
		default:
			t.Fatalf("missing event %d", i)
		}
	}

	w.Stop()
	if src.fn != nil {
		t.Error("Stop did not unsubscribe")
	}
	if _, open := <-w.Events(); open {
		t.Error("Events channel still open after Stop")
	}
}
