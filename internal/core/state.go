package core

// Snapshot is a point-in-time copy of the shared playback state. Every UI
// surface renders from the same snapshot so that simultaneous views (hero
// player, kiosk, status line) cannot drift apart.
type Snapshot struct {
	Current      Track
	Next         *Track
	Recent       []Track
	IsPlaying    bool
	Volume       float64
	ShouldGlitch bool
	Connected    bool
	ListenerID   string
}

// HasTrack reports whether there is an active track.
func (s Snapshot) HasTrack() bool {
	return !s.Current.IsZero()
}

// TitleLine returns the window-title string for the snapshot.
func (s Snapshot) TitleLine(brand string) string {
	if !s.HasTrack() {
		return brand
	}
	return s.Current.Title + " - " + s.Current.Artist + " | " + brand
}
