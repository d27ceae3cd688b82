package core

// Track represents a song in the station's rotation. Tracks are immutable
// value objects: updates from the backend replace them wholesale.
type Track struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail,omitempty"`
	SongID    string `json:"songId,omitempty"`
	StreamURL string `json:"streamUrl,omitempty"`
}

// SameAs reports whether two tracks are the same logical track.
// Identity is keyed on (title, artist): this is what drives change
// detection in every widget, so two distinct catalog entries that share
// title and artist count as one track.
func (t Track) SameAs(other Track) bool {
	return t.Title == other.Title && t.Artist == other.Artist
}

// IsZero reports whether the track carries no metadata at all.
func (t Track) IsZero() bool {
	return t.Title == "" && t.Artist == "" && t.SongID == ""
}

// HasStream reports whether the track has a playable stream URL.
func (t Track) HasStream() bool {
	return t.StreamURL != ""
}

// Display returns the "Artist — Title" line used in list views.
func (t Track) Display() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " — " + t.Title
}
