package core

import "testing"

func TestTrackSameAs(t *testing.T) {
	tests := []struct {
		name string
		a, b Track
		want bool
	}{
		{
			name: "identical",
			a:    Track{Title: "Neon Drive", Artist: "Stacja X"},
			b:    Track{Title: "Neon Drive", Artist: "Stacja X"},
			want: true,
		},
		{
			name: "different thumbnail is still the same track",
			a:    Track{Title: "Neon Drive", Artist: "Stacja X", Thumbnail: "a.png"},
			b:    Track{Title: "Neon Drive", Artist: "Stacja X", Thumbnail: "b.png"},
			want: true,
		},
		{
			name: "different song id is still the same track",
			a:    Track{Title: "Neon Drive", Artist: "Stacja X", SongID: "1"},
			b:    Track{Title: "Neon Drive", Artist: "Stacja X", SongID: "2"},
			want: true,
		},
		{
			name: "different title",
			a:    Track{Title: "Neon Drive", Artist: "Stacja X"},
			b:    Track{Title: "Neon Drift", Artist: "Stacja X"},
			want: false,
		},
		{
			name: "different artist",
			a:    Track{Title: "Neon Drive", Artist: "Stacja X"},
			b:    Track{Title: "Neon Drive", Artist: "Stacja Y"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SameAs(tt.b); got != tt.want {
				t.Errorf("SameAs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotTitleLine(t *testing.T) {
	empty := Snapshot{}
	if got := empty.TitleLine("ONLY YES RADIO"); got != "ONLY YES RADIO" {
		t.Errorf("TitleLine() = %q, want brand only", got)
	}

	s := Snapshot{Current: Track{Title: "Neon Drive", Artist: "Stacja X"}}
	want := "Neon Drive - Stacja X | ONLY YES RADIO"
	if got := s.TitleLine("ONLY YES RADIO"); got != want {
		t.Errorf("TitleLine() = %q, want %q", got, want)
	}
}

func TestTrackDisplay(t *testing.T) {
	tr := Track{Title: "Neon Drive", Artist: "Stacja X"}
	if got := tr.Display(); got != "Stacja X — Neon Drive" {
		t.Errorf("Display() = %q", got)
	}

	noArtist := Track{Title: "Jingle"}
	if got := noArtist.Display(); got != "Jingle" {
		t.Errorf("Display() = %q", got)
	}
}
