package radio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreDefaultVolume(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.json"))
	if got := s.Volume(); got != DefaultVolume {
		t.Errorf("Volume() = %v, want %v", got, DefaultVolume)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewStore(path)

	if err := s.SaveVolume(0.35); err != nil {
		t.Fatalf("SaveVolume() error = %v", err)
	}
	if got := NewStore(path).Volume(); got != 0.35 {
		t.Errorf("Volume() = %v, want 0.35", got)
	}
}

func TestStoreIgnoresCorruptValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `oops`},
		{name: "wrong type", body: `{"radio_volume":"loud"}`},
		{name: "out of range", body: `{"radio_volume":7.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatal(err)
			}
			if got := NewStore(path).Volume(); got != DefaultVolume {
				t.Errorf("Volume() = %v, want default", got)
			}
		})
	}
}

func TestStorePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"other":"keep"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	if err := s.SaveVolume(0.5); err != nil {
		t.Fatalf("SaveVolume() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"other"`, `"radio_volume"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("state file missing %s: %s", want, data)
		}
	}
}
