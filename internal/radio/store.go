package radio

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultVolume is used when no volume has ever been saved.
const DefaultVolume = 0.7

const volumeKey = "radio_volume"

// Store persists small bits of listener state (currently the volume)
// between runs. The backing file is a flat JSON object so future keys can
// be added without a migration.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStorePath returns the standard location of the state file,
// honoring XDG_STATE_HOME.
func DefaultStorePath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "onlyyes", "state.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "onlyyes", "state.json"), nil
}

// Volume returns the saved volume, or DefaultVolume when none is saved or
// the saved value is unusable.
func (s *Store) Volume() float64 {
	values, err := s.read()
	if err != nil {
		return DefaultVolume
	}
	raw, ok := values[volumeKey]
	if !ok {
		return DefaultVolume
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil || v < 0 || v > 1 {
		return DefaultVolume
	}
	return v
}

// SaveVolume persists the volume. The value is assumed to be clamped by
// the caller.
func (s *Store) SaveVolume(v float64) error {
	values, err := s.read()
	if err != nil {
		values = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	values[volumeKey] = raw
	return s.write(values)
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *Store) write(values map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Exists reports whether a state file has been written before.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return !errors.Is(err, fs.ErrNotExist)
}
