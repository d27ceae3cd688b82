package config

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Radio    RadioConfig    `toml:"radio"`
	Defaults DefaultsConfig `toml:"defaults"`
	Presence PresenceConfig `toml:"presence"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds backend connection settings.
type ServerConfig struct {
	BaseURL string `toml:"base_url"`
	Session string `toml:"session"`
	Timeout int    `toml:"timeout"` // seconds, one-shot requests
}

// RadioConfig holds station-specific settings.
type RadioConfig struct {
	HistoryLimit      int `toml:"history_limit"`
	ListenersInterval int `toml:"listeners_interval"` // seconds, active-listeners poll
}

// DefaultsConfig holds default playback settings.
type DefaultsConfig struct {
	Volume float64 `toml:"volume"` // 0..1, used before a persisted value exists
}

// PresenceConfig holds Discord rich presence settings.
type PresenceConfig struct {
	Enabled bool   `toml:"enabled"`
	AppID   string `toml:"app_id"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"` // milliseconds
	Kiosk           bool   `toml:"kiosk"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
