package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "https://onlyyes.matieusz.pl",
			Timeout: 10,
		},
		Radio: RadioConfig{
			HistoryLimit:      10,
			ListenersInterval: 30,
		},
		Defaults: DefaultsConfig{
			Volume: 0.7,
		},
		Presence: PresenceConfig{
			Enabled: false,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Server.BaseURL == "" {
		c.Server.BaseURL = d.Server.BaseURL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = d.Server.Timeout
	}

	if c.Radio.HistoryLimit == 0 {
		c.Radio.HistoryLimit = d.Radio.HistoryLimit
	}
	if c.Radio.ListenersInterval == 0 {
		c.Radio.ListenersInterval = d.Radio.ListenersInterval
	}

	if c.Defaults.Volume == 0 {
		c.Defaults.Volume = d.Defaults.Volume
	}

	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
