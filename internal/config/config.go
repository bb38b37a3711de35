package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `json:"server"`
	UI     UIConfig     `json:"ui"`
}

// ServerConfig points the client at its backend.
type ServerConfig struct {
	URL     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
}

// UIConfig configures appearance and list behavior.
type UIConfig struct {
	ShowFooter      bool   `json:"showFooter"`
	MarkdownPreview bool   `json:"markdownPreview"` // render note content as markdown in the preview pane
	DefaultSort     string `json:"defaultSort"`     // "newest" or "oldest", used until the user toggles
	ToastDuration   time.Duration
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:5000/api",
			Timeout: 15 * time.Second,
		},
		UI: UIConfig{
			ShowFooter:      true,
			MarkdownPreview: true,
			DefaultSort:     "newest",
			ToastDuration:   3 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 15 * time.Second
	}
	if c.UI.DefaultSort != "newest" && c.UI.DefaultSort != "oldest" {
		c.UI.DefaultSort = "newest"
	}
	if c.UI.ToastDuration <= 0 {
		c.UI.ToastDuration = 3 * time.Second
	}
	return nil
}
