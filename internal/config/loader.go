package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/inkwell"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Durations are strings
// ("15s") and booleans are pointers so absent keys fall through to the
// defaults instead of zeroing them.
type rawConfig struct {
	Server rawServerConfig `json:"server"`
	UI     rawUIConfig     `json:"ui"`
}

type rawServerConfig struct {
	URL     string `json:"url"`
	Timeout string `json:"timeout"`
}

type rawUIConfig struct {
	ShowFooter      *bool  `json:"showFooter"`
	MarkdownPreview *bool  `json:"markdownPreview"`
	DefaultSort     string `json:"defaultSort"`
	ToastDuration   string `json:"toastDuration"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/inkwell/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the defaults.
func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Server.URL != "" {
		cfg.Server.URL = strings.TrimRight(raw.Server.URL, "/")
	}
	if raw.Server.Timeout != "" {
		if d, err := time.ParseDuration(raw.Server.Timeout); err == nil {
			cfg.Server.Timeout = d
		}
	}

	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.MarkdownPreview != nil {
		cfg.UI.MarkdownPreview = *raw.UI.MarkdownPreview
	}
	if raw.UI.DefaultSort != "" {
		cfg.UI.DefaultSort = raw.UI.DefaultSort
	}
	if raw.UI.ToastDuration != "" {
		if d, err := time.ParseDuration(raw.UI.ToastDuration); err == nil {
			cfg.UI.ToastDuration = d
		}
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
