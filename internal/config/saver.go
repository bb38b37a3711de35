package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// testConfigPath overrides the config location in tests.
var testConfigPath string

// SetTestConfigPath points Save/ConfigPath at a specific file. Test-only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default config location. Test-only.
func ResetTestConfigPath() { testConfigPath = "" }

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Server saveServerConfig `json:"server"`
	UI     saveUIConfig     `json:"ui"`
}

type saveServerConfig struct {
	URL     string `json:"url,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

type saveUIConfig struct {
	ShowFooter      *bool  `json:"showFooter,omitempty"`
	MarkdownPreview *bool  `json:"markdownPreview,omitempty"`
	DefaultSort     string `json:"defaultSort,omitempty"`
	ToastDuration   string `json:"toastDuration,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Server: saveServerConfig{
			URL:     cfg.Server.URL,
			Timeout: cfg.Server.Timeout.String(),
		},
		UI: saveUIConfig{
			ShowFooter:      &cfg.UI.ShowFooter,
			MarkdownPreview: &cfg.UI.MarkdownPreview,
			DefaultSort:     cfg.UI.DefaultSort,
			ToastDuration:   cfg.UI.ToastDuration.String(),
		},
	}
}

// Save writes the config to ~/.config/inkwell/config.json. Keys Save
// does not manage (hand-edited extras) are preserved.
func Save(cfg *Config) error {
	path := testConfigPath
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Start from whatever is on disk so unknown keys survive.
	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &merged)
	}

	sc := toSaveConfig(cfg)
	managed, err := json.Marshal(sc)
	if err != nil {
		return err
	}
	var managedMap map[string]json.RawMessage
	if err := json.Unmarshal(managed, &managedMap); err != nil {
		return err
	}
	for k, v := range managedMap {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
