package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const settingsFile = "settings.yaml"

// Settings are optional tool-level knobs read from settings.yaml.
// Every field has a working default; the file does not need to exist.
type Settings struct {
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	SentryDSN   string `yaml:"sentry_dsn"`
	NoClipboard bool   `yaml:"no_clipboard"`
	NoPretty    bool   `yaml:"no_pretty"`
}

// DefaultSettings returns the settings used when settings.yaml is absent.
func DefaultSettings() Settings {
	return Settings{LogLevel: "warn"}
}

// Settings reads settings.yaml under the config root.
func (s Store) Settings() (Settings, error) {
	cfg := DefaultSettings()

	raw, err := os.ReadFile(filepath.Join(s.Root, settingsFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", settingsFile, err)
	}

	cfg.SentryDSN = os.ExpandEnv(cfg.SentryDSN)
	return cfg, nil
}
