package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Folder        string   `toml:"folder"`
	Root          string   `toml:"root"`
	Platform      string   `toml:"platform"`
	Packs         []string `toml:"packs"`
	TickInterval  string   `toml:"tick_interval"`
	WatchDebounce string   `toml:"watch_debounce"`
	MaxPayload    int      `toml:"max_payload"`
	LogLevel      string   `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.gamesave/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gamesave", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("folder", fc.Folder, &cfg.Folder)
	s.setString("root", fc.Root, &cfg.Root)
	s.setString("platform", fc.Platform, &cfg.Platform)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setStrings("pack", fc.Packs, &cfg.Packs)

	if err := s.setDuration("tick", fc.TickInterval, &cfg.TickInterval); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setInt("max-payload", fc.MaxPayload, &cfg.MaxPayload)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
