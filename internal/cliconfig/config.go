package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/gamesave/pkg/log"
	"github.com/bft-labs/gamesave/pkg/platform"
)

// DefaultFolder is the save folder used when none is configured.
const DefaultFolder = "gamesave"

// Config holds CLI configuration for gamesave.
type Config struct {
	// Folder is the save folder under the save root.
	Folder string
	// Root overrides the platform save root with a directory on disk.
	Root string
	// Platform names the target platform. Empty means the host.
	Platform string
	// Packs lists zip archives searched before the save root on load.
	Packs []string

	TickInterval  time.Duration
	WatchDebounce time.Duration
	MaxPayload    int
	LogLevel      string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Folder:        DefaultFolder,
		TickInterval:  16 * time.Millisecond,
		WatchDebounce: 200 * time.Millisecond,
		MaxPayload:    64 << 20, // 64MB
		LogLevel:      "info",
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	c.Folder = strings.Trim(c.Folder, `/\`)
	if c.Folder == "" {
		return fmt.Errorf("folder is required")
	}
	if c.Platform != "" {
		p, err := platform.Parse(c.Platform)
		if err != nil {
			return err
		}
		c.Platform = p.String()
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick interval must not be negative")
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch debounce must not be negative")
	}
	if c.MaxPayload < 0 {
		return fmt.Errorf("max payload must not be negative")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// TargetPlatform returns the configured platform, or the host when unset.
// It assumes Validate has succeeded.
func (c Config) TargetPlatform() platform.Platform {
	if c.Platform == "" {
		return platform.Host()
	}
	p, err := platform.Parse(c.Platform)
	if err != nil {
		return platform.Host()
	}
	return p
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list value if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setListFromString splits a comma-separated list, dropping blank entries.
func (s *configSetter) setListFromString(flag, value string, dst *[]string) {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	s.setStrings(flag, out, dst)
}
