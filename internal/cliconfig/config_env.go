package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (GAMESAVE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("folder", os.Getenv("GAMESAVE_FOLDER"), &cfg.Folder)
	s.setString("root", os.Getenv("GAMESAVE_ROOT"), &cfg.Root)
	s.setString("platform", os.Getenv("GAMESAVE_PLATFORM"), &cfg.Platform)
	s.setString("log-level", os.Getenv("GAMESAVE_LOG_LEVEL"), &cfg.LogLevel)
	s.setListFromString("pack", os.Getenv("GAMESAVE_PACKS"), &cfg.Packs)

	if err := s.setDuration("tick", os.Getenv("GAMESAVE_TICK_INTERVAL"), &cfg.TickInterval); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("GAMESAVE_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}
	if err := s.setIntFromString("max-payload", os.Getenv("GAMESAVE_MAX_PAYLOAD"), &cfg.MaxPayload); err != nil {
		return err
	}

	return nil
}
