package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Folder != DefaultFolder {
		t.Errorf("Folder = %v, want %v", cfg.Folder, DefaultFolder)
	}
	if cfg.TickInterval != 16*time.Millisecond {
		t.Errorf("TickInterval = %v, want 16ms", cfg.TickInterval)
	}
	if cfg.MaxPayload != 64<<20 {
		t.Errorf("MaxPayload = %v, want 64MB", cfg.MaxPayload)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name         string
		config       Config
		wantErr      bool
		wantFolder   string
		wantPlatform string
	}{
		{
			name:       "valid minimal config",
			config:     Config{Folder: "mygame"},
			wantFolder: "mygame",
		},
		{
			name:    "missing folder",
			config:  Config{},
			wantErr: true,
		},
		{
			name:       "separators trimmed from folder",
			config:     Config{Folder: "/mygame\\"},
			wantFolder: "mygame",
		},
		{
			name:         "platform alias normalized",
			config:       Config{Folder: "g", Platform: "Darwin"},
			wantFolder:   "g",
			wantPlatform: "macos",
		},
		{
			name:    "unknown platform",
			config:  Config{Folder: "g", Platform: "amiga"},
			wantErr: true,
		},
		{
			name:    "negative tick",
			config:  Config{Folder: "g", TickInterval: -time.Second},
			wantErr: true,
		},
		{
			name:    "negative max payload",
			config:  Config{Folder: "g", MaxPayload: -1},
			wantErr: true,
		},
		{
			name:    "bad log level",
			config:  Config{Folder: "g", LogLevel: "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.config.Folder != tt.wantFolder {
				t.Errorf("Folder = %q, want %q", tt.config.Folder, tt.wantFolder)
			}
			if tt.config.Platform != tt.wantPlatform {
				t.Errorf("Platform = %q, want %q", tt.config.Platform, tt.wantPlatform)
			}
		})
	}
}

func TestConfig_TargetPlatform(t *testing.T) {
	cfg := Config{Platform: "windows"}
	if got := cfg.TargetPlatform().String(); got != "windows" {
		t.Errorf("TargetPlatform() = %v, want windows", got)
	}
}

func TestConfigSetter_RespectsChanged(t *testing.T) {
	s := newConfigSetter(map[string]bool{"folder": true})

	folder := "flag"
	s.setString("folder", "file", &folder)
	if folder != "flag" {
		t.Errorf("folder = %v, want flag", folder)
	}

	root := ""
	s.setString("root", "", &root)
	if root != "" {
		t.Errorf("empty value should not apply, got %v", root)
	}

	n := 5
	s.setInt("max-payload", 0, &n)
	if n != 5 {
		t.Errorf("non-positive value should not apply, got %d", n)
	}
}

func TestConfigSetter_ListFromString(t *testing.T) {
	s := newConfigSetter(nil)
	var packs []string
	s.setListFromString("pack", " a.zip, ,b.zip ", &packs)
	if len(packs) != 2 || packs[0] != "a.zip" || packs[1] != "b.zip" {
		t.Errorf("packs = %v, want [a.zip b.zip]", packs)
	}

	s.setListFromString("pack", " , ", &packs)
	if len(packs) != 2 {
		t.Errorf("blank list should not apply, got %v", packs)
	}
}
