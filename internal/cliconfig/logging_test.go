package cliconfig

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLogger_Level(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := Logger(tt.in).GetLevel(); got != tt.want {
			t.Errorf("Logger(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}
}
