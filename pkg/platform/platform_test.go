package platform

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"linux", Linux, false},
		{"Darwin", MacOS, false},
		{"macos", MacOS, false},
		{" windows ", Windows, false},
		{"android", Android, false},
		{"ios", IOS, false},
		{"plan9", 0, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestString_RoundTrips(t *testing.T) {
	for _, p := range []Platform{Linux, MacOS, Windows, Android, IOS} {
		got, err := Parse(p.String())
		if err != nil || got != p {
			t.Errorf("Parse(%q) = %v, %v; want %v", p.String(), got, err, p)
		}
	}
	if got := Platform(42).String(); got != "unknown" {
		t.Errorf("Platform(42).String() = %q, want unknown", got)
	}
}

func TestSaveRoot(t *testing.T) {
	env := Env{Home: "/home/ann", LocalAppData: `C:\Users\ann\AppData\Local`, DataDir: "/data/app/files"}
	tests := []struct {
		p    Platform
		want string
	}{
		{Linux, "/home/ann"},
		{MacOS, "/home/ann/Library/Application Support"},
		{Windows, `C:\Users\ann\AppData\Local`},
		{Android, "/data/app/files"},
		{IOS, "/data/app/files"},
	}
	for _, tt := range tests {
		got, err := SaveRoot(tt.p, env)
		if err != nil {
			t.Errorf("SaveRoot(%v) error: %v", tt.p, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SaveRoot(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestSaveRoot_Missing(t *testing.T) {
	for _, p := range []Platform{Linux, MacOS, Windows, Android, IOS} {
		if _, err := SaveRoot(p, Env{}); !errors.Is(err, ErrNoSaveRoot) {
			t.Errorf("SaveRoot(%v, empty) error = %v, want ErrNoSaveRoot", p, err)
		}
	}
	if _, err := SaveRoot(Platform(9), Env{Home: "/h"}); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("SaveRoot(unknown) error = %v, want ErrUnknownPlatform", err)
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		p     Platform
		parts []string
		want  string
	}{
		{Linux, []string{"game", "slot1.sav"}, "game/slot1.sav"},
		{Windows, []string{"game", "slot1.sav"}, `game\slot1.sav`},
		{Linux, []string{"/root/", "/game", "s"}, "/root/game/s"},
		{Linux, []string{"", "s"}, "s"},
		{Windows, []string{`C:\x\`, "g"}, `C:\x\g`},
	}
	for _, tt := range tests {
		if got := Join(tt.p, tt.parts...); got != tt.want {
			t.Errorf("Join(%v, %q) = %q, want %q", tt.p, tt.parts, got, tt.want)
		}
	}
	if got := SavePath(Linux, "game", "a.sav"); got != "game/a.sav" {
		t.Errorf("SavePath = %q", got)
	}
}
