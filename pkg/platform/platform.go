// Package platform resolves where save files live on each target platform.
//
// Everything here is a pure function of an explicit Platform tag and Env;
// HostEnv and Host are the only functions that look at the running process.
package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Platform identifies a target platform.
type Platform int

const (
	Linux Platform = iota
	MacOS
	Windows
	Android
	IOS
)

var (
	ErrUnknownPlatform = errors.New("platform: unknown platform")
	ErrNoSaveRoot      = errors.New("platform: save root unavailable")
)

var names = map[Platform]string{
	Linux:   "linux",
	MacOS:   "macos",
	Windows: "windows",
	Android: "android",
	IOS:     "ios",
}

// String returns the lowercase platform name.
func (p Platform) String() string {
	if n, ok := names[p]; ok {
		return n
	}
	return "unknown"
}

// Parse maps a platform name to its tag. It accepts the names returned by
// String as well as the matching runtime.GOOS values, case-insensitively.
func Parse(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux", "freebsd", "openbsd", "netbsd":
		return Linux, nil
	case "macos", "darwin", "mac":
		return MacOS, nil
	case "windows", "win":
		return Windows, nil
	case "android":
		return Android, nil
	case "ios":
		return IOS, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// Host returns the tag of the running platform, defaulting to Linux for
// other unix-likes.
func Host() Platform {
	if p, err := Parse(runtime.GOOS); err == nil {
		return p
	}
	return Linux
}

// Env holds the process-specific inputs to save root resolution.
type Env struct {
	// Home is the user's home directory.
	Home string
	// LocalAppData is %LOCALAPPDATA% on Windows.
	LocalAppData string
	// DataDir is the app-private files directory on mobile platforms,
	// supplied by the host application.
	DataDir string
}

// HostEnv reads Env from the running process. DataDir is taken from
// GAMESAVE_DATA_DIR since mobile hosts have no standard variable for it.
func HostEnv() Env {
	home, _ := os.UserHomeDir()
	return Env{
		Home:         home,
		LocalAppData: os.Getenv("LOCALAPPDATA"),
		DataDir:      os.Getenv("GAMESAVE_DATA_DIR"),
	}
}

// SaveRoot returns the directory save folders are created under.
func SaveRoot(p Platform, env Env) (string, error) {
	var root string
	switch p {
	case Linux:
		root = env.Home
	case MacOS:
		if env.Home != "" {
			root = Join(p, env.Home, "Library", "Application Support")
		}
	case Windows:
		root = env.LocalAppData
	case Android, IOS:
		root = env.DataDir
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownPlatform, int(p))
	}
	if root == "" {
		return "", fmt.Errorf("%w on %s", ErrNoSaveRoot, p)
	}
	return root, nil
}

// Separator returns the path separator used on p.
func Separator(p Platform) byte {
	if p == Windows {
		return '\\'
	}
	return '/'
}

// Join concatenates non-empty parts with p's separator, without doubling
// separators at the seams.
func Join(p Platform, parts ...string) string {
	sep := string(Separator(p))
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			s := b.String()
			if !strings.HasSuffix(s, sep) {
				b.WriteString(sep)
			}
			part = strings.TrimLeft(part, sep)
		}
		b.WriteString(part)
	}
	return b.String()
}

// SavePath returns the location of filename inside folder, relative to the
// save root.
func SavePath(p Platform, folder, filename string) string {
	return Join(p, folder, filename)
}
