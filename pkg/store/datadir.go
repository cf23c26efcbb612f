package store

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
)

const appName = "focusone"

// DefaultDataDir returns the OS-appropriate default data directory.
//
//   - macOS:   ~/Library/Application Support/focusone
//   - Linux:   $XDG_DATA_HOME/focusone (fallback ~/.local/share/focusone)
//   - Windows: %LOCALAPPDATA%\focusone (fallback %APPDATA%\focusone)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := homedir.Dir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, appName)
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}

// ResolveDataDir expands a leading ~ in dir, falling back to the default
// data directory when dir is empty.
func ResolveDataDir(dir string) (string, error) {
	if dir == "" {
		return DefaultDataDir(), nil
	}
	return homedir.Expand(dir)
}
