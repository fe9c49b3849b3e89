// Package config resolves docgen's directories and loads its settings.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "docgen"

// Dir returns the docgen configuration directory.
//
// Resolution:
//   - $DOCGEN_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/docgen if set (respects XDG on any platform)
//   - %AppData%/docgen on Windows
//   - ~/.config/docgen on macOS and Linux
func Dir() string {
	if dir := os.Getenv("DOCGEN_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// DataDir returns the directory holding the stored session state.
//
// Resolution:
//   - $DOCGEN_DATA_HOME if set
//   - $XDG_DATA_HOME/docgen if set
//   - %LocalAppData%/docgen on Windows
//   - ~/.local/share/docgen on macOS and Linux
func DataDir() string {
	if dir := os.Getenv("DOCGEN_DATA_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", AppName)
}
