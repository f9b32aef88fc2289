// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// GOOS values the host CLI branches on.
const (
	Windows = "windows"
	Darwin  = "darwin"
)

// HomeEnv names the variable os.UserHomeDir reads on this platform.
func HomeEnv() string {
	if runtime.GOOS == Windows {
		return "USERPROFILE"
	}
	return "HOME"
}

// UserConfigBase returns the per-user settings directory that application
// folders live under: %APPDATA% on Windows, ~/Library/Application Support
// on macOS and $XDG_CONFIG_HOME (or ~/.config) elsewhere.
func UserConfigBase() (string, error) {
	return userConfigBase(runtime.GOOS, os.Getenv)
}

func userConfigBase(goos string, getenv func(string) string) (string, error) {
	switch goos {
	case Windows:
		if dir := getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		if profile := getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, "AppData", "Roaming"), nil
		}
		return "", errors.New("neither APPDATA nor USERPROFILE is set")
	case Darwin:
		home := getenv("HOME")
		if home == "" {
			return "", errors.New("HOME is not set")
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir, nil
		}
		home := getenv("HOME")
		if home == "" {
			return "", errors.New("neither XDG_CONFIG_HOME nor HOME is set")
		}
		return filepath.Join(home, ".config"), nil
	}
}
