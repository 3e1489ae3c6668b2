// Package xdg resolves configuration lookup paths following the XDG
// Base Directory Specification.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigHome returns the base directory for user-specific configuration files.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
		if home == "" {
			home = "/tmp"
		}
	}
	return filepath.Join(home, ".config")
}

// ConfigDirs returns the preference-ordered application config directories:
// the user's config home first, then the system-wide config directories.
func ConfigDirs(app string) []string {
	dirs := []string{filepath.Join(ConfigHome(), app)}

	system := os.Getenv("XDG_CONFIG_DIRS")
	if system == "" {
		system = "/etc/xdg"
	}
	for _, dir := range filepath.SplitList(system) {
		if dir == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, app))
	}
	return dirs
}
