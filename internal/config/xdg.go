package config

import (
	"os"
	"path/filepath"
)

const appName = "readpace"

// xdgHome returns $env, else $HOME joined with fallback, else ".".
func xdgHome(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome returns the XDG config home or ~/.config.
func XDGConfigHome() string {
	return xdgHome("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns the XDG data home or ~/.local/share.
func XDGDataHome() string {
	return xdgHome("XDG_DATA_HOME", ".local", "share")
}

func configDir(elem ...string) string {
	return filepath.Join(append([]string{XDGConfigHome(), appName}, elem...)...)
}

func dataDir(elem ...string) string {
	return filepath.Join(append([]string{XDGDataHome(), appName}, elem...)...)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string { return configDir("config.toml") }

// DefaultEnvPath returns the .env file read next to the config.
func DefaultEnvPath() string { return configDir(".env") }

// DefaultWordListDir holds user word lists that shadow the bundled ones.
func DefaultWordListDir() string { return configDir("wordlists") }

// DefaultTextDir is searched for local texts.
func DefaultTextDir() string { return dataDir("texts") }

// DefaultDBPath returns the SQLite database path.
func DefaultDBPath() string { return dataDir("readpace.db") }

// DefaultLogPath returns the structured log file.
func DefaultLogPath() string { return dataDir("readpace.log") }
