// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvDBPath   = "READPACE_DB"
	EnvLogLevel = "READPACE_LOG_LEVEL"
	EnvLogFile  = "READPACE_LOG_FILE"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	User     UserConfig     `toml:"user"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Method      *string `toml:"method"`
	WPM         *int    `toml:"wpm"`
	ChunkSize   *int    `toml:"chunk"`
	PassageSize *int    `toml:"passage"`
	Step        *int    `toml:"step"`
	MinWPM      *int    `toml:"min-wpm"`
	MaxWPM      *int    `toml:"max-wpm"`
	CheckWindow *int    `toml:"check-window"`
	Source      *string `toml:"source"`
	WordList    *string `toml:"wordlist"`
}

// UserConfig identifies the local user.
type UserConfig struct {
	ID *string `toml:"id"`
}

// LogConfig controls the structured log file.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadEnv loads KEY=VALUE pairs from a .env file without overriding variables
// already set. Missing files are ignored.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat env file: %w", err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides log settings from the environment.
func (c *FileConfig) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.Log.File = &v
	}
}

// DBPath returns the database path, honoring the environment override.
func DBPath() string {
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		return v
	}
	return DefaultDBPath()
}

// StringValue dereferences an optional string, falling back to def.
func StringValue(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return *v
}
