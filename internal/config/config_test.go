package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.WPM)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[practice]
method = "chunking"
wpm = 350
chunk = 4

[user]
id = "reader"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.WPM)
	assert.Equal(t, 350, *cfg.Practice.WPM)
	assert.Equal(t, 4, *cfg.Practice.ChunkSize)
	assert.Equal(t, "chunking", StringValue(cfg.Practice.Method, "rsvp"))
	assert.Equal(t, "reader", StringValue(cfg.User.ID, ""))
	assert.Nil(t, cfg.Practice.Step)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice]\nspeed = 3\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "practice.speed")
}

func TestLoadEnvAndApply(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("READPACE_LOG_LEVEL=warn\nREADPACE_DB="+filepath.Join(dir, "x.db")+"\n"), 0o644))
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDBPath, "")
	require.NoError(t, os.Unsetenv(EnvLogLevel))
	require.NoError(t, os.Unsetenv(EnvDBPath))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), envPath))

	var cfg FileConfig
	cfg.ApplyEnv()
	assert.Equal(t, "warn", StringValue(cfg.Log.Level, "info"))
	assert.Equal(t, filepath.Join(dir, "x.db"), DBPath())
}

func TestXDGPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv(EnvDBPath, "")

	assert.Equal(t, filepath.Join(dir, "readpace", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(dir, "readpace", "readpace.db"), DBPath())
	assert.Equal(t, filepath.Join(dir, "readpace", "wordlists"), DefaultWordListDir())
}
