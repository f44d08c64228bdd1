package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/readpace/internal/config"
	"github.com/verte-zerg/readpace/internal/identity"
	"github.com/verte-zerg/readpace/internal/methods"
	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/store"
	"github.com/verte-zerg/readpace/internal/text"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(config.EnvDBPath, filepath.Join(dir, "test.db"))
	t.Setenv(config.EnvLogFile, filepath.Join(dir, "test.log"))
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(identity.EnvUser, "tester")
	return dir
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateConfig(t *testing.T) {
	valid := model.Config{WPM: 300, ChunkSize: 3, PassageSize: 100, Step: 25, MinWPM: 100, MaxWPM: 1500, CheckWindow: 3}
	require.NoError(t, validateConfig(valid))

	cases := map[string]func(*model.Config){
		"--wpm":          func(c *model.Config) { c.WPM = 0 },
		"--chunk":        func(c *model.Config) { c.ChunkSize = -1 },
		"--passage":      func(c *model.Config) { c.PassageSize = 0 },
		"--step":         func(c *model.Config) { c.Step = 0 },
		"--min-wpm":      func(c *model.Config) { c.MaxWPM = 50 },
		"--check-window": func(c *model.Config) { c.CheckWindow = 0 },
	}
	for flag, mutate := range cases {
		cfg := valid
		mutate(&cfg)
		err := validateConfig(cfg)
		require.Error(t, err, flag)
		assert.Contains(t, err.Error(), flag)
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := &cobra.Command{}
	var wpm int
	var method string
	cmd.Flags().IntVar(&wpm, "wpm", 300, "")
	cmd.Flags().StringVar(&method, "method", "rsvp", "")
	require.NoError(t, cmd.Flags().Set("wpm", "420"))

	fileWPM := 250
	fileMethod := "chunking"
	applyConfig(cmd, "wpm", &wpm, &fileWPM)
	applyConfig(cmd, "method", &method, &fileMethod)
	applyConfig(cmd, "method", &method, nil)

	assert.Equal(t, 420, wpm)
	assert.Equal(t, "chunking", method)
}

func TestDefaultConfigTemplateKeysAreKnown(t *testing.T) {
	var lines []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		lines = append(lines, line)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.WPM)
	assert.Equal(t, defaultWPM, *cfg.Practice.WPM)
	assert.Equal(t, methods.DefaultID, config.StringValue(cfg.Practice.Method, ""))
	assert.Equal(t, "reader", config.StringValue(cfg.User.ID, ""))
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	name, args := editorCommand("/tmp/c.toml")
	assert.Equal(t, "vi", name)
	assert.Equal(t, []string{"/tmp/c.toml"}, args)

	t.Setenv("EDITOR", "code --wait")
	name, args = editorCommand("/tmp/c.toml")
	assert.Equal(t, "code", name)
	assert.Equal(t, []string{"--wait", "/tmp/c.toml"}, args)

	t.Setenv("VISUAL", "hx")
	name, _ = editorCommand("/tmp/c.toml")
	assert.Equal(t, "hx", name)
}

func TestWriteDefaultConfigKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readpace", "config.toml")
	require.NoError(t, writeDefaultConfig(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[practice]")

	require.NoError(t, os.WriteFile(path, []byte("[practice]\nwpm = 1\n"), 0o644))
	require.NoError(t, writeDefaultConfig(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[practice]\nwpm = 1\n", string(data))
}

func TestGoalsCommands(t *testing.T) {
	setupEnv(t)

	out, err := runCmd(t, "goals", "add", "--type", "speed", "--target", "300", "--deadline", "2099-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Created goal 1: Reading speed 300 WPM by 2099-01-31")

	out, err = runCmd(t, "goals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0/300 WPM")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "exact")

	out, err = runCmd(t, "goals", "list", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "No goals found.")

	out, err = runCmd(t, "goals", "edit", "1", "--target", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated goal 1: target 250 WPM")

	out, err = runCmd(t, "goals", "edit", "42", "--target", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal 42 not found, nothing changed")

	out, err = runCmd(t, "goals", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted goal 1")

	out, err = runCmd(t, "goals")
	require.NoError(t, err)
	assert.Contains(t, out, "No goals found.")
}

func TestGoalsAddRejectsBadInput(t *testing.T) {
	setupEnv(t)

	_, err := runCmd(t, "goals", "add", "--type", "volume", "--target", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown goal type")

	_, err = runCmd(t, "goals", "add", "--type", "time", "--target=-1")
	require.Error(t, err)

	_, err = runCmd(t, "goals", "rm", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid goal id")
}

func TestStatsPlain(t *testing.T) {
	dir := setupEnv(t)

	out, err := runCmd(t, "stats", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found.")

	st, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	now := time.Now().UTC()
	for i, wpm := range []float64{250, 300, 350} {
		_, err := st.SaveProgress(context.Background(), model.ProgressRecord{
			UserID:          "tester",
			Method:          "rsvp",
			Date:            now.Add(time.Duration(i-3) * time.Hour),
			DurationSeconds: 120,
			WordsRead:       int(wpm) * 2,
			WPM:             wpm,
			Comprehension:   80,
			CreatedAt:       now,
		})
		require.NoError(t, err)
	}
	require.NoError(t, st.Close())

	out, err = runCmd(t, "stats", "--plain", "--last", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Sessions: 3")
	assert.Contains(t, out, "History")
	assert.Contains(t, out, "rsvp")

	_, err = runCmd(t, "stats", "--plain", "--since", "yesterday")
	require.Error(t, err)
}

func TestMethodsCommand(t *testing.T) {
	out, err := runCmd(t, "methods")
	require.NoError(t, err)
	for _, id := range methods.IDs() {
		assert.Contains(t, out, id)
	}

	rsvp, ok := methods.ByID("rsvp")
	require.True(t, ok)
	out, err = runCmd(t, "methods", "rsvp")
	require.NoError(t, err)
	assert.Contains(t, out, rsvp.Name)
	assert.Contains(t, out, rsvp.Description)

	_, err = runCmd(t, "methods", "telepathy")
	require.Error(t, err)
}

func TestSourcesCommand(t *testing.T) {
	setupEnv(t)
	out, err := runCmd(t, "sources")
	require.NoError(t, err)
	assert.Contains(t, out, "sample-1")
	assert.Contains(t, out, "aozora-1")
	assert.Contains(t, out, "general")
}

func TestPapersCommand(t *testing.T) {
	setupEnv(t)
	out, err := runCmd(t, "papers")
	require.NoError(t, err)
	assert.Contains(t, out, "paper-1")
	assert.Contains(t, out, "paper-3")

	out, err = runCmd(t, "papers", "vaswani")
	require.NoError(t, err)
	assert.Contains(t, out, "Attention Is All You Need")
	assert.NotContains(t, out, "paper-3")

	out, err = runCmd(t, "papers", "--origin", "jstage", "attention")
	require.NoError(t, err)
	assert.Contains(t, out, "No papers found.")

	_, err = runCmd(t, "papers", "--origin", "pubmed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown origin")
}

func TestChunkCommand(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(path, []byte("one two three four five"), 0o644))

	out, err := runCmd(t, "chunk", "--size", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "one two\nthree four\nfive\n", out)

	_, err = runCmd(t, "chunk", "--size", "0", path)
	require.Error(t, err)
}

func TestResolveSource(t *testing.T) {
	src, err := resolveSource("sample-2", "")
	require.NoError(t, err)
	assert.Equal(t, "sample-2", src.ID)

	src, err = resolveSource("sample-2", "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", src.Location)

	src, err = resolveSource("paper-2", "")
	require.NoError(t, err)
	assert.Equal(t, text.KindPaper, src.Kind)

	_, err = resolveSource("nope", "")
	require.Error(t, err)
}

func TestResolveDeadline(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	got, err := resolveDeadline("", 7, now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 7), got)

	got, err = resolveDeadline("2024-06-30", 7, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30 23:59:59", got.Format("2006-01-02 15:04:05"))

	_, err = resolveDeadline("", 0, now)
	require.Error(t, err)
}
