package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/readpace/internal/config"
	"github.com/verte-zerg/readpace/internal/methods"
	"github.com/verte-zerg/readpace/internal/pacing"
	"github.com/verte-zerg/readpace/internal/wordlist"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	name, args := editorCommand(path)
	editor := exec.Command(name, args...)
	editor.Stdin, editor.Stdout, editor.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := editor.Run(); err != nil {
		return fmt.Errorf("failed to open editor %s: %w", name, err)
	}
	return nil
}

// editorCommand builds the command line from $VISUAL or $EDITOR, falling
// back to vi. Extra words in the variable become arguments.
func editorCommand(path string) (string, []string) {
	parts := strings.Fields(os.Getenv("VISUAL"))
	if len(parts) == 0 {
		parts = strings.Fields(os.Getenv("EDITOR"))
	}
	if len(parts) == 0 {
		parts = []string{"vi"}
	}
	return parts[0], append(parts[1:], path)
}

// writeDefaultConfig creates the commented template unless a file exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if _, err := f.WriteString(defaultConfigTemplate()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	return f.Close()
}

// applyConfig copies a file value into target unless the flag was set.
func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# readpace configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# method = %q        # Reading method (see: readpace methods)
# wpm = %d              # Starting words per minute
# chunk = 3              # Words per chunk (default: method's chunk size)
# passage = %d          # Words per passage before a comprehension check
# step = %d              # WPM change per pacing decision
# min-wpm = %d          # Lowest pace
# max-wpm = %d         # Highest pace
# check-window = %d       # Recent checks used for pacing
# source = %q     # Text source (see: readpace sources)
# wordlist = %q   # Word list for drill methods

[user]
# id = "reader"          # Overridden by %s

[log]
# level = "info"         # debug, info, warn, error
# file = "/path/to/readpace.log"
`,
		methods.DefaultID,
		defaultWPM,
		defaultPassage,
		pacing.DefaultStep,
		pacing.DefaultMinWPM,
		pacing.DefaultMaxWPM,
		defaultCheckWindow,
		defaultSource,
		wordlist.DefaultID,
		"READPACE_USER",
	)
}
