// Package main provides the CLI entrypoint for readpace.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/readpace/internal/config"
	"github.com/verte-zerg/readpace/internal/generator"
	"github.com/verte-zerg/readpace/internal/identity"
	"github.com/verte-zerg/readpace/internal/methods"
	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/pacing"
	"github.com/verte-zerg/readpace/internal/text"
	"github.com/verte-zerg/readpace/internal/tui"
	"github.com/verte-zerg/readpace/internal/wordlist"
)

const (
	defaultWPM         = 300
	defaultPassage     = 100
	defaultCheckWindow = 3
	defaultSource      = "sample-1"
	defaultCurveWindow = 5
)

var (
	practiceMethod      string
	practiceWPM         int
	practiceChunk       int
	practicePassage     int
	practiceStep        int
	practiceMinWPM      int
	practiceMaxWPM      int
	practiceCheckWindow int
	practiceSource      string
	practiceFile        string
	practiceWordList    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "readpace",
		Short:         "Terminal speed-reading trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMethod, "method", methods.DefaultID, "reading method (see `readpace methods`)")
	rootCmd.Flags().IntVar(&practiceWPM, "wpm", defaultWPM, "starting speed in words per minute")
	rootCmd.Flags().IntVar(&practiceChunk, "chunk", 0, "words per chunk (default: method's chunk size)")
	rootCmd.Flags().IntVar(&practicePassage, "passage", defaultPassage, "words per passage before a comprehension check")
	rootCmd.Flags().IntVar(&practiceStep, "step", pacing.DefaultStep, "WPM change per pacing decision")
	rootCmd.Flags().IntVar(&practiceMinWPM, "min-wpm", pacing.DefaultMinWPM, "lowest pace")
	rootCmd.Flags().IntVar(&practiceMaxWPM, "max-wpm", pacing.DefaultMaxWPM, "highest pace")
	rootCmd.Flags().IntVar(&practiceCheckWindow, "check-window", defaultCheckWindow, "recent comprehension checks used for pacing")
	rootCmd.Flags().StringVar(&practiceSource, "source", defaultSource, "text source id (see `readpace sources` and `readpace papers`)")
	rootCmd.Flags().StringVar(&practiceFile, "file", "", "read a local text file instead of a catalog source")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", wordlist.DefaultID, "word list for drill methods")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newGoalsCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newSourcesCmd())
	rootCmd.AddCommand(newPapersCmd())
	rootCmd.AddCommand(newChunkCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.engine.UserID() == "" {
		logErrln("No user found. Set [user] id in the config or READPACE_USER.")
		return identity.ErrNotAuthenticated
	}

	p := a.fileCfg.Practice
	applyConfig(cmd, "method", &practiceMethod, p.Method)
	applyConfig(cmd, "wpm", &practiceWPM, p.WPM)
	applyConfig(cmd, "chunk", &practiceChunk, p.ChunkSize)
	applyConfig(cmd, "passage", &practicePassage, p.PassageSize)
	applyConfig(cmd, "step", &practiceStep, p.Step)
	applyConfig(cmd, "min-wpm", &practiceMinWPM, p.MinWPM)
	applyConfig(cmd, "max-wpm", &practiceMaxWPM, p.MaxWPM)
	applyConfig(cmd, "check-window", &practiceCheckWindow, p.CheckWindow)
	applyConfig(cmd, "source", &practiceSource, p.Source)
	applyConfig(cmd, "wordlist", &practiceWordList, p.WordList)

	method, ok := methods.ByID(practiceMethod)
	if !ok {
		return fmt.Errorf("unknown method %q (available: %s)", practiceMethod, strings.Join(methods.IDs(), ", "))
	}
	if practiceChunk <= 0 {
		practiceChunk = method.ChunkSize
	}

	cfg := model.Config{
		Method:      method.ID,
		WPM:         practiceWPM,
		ChunkSize:   practiceChunk,
		PassageSize: practicePassage,
		Step:        practiceStep,
		MinWPM:      practiceMinWPM,
		MaxWPM:      practiceMaxWPM,
		CheckWindow: practiceCheckWindow,
		SourceID:    practiceSource,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	ctx := context.Background()
	var (
		content    text.Content
		drillWords []string
	)
	if method.Mode == methods.ModeDrill {
		drillWords, err = wordlist.Load(practiceWordList, config.DefaultWordListDir())
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
		cfg.WordListID = practiceWordList
		cfg.SourceID = ""
		content = text.Content{Title: method.Name}
	} else {
		src, err := resolveSource(practiceSource, practiceFile)
		if err != nil {
			return err
		}
		cfg.SourceID = src.ID
		loader := text.NewLoader(config.DefaultTextDir())
		loader.ChunkSize = cfg.ChunkSize
		content, err = loader.Load(ctx, src)
		if err != nil {
			return fmt.Errorf("failed to load text: %w", err)
		}
	}

	if err := a.engine.Refresh(ctx); err != nil {
		logErrf("failed to load stats: %v\n", err)
	}

	units := tui.Units(method.Mode, cfg.ChunkSize, content, drillWords, generator.New())
	title := content.Title
	if title == "" {
		title = method.Name
	}
	m := tui.NewModel(cfg, a.engine, fmt.Sprintf("%s · %s", method.Name, title), units)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveSource picks a local file when given, otherwise a catalog entry.
func resolveSource(id, file string) (text.Source, error) {
	if strings.TrimSpace(file) != "" {
		return text.Source{ID: "file:" + file, Name: file, Kind: text.KindLocal, Location: file}, nil
	}
	src, ok := text.Find(id)
	if !ok {
		return text.Source{}, fmt.Errorf("unknown source %q (see `readpace sources` and `readpace papers`)", id)
	}
	return src, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.WPM <= 0 {
		return fmt.Errorf("--wpm must be > 0")
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("--chunk must be > 0")
	}
	if cfg.PassageSize <= 0 {
		return fmt.Errorf("--passage must be > 0")
	}
	if cfg.Step <= 0 {
		return fmt.Errorf("--step must be > 0")
	}
	if cfg.MinWPM <= 0 || cfg.MaxWPM < cfg.MinWPM {
		return fmt.Errorf("--min-wpm must be > 0 and <= --max-wpm")
	}
	if cfg.CheckWindow <= 0 {
		return fmt.Errorf("--check-window must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
