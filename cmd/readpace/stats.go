package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/readpace/internal/identity"
	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/stats"
	"github.com/verte-zerg/readpace/internal/statsui"
)

var (
	statsMethod      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMethod, "method", "", "method filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig()
	if err != nil {
		return err
	}

	a, err := openApp(statsPlain)
	if err != nil {
		return err
	}
	defer a.Close()

	userID := a.engine.UserID()
	if userID == "" {
		return identity.ErrNotAuthenticated
	}
	ctx := context.Background()
	if err := a.engine.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to refresh stats: %w", err)
	}

	if statsPlain {
		report, err := stats.BuildReport(ctx, a.store, userID, cfg, time.Now())
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return renderPlainReport(cmd.OutOrStdout(), report, cfg.CurveWindow)
	}

	m := statsui.NewModel(a.store, userID, cfg, time.Now)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func statsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be > 0")
	}
	return model.StatsConfig{
		Method:      statsMethod,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}, nil
}

func renderPlainReport(w io.Writer, report stats.Report, window int) error {
	if err := stats.RenderSummary(w, report.Stats); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.Records) == 0 {
		return nil
	}
	if err := stats.RenderMethods(w, report.Methods); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	newest := lo.Reverse(append([]model.ProgressRecord(nil), report.Records...))
	if err := stats.RenderHistory(w, newest); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurves(w, report.Records, window); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
