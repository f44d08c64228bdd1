package stats

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/readpace/internal/model"
)

// HistoryLimit caps how many progress records are loaded for a recompute.
const HistoryLimit = 1000

// Source provides the persisted data a report is built from.
type Source interface {
	ListProgress(ctx context.Context, userID string, limit int) ([]model.ProgressRecord, error)
	ListGoals(ctx context.Context, userID string) ([]model.Goal, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Stats   model.UserStats
	Records []model.ProgressRecord
	Methods []MethodSummary
	Goals   []model.Goal
}

// BuildReport loads and prepares data for stats rendering. Stats cover the
// whole history while Records are filtered by cfg and sorted oldest first.
func BuildReport(ctx context.Context, src Source, userID string, cfg model.StatsConfig, now time.Time) (Report, error) {
	var (
		records []model.ProgressRecord
		goals   []model.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = src.ListProgress(gctx, userID, HistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to list progress: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = src.ListGoals(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	filtered := FilterRecords(records, cfg)
	return Report{
		Stats:   Recompute(userID, records, now),
		Records: filtered,
		Methods: SummarizeMethods(filtered),
		Goals:   goals,
	}, nil
}

// FilterRecords applies method, since and last-N filters and returns the
// result in chronological order.
func FilterRecords(records []model.ProgressRecord, cfg model.StatsConfig) []model.ProgressRecord {
	out := lo.Filter(records, func(r model.ProgressRecord, _ int) bool {
		if cfg.Method != "" && r.Method != cfg.Method {
			return false
		}
		return cfg.Since == nil || !r.Date.Before(*cfg.Since)
	})
	slices.SortStableFunc(out, func(a, b model.ProgressRecord) int {
		return a.Date.Compare(b.Date)
	})
	if cfg.Last > 0 && len(out) > cfg.Last {
		out = out[len(out)-cfg.Last:]
	}
	return out
}
