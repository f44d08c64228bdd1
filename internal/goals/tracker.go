// Package goals evaluates user goals against aggregate statistics.
package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/readpace/internal/model"
)

// Basis describes how a goal's current value was derived.
type Basis int

const (
	// BasisExact is a direct reading of the tracked metric.
	BasisExact Basis = iota
	// BasisWindowIgnored uses all-time practice minutes regardless of the
	// goal's weekly or monthly window.
	BasisWindowIgnored
	// BasisStreakProxy stands in the current streak for a windowed session count.
	BasisStreakProxy
	// BasisPlaceholder is a fixed value; comprehension progress is not computed yet.
	BasisPlaceholder
)

func (b Basis) String() string {
	switch b {
	case BasisWindowIgnored:
		return "window-ignored"
	case BasisStreakProxy:
		return "streak-proxy"
	case BasisPlaceholder:
		return "placeholder"
	default:
		return "exact"
	}
}

// PlaceholderComprehension is reported for every comprehension goal.
const PlaceholderComprehension = 80

// Measurement is a goal's current value and its derivation.
type Measurement struct {
	Value float64
	Basis Basis
}

// Measure computes the current value of goal from stats.
// TODO: differentiate weekly and monthly time goals once progress records
// are windowed by deadline.
func Measure(goal model.Goal, st model.UserStats) Measurement {
	switch goal.Type {
	case model.GoalSpeed:
		return Measurement{Value: float64(st.AverageWPM), Basis: BasisExact}
	case model.GoalTime:
		return Measurement{Value: float64(st.TotalPracticeTime) / 60, Basis: BasisWindowIgnored}
	case model.GoalFrequency:
		return Measurement{Value: float64(st.CurrentStreak), Basis: BasisStreakProxy}
	default:
		return Measurement{Value: PlaceholderComprehension, Basis: BasisPlaceholder}
	}
}

// Evaluate recomputes current and status for an active goal. Completed and
// failed goals are returned unchanged. The bool reports whether anything changed.
func Evaluate(goal model.Goal, st model.UserStats, now time.Time) (model.Goal, bool) {
	if goal.Status != model.GoalActive {
		return goal, false
	}
	next := goal
	next.Current = Measure(goal, st).Value
	switch {
	case next.Current >= next.Target:
		next.Status = model.GoalCompleted
	case now.After(next.Deadline):
		next.Status = model.GoalFailed
	}
	changed := next.Current != goal.Current || next.Status != goal.Status
	if changed {
		next.UpdatedAt = now
	}
	return next, changed
}

// Writer persists evaluated goals.
type Writer interface {
	UpdateGoal(ctx context.Context, goal model.Goal) error
}

// Sweep evaluates every goal and writes through only those that changed.
// All goals are returned with their evaluated values; write failures are joined.
func Sweep(ctx context.Context, goals []model.Goal, st model.UserStats, now time.Time, w Writer) ([]model.Goal, error) {
	out := make([]model.Goal, len(goals))
	var errs []error
	for i, goal := range goals {
		next, changed := Evaluate(goal, st, now)
		out[i] = next
		if !changed {
			continue
		}
		if err := w.UpdateGoal(ctx, next); err != nil {
			errs = append(errs, fmt.Errorf("failed to update goal %d: %w", goal.ID, err))
		}
	}
	return out, errors.Join(errs...)
}
