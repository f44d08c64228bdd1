// Package engine coordinates session recording, pacing, statistics and goals
// for the current user.
package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/readpace/internal/goals"
	"github.com/verte-zerg/readpace/internal/identity"
	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/pacing"
	"github.com/verte-zerg/readpace/internal/session"
	"github.com/verte-zerg/readpace/internal/stats"
)

// Store is the persistence the engine depends on.
type Store interface {
	session.Sink
	goals.Store
	ListProgress(ctx context.Context, userID string, limit int) ([]model.ProgressRecord, error)
	GetStats(ctx context.Context, userID string) (*model.UserStats, error)
	SaveStats(ctx context.Context, st model.UserStats) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source for every component.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine owns the per-user recorder and evaluator and sequences
// persistence around them.
type Engine struct {
	log       *zap.Logger
	store     Store
	userID    string
	now       func() time.Time
	recorder  *session.Recorder
	evaluator *pacing.Evaluator
	goalSvc   *goals.Service

	mu    sync.Mutex
	stats *model.UserStats
	goals []model.Goal
}

// New constructs an Engine for the user supplied by id.
func New(store Store, id identity.Provider, log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		store:  store,
		userID: id.UserID(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = log.With(zap.String("user_id", e.userID))
	e.recorder = session.New(e.userID, store, session.WithClock(e.now))
	e.evaluator = pacing.NewEvaluator(pacing.WithClock(e.now))
	e.goalSvc = goals.NewService(store, e.now)
	return e
}

// UserID returns the current user id, empty when signed out.
func (e *Engine) UserID() string {
	return e.userID
}

// Recorder exposes session queries.
func (e *Engine) Recorder() *session.Recorder {
	return e.recorder
}

// Evaluator exposes comprehension history.
func (e *Engine) Evaluator() *pacing.Evaluator {
	return e.evaluator
}

// StartSession begins a training session. It requires a signed-in user.
func (e *Engine) StartSession(method string, settings map[string]any) (model.TrainingSession, error) {
	if e.userID == "" {
		return model.TrainingSession{}, identity.ErrNotAuthenticated
	}
	s := e.recorder.Start(method, settings)
	e.log.Debug("session started", zap.String("session_id", s.ID), zap.String("method", method))
	return s, nil
}

// UpdateSession applies changes to an active session.
func (e *Engine) UpdateSession(id string, changes ...session.Change) error {
	return e.recorder.Update(id, changes...)
}

// CompleteSession finalizes a session and persists its progress record.
// Persistence failures are logged and returned.
func (e *Engine) CompleteSession(ctx context.Context, id string) (*model.ProgressRecord, error) {
	rec, err := e.recorder.Complete(ctx, id)
	if err != nil {
		e.log.Error("failed to save progress", zap.String("session_id", id), zap.Error(err))
		return rec, err
	}
	if rec != nil {
		e.log.Info("session completed",
			zap.String("session_id", id),
			zap.String("method", rec.Method),
			zap.Int("words_read", rec.WordsRead),
			zap.Float64("wpm", rec.WPM),
			zap.Int("duration_seconds", rec.DurationSeconds),
		)
	}
	return rec, nil
}

// CheckComprehension records a 1-5 self-rating and returns the pacing
// decision over the last window scores for method.
func (e *Engine) CheckComprehension(score float64, method string, wpm float64, window int) (model.ComprehensionScore, pacing.Decision) {
	rec := e.evaluator.Record(score, method, wpm)
	decision := pacing.ShouldAdjustSpeed(e.evaluator.RecentScores(window, method))
	e.log.Debug("comprehension recorded",
		zap.Float64("score", score),
		zap.String("method", method),
		zap.Stringer("decision", decision),
	)
	return rec, decision
}

// Refresh reloads history, recomputes stats and sweeps goals. Read failures
// are returned; stats and goal write failures are logged only. It is a no-op
// when signed out.
func (e *Engine) Refresh(ctx context.Context) error {
	if e.userID == "" {
		return nil
	}
	if err := e.ensureStats(ctx); err != nil {
		return err
	}

	var (
		records []model.ProgressRecord
		list    []model.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = e.store.ListProgress(gctx, e.userID, stats.HistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to load progress: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		list, err = e.goalSvc.List(gctx, e.userID)
		return err
	})
	if err := g.Wait(); err != nil {
		e.log.Error("failed to load history", zap.Error(err))
		return err
	}

	now := e.now()
	snapshot := stats.Recompute(e.userID, records, now)
	if err := e.store.SaveStats(ctx, snapshot); err != nil {
		e.log.Warn("failed to save stats", zap.Error(err))
	}

	swept, err := goals.Sweep(ctx, list, snapshot, now, e.store)
	if err != nil {
		e.log.Warn("failed to update goal progress", zap.Error(err))
	}

	e.mu.Lock()
	e.stats = &snapshot
	e.goals = swept
	e.mu.Unlock()
	return nil
}

// ensureStats loads the stored snapshot, initializing a zeroed one when absent.
func (e *Engine) ensureStats(ctx context.Context) error {
	st, err := e.store.GetStats(ctx, e.userID)
	if err != nil {
		e.log.Error("failed to load stats", zap.Error(err))
		return fmt.Errorf("failed to load stats: %w", err)
	}
	if st == nil {
		zero := stats.Recompute(e.userID, nil, e.now())
		if err := e.store.SaveStats(ctx, zero); err != nil {
			e.log.Warn("failed to initialize stats", zap.Error(err))
		}
		st = &zero
	}
	e.mu.Lock()
	e.stats = st
	e.mu.Unlock()
	return nil
}

// Stats returns the last loaded snapshot.
func (e *Engine) Stats() (model.UserStats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stats == nil {
		return model.UserStats{}, false
	}
	return *e.stats, true
}

// Goals returns the last loaded goals, newest first.
func (e *Engine) Goals() []model.Goal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.goals)
}

// CreateGoal stores a new goal and evaluates it against loaded stats.
func (e *Engine) CreateGoal(ctx context.Context, typ model.GoalType, target float64, deadline time.Time) (model.Goal, error) {
	goal, err := e.goalSvc.Create(ctx, e.userID, typ, target, deadline)
	if err != nil {
		e.log.Error("failed to create goal", zap.String("type", string(typ)), zap.Error(err))
		return model.Goal{}, err
	}
	if st, ok := e.Stats(); ok {
		swept, err := goals.Sweep(ctx, []model.Goal{goal}, st, e.now(), e.store)
		if err != nil {
			e.log.Warn("failed to update goal progress", zap.Int64("goal_id", goal.ID), zap.Error(err))
		}
		goal = swept[0]
	}
	e.mu.Lock()
	e.goals = append([]model.Goal{goal}, e.goals...)
	e.mu.Unlock()
	return goal, nil
}

// UpdateGoal edits a goal's target or deadline and re-evaluates it against
// the stats snapshot. Unknown ids return nil.
func (e *Engine) UpdateGoal(ctx context.Context, id int64, changes ...goals.Change) (*model.Goal, error) {
	goal, err := e.goalSvc.Update(ctx, e.userID, id, changes...)
	if err != nil {
		e.log.Error("failed to update goal", zap.Int64("goal_id", id), zap.Error(err))
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}
	if _, ok := e.Stats(); !ok {
		// Failure is logged by ensureStats; the edit itself is saved.
		_ = e.ensureStats(ctx)
	}
	if st, ok := e.Stats(); ok {
		swept, err := goals.Sweep(ctx, []model.Goal{*goal}, st, e.now(), e.store)
		if err != nil {
			e.log.Warn("failed to update goal progress", zap.Int64("goal_id", id), zap.Error(err))
		}
		goal = &swept[0]
	}
	e.mu.Lock()
	for i := range e.goals {
		if e.goals[i].ID == id {
			e.goals[i] = *goal
		}
	}
	e.mu.Unlock()
	return goal, nil
}

// DeleteGoal removes a goal. Unknown ids are ignored.
func (e *Engine) DeleteGoal(ctx context.Context, id int64) error {
	if err := e.goalSvc.Delete(ctx, e.userID, id); err != nil {
		e.log.Error("failed to delete goal", zap.Int64("goal_id", id), zap.Error(err))
		return err
	}
	e.mu.Lock()
	e.goals = slices.DeleteFunc(e.goals, func(g model.Goal) bool {
		return g.ID == id
	})
	e.mu.Unlock()
	return nil
}
