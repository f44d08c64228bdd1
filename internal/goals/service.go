package goals

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/readpace/internal/identity"
	"github.com/verte-zerg/readpace/internal/model"
)

// ErrInvalidGoal is returned for malformed goal input.
var ErrInvalidGoal = errors.New("invalid goal")

// Store persists goals per user.
type Store interface {
	Writer
	InsertGoal(ctx context.Context, goal model.Goal) (int64, error)
	GetGoal(ctx context.Context, userID string, id int64) (*model.Goal, error)
	DeleteGoal(ctx context.Context, userID string, id int64) error
	ListGoals(ctx context.Context, userID string) ([]model.Goal, error)
}

// Service manages goal documents.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService constructs a goal service. A nil clock defaults to time.Now.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Create stores a new active goal.
func (s *Service) Create(ctx context.Context, userID string, typ model.GoalType, target float64, deadline time.Time) (model.Goal, error) {
	if userID == "" {
		return model.Goal{}, identity.ErrNotAuthenticated
	}
	if !typ.Valid() {
		return model.Goal{}, fmt.Errorf("%w: unknown type %q", ErrInvalidGoal, typ)
	}
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return model.Goal{}, fmt.Errorf("%w: target must be > 0", ErrInvalidGoal)
	}
	if deadline.IsZero() {
		return model.Goal{}, fmt.Errorf("%w: deadline is required", ErrInvalidGoal)
	}
	now := s.now()
	goal := model.Goal{
		UserID:    userID,
		Type:      typ,
		Target:    target,
		Deadline:  deadline,
		Status:    model.GoalActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.store.InsertGoal(ctx, goal)
	if err != nil {
		return model.Goal{}, fmt.Errorf("failed to create goal: %w", err)
	}
	goal.ID = id
	return goal, nil
}

// Change is a validated edit of a goal's user-controlled fields.
type Change func(*model.Goal) error

// SetTarget changes the goal target.
func SetTarget(target float64) Change {
	return func(g *model.Goal) error {
		if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
			return fmt.Errorf("%w: target must be > 0", ErrInvalidGoal)
		}
		g.Target = target
		return nil
	}
}

// SetDeadline changes the goal deadline.
func SetDeadline(deadline time.Time) Change {
	return func(g *model.Goal) error {
		if deadline.IsZero() {
			return fmt.Errorf("%w: deadline is required", ErrInvalidGoal)
		}
		g.Deadline = deadline
		return nil
	}
}

// Update applies changes to an existing goal. Status is never edited here.
// A missing goal or a signed-out user returns nil without error.
func (s *Service) Update(ctx context.Context, userID string, id int64, changes ...Change) (*model.Goal, error) {
	if userID == "" {
		return nil, nil
	}
	goal, err := s.store.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil {
		return nil, nil
	}
	next := *goal
	for _, change := range changes {
		if err := change(&next); err != nil {
			return nil, err
		}
	}
	next.UpdatedAt = s.now()
	if err := s.store.UpdateGoal(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return &next, nil
}

// Delete removes a goal. Missing goals and signed-out users are ignored.
func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return nil
	}
	if err := s.store.DeleteGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// List returns the user's goals, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]model.Goal, error) {
	if userID == "" {
		return nil, nil
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// Active filters goals still in progress.
func Active(goals []model.Goal) []model.Goal {
	return byStatus(goals, model.GoalActive)
}

// Completed filters goals that reached their target.
func Completed(goals []model.Goal) []model.Goal {
	return byStatus(goals, model.GoalCompleted)
}

// Failed filters goals that missed their deadline.
func Failed(goals []model.Goal) []model.Goal {
	return byStatus(goals, model.GoalFailed)
}

func byStatus(goals []model.Goal, status model.GoalStatus) []model.Goal {
	return lo.Filter(goals, func(g model.Goal, _ int) bool {
		return g.Status == status
	})
}

// ProgressPct reports progress toward the target, capped at 100.
func ProgressPct(goal model.Goal) float64 {
	if goal.Target <= 0 {
		return 0
	}
	return math.Min(goal.Current/goal.Target*100, 100)
}

// TypeLabel returns a display name for a goal type.
func TypeLabel(t model.GoalType) string {
	switch t {
	case model.GoalSpeed:
		return "Reading speed"
	case model.GoalTime:
		return "Practice time"
	case model.GoalFrequency:
		return "Practice frequency"
	case model.GoalComprehension:
		return "Comprehension"
	default:
		return string(t)
	}
}

// Unit returns the unit a goal type is measured in.
func Unit(t model.GoalType) string {
	switch t {
	case model.GoalSpeed:
		return "WPM"
	case model.GoalTime:
		return "minutes"
	case model.GoalFrequency:
		return "days"
	case model.GoalComprehension:
		return "%"
	default:
		return ""
	}
}
