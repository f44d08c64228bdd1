package goals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/readpace/internal/model"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type recordingWriter struct {
	updated []model.Goal
	failID  int64
}

func (w *recordingWriter) UpdateGoal(_ context.Context, goal model.Goal) error {
	if goal.ID == w.failID {
		return errors.New("write failed")
	}
	w.updated = append(w.updated, goal)
	return nil
}

func activeGoal(id int64, typ model.GoalType, target, current float64, deadline time.Time) model.Goal {
	return model.Goal{
		ID:       id,
		UserID:   "user-1",
		Type:     typ,
		Target:   target,
		Current:  current,
		Deadline: deadline,
		Status:   model.GoalActive,
	}
}

func TestMeasureBases(t *testing.T) {
	st := model.UserStats{AverageWPM: 420, TotalPracticeTime: 5400, CurrentStreak: 6}

	tests := []struct {
		typ   model.GoalType
		value float64
		basis Basis
	}{
		{model.GoalSpeed, 420, BasisExact},
		{model.GoalTime, 90, BasisWindowIgnored},
		{model.GoalFrequency, 6, BasisStreakProxy},
		{model.GoalComprehension, PlaceholderComprehension, BasisPlaceholder},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got := Measure(model.Goal{Type: tt.typ}, st)
			assert.Equal(t, tt.value, got.Value)
			assert.Equal(t, tt.basis, got.Basis)
		})
	}
}

func TestComprehensionProgressIsNotComputed(t *testing.T) {
	low := Measure(model.Goal{Type: model.GoalComprehension}, model.UserStats{})
	high := Measure(model.Goal{Type: model.GoalComprehension}, model.UserStats{AverageWPM: 900})
	assert.Equal(t, BasisPlaceholder, low.Basis)
	assert.Equal(t, low, high)
	assert.Equal(t, "placeholder", low.Basis.String())
}

func TestEvaluateTransitions(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name        string
		goal        model.Goal
		stats       model.UserStats
		wantStatus  model.GoalStatus
		wantCurrent float64
		wantChanged bool
	}{
		{
			name:        "reaches target",
			goal:        activeGoal(1, model.GoalSpeed, 500, 0, tomorrow),
			stats:       model.UserStats{AverageWPM: 500},
			wantStatus:  model.GoalCompleted,
			wantCurrent: 500,
			wantChanged: true,
		},
		{
			name:        "past deadline",
			goal:        activeGoal(2, model.GoalSpeed, 500, 100, yesterday),
			stats:       model.UserStats{AverageWPM: 100},
			wantStatus:  model.GoalFailed,
			wantCurrent: 100,
			wantChanged: true,
		},
		{
			name:        "still active",
			goal:        activeGoal(3, model.GoalSpeed, 500, 100, tomorrow),
			stats:       model.UserStats{AverageWPM: 100},
			wantStatus:  model.GoalActive,
			wantCurrent: 100,
			wantChanged: false,
		},
		{
			name:        "progress without transition",
			goal:        activeGoal(4, model.GoalTime, 120, 10, tomorrow),
			stats:       model.UserStats{TotalPracticeTime: 1800},
			wantStatus:  model.GoalActive,
			wantCurrent: 30,
			wantChanged: true,
		},
		{
			name:        "completed wins over deadline",
			goal:        activeGoal(5, model.GoalFrequency, 3, 0, yesterday),
			stats:       model.UserStats{CurrentStreak: 3},
			wantStatus:  model.GoalCompleted,
			wantCurrent: 3,
			wantChanged: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Evaluate(tt.goal, tt.stats, now)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantCurrent, got.Current)
			assert.Equal(t, tt.wantChanged, changed)
			if changed {
				assert.Equal(t, now, got.UpdatedAt)
			}
		})
	}
}

func TestEvaluateTerminalGoalsNeverChange(t *testing.T) {
	for _, status := range []model.GoalStatus{model.GoalCompleted, model.GoalFailed} {
		goal := activeGoal(1, model.GoalSpeed, 500, 10, now.AddDate(0, 0, 5))
		goal.Status = status
		got, changed := Evaluate(goal, model.UserStats{AverageWPM: 100}, now)
		assert.False(t, changed)
		assert.Equal(t, goal, got)
		assert.True(t, got.Status.Terminal())
	}
}

func TestSweepWritesOnlyChangedGoals(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)
	done := activeGoal(3, model.GoalSpeed, 100, 100, tomorrow)
	done.Status = model.GoalCompleted
	goals := []model.Goal{
		activeGoal(1, model.GoalSpeed, 500, 300, tomorrow),
		activeGoal(2, model.GoalSpeed, 250, 0, tomorrow),
		done,
	}
	w := &recordingWriter{}

	out, err := Sweep(context.Background(), goals, model.UserStats{AverageWPM: 300}, now, w)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Len(t, w.updated, 1)
	assert.Equal(t, int64(2), w.updated[0].ID)
	assert.Equal(t, model.GoalCompleted, out[1].Status)
	assert.Equal(t, model.GoalActive, out[0].Status)

	w.updated = nil
	again, err := Sweep(context.Background(), out, model.UserStats{AverageWPM: 300}, now, w)
	require.NoError(t, err)
	assert.Empty(t, w.updated)
	assert.Equal(t, out, again)
}

func TestSweepJoinsWriteErrors(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)
	goals := []model.Goal{
		activeGoal(1, model.GoalSpeed, 200, 0, tomorrow),
		activeGoal(2, model.GoalSpeed, 200, 0, tomorrow),
	}
	w := &recordingWriter{failID: 1}

	out, err := Sweep(context.Background(), goals, model.UserStats{AverageWPM: 250}, now, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goal 1")
	assert.Len(t, w.updated, 1)
	assert.Equal(t, model.GoalCompleted, out[0].Status)
}
