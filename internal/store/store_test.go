package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/readpace/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "readpace.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "readpace.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestProgressRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		rec := model.ProgressRecord{
			UserID:          "user-1",
			Method:          "rsvp",
			Date:            base.Add(time.Duration(i) * time.Hour),
			DurationSeconds: 60 + i,
			WordsRead:       300,
			WPM:             300 + float64(i),
			Comprehension:   80,
			WordListID:      "general",
			Settings:        map[string]any{"wpm": 300},
			CreatedAt:       base.Add(time.Duration(i) * time.Hour),
		}
		id, err := st.SaveProgress(ctx, rec)
		require.NoError(t, err)
		assert.Positive(t, id)
	}
	_, err := st.SaveProgress(ctx, model.ProgressRecord{UserID: "user-2", Method: "chunking", Date: base, CreatedAt: base})
	require.NoError(t, err)

	all, err := st.ListProgress(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 302.0, all[0].WPM)
	assert.Equal(t, 300.0, all[2].WPM)
	assert.True(t, all[0].Date.Equal(base.Add(2*time.Hour)))
	assert.Equal(t, float64(300), all[0].Settings["wpm"])
	assert.Equal(t, "general", all[0].WordListID)

	limited, err := st.ListProgress(ctx, "user-1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, 302.0, limited[0].WPM)

	other, err := st.ListProgress(ctx, "user-2", 10)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Empty(t, other[0].Settings)
}

func TestProgressOrderIgnoresZone(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	tokyo := time.FixedZone("JST", 9*3600)

	early := time.Date(2024, 4, 1, 10, 0, 0, 0, tokyo) // 01:00 UTC
	late := time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC)
	_, err := st.SaveProgress(ctx, model.ProgressRecord{UserID: "u", Method: "a", Date: late, CreatedAt: late})
	require.NoError(t, err)
	_, err = st.SaveProgress(ctx, model.ProgressRecord{UserID: "u", Method: "b", Date: early, CreatedAt: early})
	require.NoError(t, err)

	got, err := st.ListProgress(ctx, "u", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Method)
}

func TestStatsReadOrInitialize(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	got, err := st.GetStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	first := model.UserStats{UserID: "user-1", AverageWPM: 250, BestWPM: 400, TotalSessions: 3, Level: model.LevelBeginner,
		CurrentStreak: 2, LongestStreak: 5, TotalPracticeTime: 900, LastUpdated: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, st.SaveStats(ctx, first))

	second := model.UserStats{UserID: "user-1", AverageWPM: 520, Level: model.LevelAdvanced,
		LastUpdated: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, st.SaveStats(ctx, second))

	got, err = st.GetStats(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 520, got.AverageWPM)
	assert.Zero(t, got.BestWPM)
	assert.Zero(t, got.LongestStreak)
	assert.Equal(t, model.LevelAdvanced, got.Level)
	assert.True(t, got.LastUpdated.Equal(second.LastUpdated))
}

func TestGoalsCRUD(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	newGoal := func(typ model.GoalType, offset time.Duration) model.Goal {
		return model.Goal{
			UserID:    "user-1",
			Type:      typ,
			Target:    500,
			Deadline:  created.AddDate(0, 1, 0),
			Status:    model.GoalActive,
			CreatedAt: created.Add(offset),
			UpdatedAt: created.Add(offset),
		}
	}
	firstID, err := st.InsertGoal(ctx, newGoal(model.GoalSpeed, 0))
	require.NoError(t, err)
	secondID, err := st.InsertGoal(ctx, newGoal(model.GoalTime, time.Hour))
	require.NoError(t, err)

	list, err := st.ListGoals(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, secondID, list[0].ID)
	assert.Equal(t, model.GoalTime, list[0].Type)

	goal, err := st.GetGoal(ctx, "user-1", firstID)
	require.NoError(t, err)
	require.NotNil(t, goal)
	goal.Current = 510
	goal.Status = model.GoalCompleted
	require.NoError(t, st.UpdateGoal(ctx, *goal))

	goal, err = st.GetGoal(ctx, "user-1", firstID)
	require.NoError(t, err)
	assert.Equal(t, 510.0, goal.Current)
	assert.Equal(t, model.GoalCompleted, goal.Status)

	missing, err := st.GetGoal(ctx, "user-2", firstID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, st.DeleteGoal(ctx, "user-1", firstID))
	require.NoError(t, st.DeleteGoal(ctx, "user-1", 999))
	list, err = st.ListGoals(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStoreFailures(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		call      func(*Store) error
		wantErr   string
	}{
		{
			name: "insert progress",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO progress`).WillReturnError(errors.New("disk I/O error"))
			},
			call: func(s *Store) error {
				_, err := s.SaveProgress(context.Background(), model.ProgressRecord{UserID: "u"})
				return err
			},
			wantErr: "failed to insert progress",
		},
		{
			name: "list progress",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM progress`).
					WithArgs("u", 1000).
					WillReturnError(errors.New("database is locked"))
			},
			call: func(s *Store) error {
				_, err := s.ListProgress(context.Background(), "u", 1000)
				return err
			},
			wantErr: "failed to query progress",
		},
		{
			name: "save stats",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO stats`).WillReturnError(errors.New("readonly database"))
			},
			call: func(s *Store) error {
				return s.SaveStats(context.Background(), model.UserStats{UserID: "u"})
			},
			wantErr: "failed to save stats",
		},
		{
			name: "get stats",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM stats`).WithArgs("u").WillReturnError(errors.New("boom"))
			},
			call: func(s *Store) error {
				_, err := s.GetStats(context.Background(), "u")
				return err
			},
			wantErr: "failed to query stats",
		},
		{
			name: "update goal",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE goals`).WillReturnError(errors.New("boom"))
			},
			call: func(s *Store) error {
				return s.UpdateGoal(context.Background(), model.Goal{ID: 1, UserID: "u"})
			},
			wantErr: "failed to update goal",
		},
		{
			name: "bad stored time",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "total_practice_time", "average_wpm", "best_wpm",
					"current_streak", "longest_streak", "total_sessions", "level", "last_updated"}).
					AddRow("u", 0, 0, 0, 0, 0, 0, "beginner", "yesterday")
				mock.ExpectQuery(`SELECT .+ FROM stats`).WithArgs("u").WillReturnRows(rows)
			},
			call: func(s *Store) error {
				_, err := s.GetStats(context.Background(), "u")
				return err
			},
			wantErr: "failed to parse time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)
			err = tt.call(New(db))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
