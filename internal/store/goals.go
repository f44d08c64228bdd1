package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verte-zerg/readpace/internal/model"
)

const goalColumns = `id, user_id, type, target, current, deadline, status, created_at, updated_at`

// InsertGoal stores a new goal and returns its id.
func (s *Store) InsertGoal(ctx context.Context, goal model.Goal) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (user_id, type, target, current, deadline, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.UserID,
		string(goal.Type),
		goal.Target,
		goal.Current,
		formatTime(goal.Deadline),
		string(goal.Status),
		formatTime(goal.CreatedAt),
		formatTime(goal.UpdatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert goal: %w", err)
	}
	return res.LastInsertId()
}

// UpdateGoal overwrites a goal owned by goal.UserID. Missing goals are ignored.
func (s *Store) UpdateGoal(ctx context.Context, goal model.Goal) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE goals SET type = ?, target = ?, current = ?, deadline = ?, status = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		string(goal.Type),
		goal.Target,
		goal.Current,
		formatTime(goal.Deadline),
		string(goal.Status),
		formatTime(goal.UpdatedAt),
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// DeleteGoal removes a goal. Missing goals are ignored.
func (s *Store) DeleteGoal(ctx context.Context, userID string, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// GetGoal returns one goal, or nil when it does not exist.
func (s *Store) GetGoal(ctx context.Context, userID string, id int64) (*model.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns a user's goals, newest first.
func (s *Store) ListGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var goals []model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (model.Goal, error) {
	var (
		goal                           model.Goal
		typ, status                    string
		deadline, createdAt, updatedAt string
	)
	if err := row.Scan(&goal.ID, &goal.UserID, &typ, &goal.Target, &goal.Current, &deadline, &status, &createdAt, &updatedAt); err != nil {
		return model.Goal{}, err
	}
	goal.Type = model.GoalType(typ)
	goal.Status = model.GoalStatus(status)
	var err error
	if goal.Deadline, err = parseTime(deadline); err != nil {
		return model.Goal{}, err
	}
	if goal.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Goal{}, err
	}
	if goal.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Goal{}, err
	}
	return goal, nil
}
