// Package session records training sessions from start to completion.
package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/verte-zerg/readpace/internal/model"
)

// ErrInvalidUpdate is returned when a change fails validation.
var ErrInvalidUpdate = errors.New("invalid session update")

// Sink persists progress records derived from completed sessions.
type Sink interface {
	SaveProgress(ctx context.Context, rec model.ProgressRecord) (int64, error)
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(gen func() string) Option {
	return func(r *Recorder) {
		r.newID = gen
	}
}

// Recorder tracks the sessions of one user.
type Recorder struct {
	mu       sync.Mutex
	userID   string
	sink     Sink
	now      func() time.Time
	newID    func() string
	sessions []*model.TrainingSession
}

// New constructs a Recorder for userID. A nil sink disables persistence.
func New(userID string, sink Sink, opts ...Option) *Recorder {
	r := &Recorder{
		userID: userID,
		sink:   sink,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UserID returns the owner of recorded sessions.
func (r *Recorder) UserID() string {
	return r.userID
}

// Start creates a new session with zeroed counters.
func (r *Recorder) Start(method string, settings map[string]any) model.TrainingSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &model.TrainingSession{
		ID:        r.newID(),
		Method:    method,
		StartTime: r.now(),
		Settings:  cloneSettings(settings),
	}
	r.sessions = append(r.sessions, s)
	return snapshot(s)
}

// Update applies changes to an active session. All changes are validated
// before any is applied. Unknown or completed sessions are ignored.
func (r *Recorder) Update(id string, changes ...Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.find(id)
	if s == nil || s.Completed() {
		return nil
	}
	draft := snapshot(s)
	for _, change := range changes {
		if err := change(&draft); err != nil {
			return err
		}
	}
	*s = draft
	return nil
}

// Complete finalizes a session and hands its progress record to the sink.
// Subsequent calls for the same id return a nil record. A sink failure is
// returned but the session stays finalized.
func (r *Recorder) Complete(ctx context.Context, id string) (*model.ProgressRecord, error) {
	r.mu.Lock()
	s := r.find(id)
	if s == nil || s.Completed() {
		r.mu.Unlock()
		return nil, nil
	}
	end := r.now()
	s.EndTime = &end
	s.Duration = end.Sub(s.StartTime)
	rec := r.progressRecord(s)
	r.mu.Unlock()

	if r.sink == nil {
		return &rec, nil
	}
	recID, err := r.sink.SaveProgress(ctx, rec)
	if err != nil {
		return &rec, fmt.Errorf("failed to save progress for session %s: %w", id, err)
	}
	rec.ID = recID
	return &rec, nil
}

func (r *Recorder) progressRecord(s *model.TrainingSession) model.ProgressRecord {
	return model.ProgressRecord{
		UserID:          r.userID,
		Method:          s.Method,
		Date:            *s.EndTime,
		DurationSeconds: int(s.Duration / time.Second),
		WordsRead:       s.WordsRead,
		WPM:             s.AverageWPM,
		Comprehension:   s.AverageComprehension,
		WordListID:      s.WordListID,
		Settings:        cloneSettings(s.Settings),
		CreatedAt:       *s.EndTime,
	}
}

// Get returns a copy of the session with the given id.
func (r *Recorder) Get(id string) (model.TrainingSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.find(id)
	if s == nil {
		return model.TrainingSession{}, false
	}
	return snapshot(s), true
}

// Sessions returns copies of all sessions in creation order.
func (r *Recorder) Sessions() []model.TrainingSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Map(r.sessions, func(s *model.TrainingSession, _ int) model.TrainingSession {
		return snapshot(s)
	})
}

// SessionsByMethod returns sessions recorded with method.
func (r *Recorder) SessionsByMethod(method string) []model.TrainingSession {
	return filterMethod(r.Sessions(), method)
}

// RecentSessions returns the last n sessions, oldest first.
func (r *Recorder) RecentSessions(n int) []model.TrainingSession {
	if n <= 0 {
		return nil
	}
	all := r.Sessions()
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}

// TotalWordsRead sums words read. An empty method matches all sessions.
func (r *Recorder) TotalWordsRead(method string) int {
	return lo.SumBy(filterMethod(r.Sessions(), method), func(s model.TrainingSession) int {
		return s.WordsRead
	})
}

// AverageWPM averages the running WPM of matching sessions, or 0 when none match.
func (r *Recorder) AverageWPM(method string) float64 {
	sessions := filterMethod(r.Sessions(), method)
	if len(sessions) == 0 {
		return 0
	}
	total := lo.SumBy(sessions, func(s model.TrainingSession) float64 {
		return s.AverageWPM
	})
	return total / float64(len(sessions))
}

// TotalTrainingTime sums the duration of completed matching sessions.
func (r *Recorder) TotalTrainingTime(method string) time.Duration {
	completed := lo.Filter(filterMethod(r.Sessions(), method), func(s model.TrainingSession, _ int) bool {
		return s.Completed()
	})
	return lo.SumBy(completed, func(s model.TrainingSession) time.Duration {
		return s.Duration
	})
}

// Clear drops every recorded session.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = nil
}

func (r *Recorder) find(id string) *model.TrainingSession {
	for _, s := range r.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func filterMethod(sessions []model.TrainingSession, method string) []model.TrainingSession {
	if method == "" {
		return sessions
	}
	return lo.Filter(sessions, func(s model.TrainingSession, _ int) bool {
		return s.Method == method
	})
}

func snapshot(s *model.TrainingSession) model.TrainingSession {
	out := *s
	out.Settings = cloneSettings(s.Settings)
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	return out
}

func cloneSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return map[string]any{}
	}
	return maps.Clone(settings)
}
