// Package pacing evaluates comprehension checks and adjusts reading speed.
package pacing

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/readpace/internal/model"
)

// Self-rating bounds for comprehension checks.
const (
	MinScore = 1.0
	MaxScore = 5.0
)

const (
	minSamples        = 3
	increaseThreshold = 4.0
	decreaseThreshold = 2.0
)

// Decision is the pacing direction for the next passage.
type Decision int

const (
	Maintain Decision = iota
	Increase
	Decrease
)

func (d Decision) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "maintain"
	}
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithClock overrides the time source used to stamp scores.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// Evaluator keeps an ordered history of comprehension scores.
type Evaluator struct {
	mu     sync.Mutex
	now    func() time.Time
	scores []model.ComprehensionScore
}

// NewEvaluator constructs an empty Evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Record appends a score. wpm is 0 when speed was not measured.
func (e *Evaluator) Record(score float64, method string, wpm float64) model.ComprehensionScore {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := model.ComprehensionScore{
		Score:     score,
		Timestamp: e.now(),
		Method:    method,
		WPM:       wpm,
	}
	e.scores = append(e.scores, s)
	return s
}

// Scores returns a copy of the history.
func (e *Evaluator) Scores() []model.ComprehensionScore {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.ComprehensionScore, len(e.scores))
	copy(out, e.scores)
	return out
}

// Average returns the mean score for method over the last recent entries,
// or 0 for an empty set. An empty method matches all scores and a
// non-positive recent uses the whole history.
func (e *Evaluator) Average(method string, recent int) float64 {
	scores := e.filtered(method)
	if recent > 0 && len(scores) > recent {
		scores = scores[len(scores)-recent:]
	}
	return mean(scores)
}

// RecentScores returns the last count scores, most recent last.
func (e *Evaluator) RecentScores(count int, method string) []model.ComprehensionScore {
	if count <= 0 {
		return nil
	}
	scores := e.filtered(method)
	if len(scores) > count {
		scores = scores[len(scores)-count:]
	}
	return scores
}

// Clear empties the history.
func (e *Evaluator) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scores = nil
}

func (e *Evaluator) filtered(method string) []model.ComprehensionScore {
	all := e.Scores()
	if method == "" {
		return all
	}
	return lo.Filter(all, func(s model.ComprehensionScore, _ int) bool {
		return s.Method == method
	})
}

// ShouldAdjustSpeed decides the pacing direction from a score window.
// Fewer than three scores always hold the current speed.
func ShouldAdjustSpeed(scores []model.ComprehensionScore) Decision {
	if len(scores) < minSamples {
		return Maintain
	}
	avg := mean(scores)
	switch {
	case avg >= increaseThreshold:
		return Increase
	case avg <= decreaseThreshold:
		return Decrease
	default:
		return Maintain
	}
}

// Percent converts a 1-5 self-rating into the 0-100 comprehension percentage
// stored on sessions and progress records.
func Percent(score float64) float64 {
	return lo.Clamp(score, 0, MaxScore) / MaxScore * 100
}

func mean(scores []model.ComprehensionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	return lo.SumBy(scores, func(s model.ComprehensionScore) float64 {
		return s.Score
	}) / float64(len(scores))
}
