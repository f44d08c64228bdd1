// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Method      string
	WPM         int
	ChunkSize   int
	PassageSize int
	Step        int
	MinWPM      int
	MaxWPM      int
	CheckWindow int
	SourceID    string
	WordListID  string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Method      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// TrainingSession is one in-progress or finished reading exercise.
type TrainingSession struct {
	ID                   string
	Method               string
	StartTime            time.Time
	EndTime              *time.Time
	Duration             time.Duration
	WordsRead            int
	AverageWPM           float64
	AverageComprehension float64
	WordListID           string
	Settings             map[string]any
}

// Completed reports whether the session has been finalized.
func (s TrainingSession) Completed() bool {
	return s.EndTime != nil
}

// ComprehensionScore is one comprehension-check result on the 1-5 self-rating scale.
type ComprehensionScore struct {
	Score     float64
	Timestamp time.Time
	Method    string
	WPM       float64
}

// ProgressRecord is the durable summary of one completed session.
// Comprehension is a 0-100 percentage.
type ProgressRecord struct {
	ID              int64
	UserID          string
	Method          string
	Date            time.Time
	DurationSeconds int
	WordsRead       int
	WPM             float64
	Comprehension   float64
	WordListID      string
	Settings        map[string]any
	CreatedAt       time.Time
}

// Level is the derived skill level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// UserStats is the per-user snapshot recomputed from progress history.
type UserStats struct {
	UserID            string
	TotalPracticeTime int
	AverageWPM        int
	BestWPM           int
	CurrentStreak     int
	LongestStreak     int
	TotalSessions     int
	Level             Level
	LastUpdated       time.Time
}

// GoalType identifies the metric a goal tracks.
type GoalType string

const (
	GoalSpeed         GoalType = "speed"
	GoalTime          GoalType = "time"
	GoalFrequency     GoalType = "frequency"
	GoalComprehension GoalType = "comprehension"
)

// GoalTypes lists every supported goal type.
var GoalTypes = []GoalType{GoalSpeed, GoalTime, GoalFrequency, GoalComprehension}

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalSpeed, GoalTime, GoalFrequency, GoalComprehension:
		return true
	default:
		return false
	}
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalFailed    GoalStatus = "failed"
)

// Terminal reports whether no further transitions are possible.
func (s GoalStatus) Terminal() bool {
	return s == GoalCompleted || s == GoalFailed
}

// Goal is a user-defined target against one metric.
type Goal struct {
	ID        int64
	UserID    string
	Type      GoalType
	Target    float64
	Current   float64
	Deadline  time.Time
	Status    GoalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
