package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/readpace/internal/model"
)

func recordsOnDays(now time.Time, daysAgo ...int) []model.ProgressRecord {
	out := make([]model.ProgressRecord, len(daysAgo))
	for i, d := range daysAgo {
		out[i] = model.ProgressRecord{Date: now.AddDate(0, 0, -d)}
	}
	return out
}

func TestCalculateStreak(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		daysAgo []int
		want    Streak
	}{
		{name: "no records", daysAgo: nil, want: Streak{}},
		{name: "today only", daysAgo: []int{0}, want: Streak{Current: 1, Longest: 1}},
		{name: "three consecutive days", daysAgo: []int{0, 1, 2}, want: Streak{Current: 3, Longest: 3}},
		{name: "gap after today", daysAgo: []int{0, 5}, want: Streak{Current: 1, Longest: 1}},
		{name: "gap before today", daysAgo: []int{2, 3, 5}, want: Streak{Current: 0, Longest: 2}},
		{name: "starting yesterday", daysAgo: []int{1, 2}, want: Streak{Current: 2, Longest: 2}},
		{name: "longest in the past", daysAgo: []int{0, 10, 11, 12, 13}, want: Streak{Current: 1, Longest: 4}},
		{name: "same day collapses", daysAgo: []int{0, 0, 0, 1}, want: Streak{Current: 2, Longest: 2}},
		{name: "unordered input", daysAgo: []int{2, 0, 1}, want: Streak{Current: 3, Longest: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(recordsOnDays(now, tt.daysAgo...), now))
		})
	}
}

func TestCalculateStreakUsesCalendarDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 5, 0, 0, time.UTC)
	records := []model.ProgressRecord{
		{Date: time.Date(2024, 6, 15, 0, 1, 0, 0, time.UTC)},
		{Date: time.Date(2024, 6, 14, 23, 59, 0, 0, time.UTC)},
	}
	assert.Equal(t, Streak{Current: 2, Longest: 2}, CalculateStreak(records, now))
}

func TestCalculateStreakAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	now := time.Date(2024, 3, 11, 9, 0, 0, 0, loc)
	records := []model.ProgressRecord{
		{Date: time.Date(2024, 3, 11, 8, 0, 0, 0, loc)},
		{Date: time.Date(2024, 3, 10, 23, 30, 0, 0, loc)},
		{Date: time.Date(2024, 3, 9, 0, 30, 0, 0, loc)},
	}
	assert.Equal(t, Streak{Current: 3, Longest: 3}, CalculateStreak(records, now))
}
