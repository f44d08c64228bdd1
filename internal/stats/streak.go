package stats

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/readpace/internal/model"
)

// Streak holds consecutive-day practice counts.
type Streak struct {
	Current int
	Longest int
}

// CalculateStreak counts consecutive calendar days with at least one record.
// Days are taken in now's location. The current streak is only alive when
// the latest active day is today or yesterday.
func CalculateStreak(records []model.ProgressRecord, now time.Time) Streak {
	if len(records) == 0 {
		return Streak{}
	}
	loc := now.Location()
	days := lo.Uniq(lo.Map(records, func(r model.ProgressRecord, _ int) int {
		return dayNumber(r.Date.In(loc))
	}))
	sort.Sort(sort.Reverse(sort.IntSlice(days)))

	var out Streak
	today := dayNumber(now)
	if days[0] == today || days[0] == today-1 {
		out.Current = 1
		for i := 1; i < len(days) && days[i-1]-days[i] == 1; i++ {
			out.Current++
		}
	}

	run := 1
	out.Longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] == 1 {
			run++
		} else {
			run = 1
		}
		out.Longest = max(out.Longest, run)
	}
	return out
}

// dayNumber maps the calendar date of t to a day index. Dates are rebuilt in
// UTC so DST transitions never produce 23 or 25 hour days.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
