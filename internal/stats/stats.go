// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/readpace/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Level thresholds on the rounded average WPM.
const (
	intermediateWPM = 300
	advancedWPM     = 500
	expertWPM       = 800
)

// Benchmarks are typical reading speeds per reader profile.
var Benchmarks = map[string]int{
	"average":      250,
	"beginner":     300,
	"intermediate": 500,
	"advanced":     800,
	"expert":       1000,
}

// Recompute derives a full stats snapshot from the progress history.
func Recompute(userID string, records []model.ProgressRecord, now time.Time) model.UserStats {
	out := model.UserStats{
		UserID:      userID,
		Level:       model.LevelBeginner,
		LastUpdated: now,
	}
	if len(records) == 0 {
		return out
	}

	wpms := lo.Map(records, func(r model.ProgressRecord, _ int) float64 {
		return r.WPM
	})
	out.TotalPracticeTime = lo.SumBy(records, func(r model.ProgressRecord) int {
		return r.DurationSeconds
	})
	out.AverageWPM = int(math.Round(lo.Sum(wpms) / float64(len(wpms))))
	out.BestWPM = int(math.Round(lo.Max(wpms)))
	out.Level = LevelFor(out.AverageWPM)
	out.TotalSessions = len(records)

	streak := CalculateStreak(records, now)
	out.CurrentStreak = streak.Current
	out.LongestStreak = streak.Longest
	return out
}

// LevelFor maps an average WPM to a skill level.
func LevelFor(avgWPM int) model.Level {
	switch {
	case avgWPM < intermediateWPM:
		return model.LevelBeginner
	case avgWPM < advancedWPM:
		return model.LevelIntermediate
	case avgWPM < expertWPM:
		return model.LevelAdvanced
	default:
		return model.LevelExpert
	}
}

// LevelLabel returns a display label for a level.
func LevelLabel(level model.Level) string {
	switch level {
	case model.LevelIntermediate:
		return "Intermediate"
	case model.LevelAdvanced:
		return "Advanced"
	case model.LevelExpert:
		return "Expert"
	default:
		return "Beginner"
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lowest, highest := lo.Min(values), lo.Max(values)
	if math.Abs(highest-lowest) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - lowest) / (highest - lowest) * float64(last)))
		b.WriteByte(sparkChars[lo.Clamp(idx, 0, last)])
	}
	return b.String()
}

// FormatDuration renders practice time as hours and minutes.
func FormatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}

// RenderSummary prints the stats snapshot.
func RenderSummary(w io.Writer, st model.UserStats) error {
	if st.TotalSessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", st.TotalSessions),
		fmt.Sprintf("Practice time: %s", FormatDuration(st.TotalPracticeTime)),
		fmt.Sprintf("Avg WPM: %d", st.AverageWPM),
		fmt.Sprintf("Best WPM: %d", st.BestWPM),
		fmt.Sprintf("Level: %s", LevelLabel(st.Level)),
		fmt.Sprintf("Streak: %d (longest %d)", st.CurrentStreak, st.LongestStreak),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints progress records as an aligned table, newest first.
func RenderHistory(w io.Writer, records []model.ProgressRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No progress records found.")
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date.Local().Format("2006-01-02 15:04"),
			r.Method,
			FormatDuration(r.DurationSeconds),
			fmt.Sprintf("%d", r.WordsRead),
			fmt.Sprintf("%.0f", r.WPM),
			fmt.Sprintf("%.0f%%", r.Comprehension),
		})
	}
	cols := columns([]string{"Date", "Method", "Duration", "Words", "WPM", "Comp."}, 2, 3, 4, 5)
	return writeTable(w, "History", cols, rows)
}

// RenderCurves prints learning curves for WPM and comprehension.
func RenderCurves(w io.Writer, records []model.ProgressRecord, window int) error {
	return RenderCurvesWithSize(w, records, window, 0, 10, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
// Records are plotted in the order given.
func RenderCurvesWithSize(w io.Writer, records []model.ProgressRecord, window, totalWidth, height int, useColor bool) error {
	if len(records) == 0 {
		return nil
	}
	wpms := lo.Map(records, func(r model.ProgressRecord, _ int) float64 {
		return r.WPM
	})
	comps := lo.Map(records, func(r model.ProgressRecord, _ int) float64 {
		return r.Comprehension
	})

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "WPM", Values: MovingAverage(wpms, window)},
		{Name: "Comprehension", Values: MovingAverage(comps, window)},
	}, width, height, useColor)
}
