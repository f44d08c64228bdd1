package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"

	"github.com/verte-zerg/readpace/internal/goals"
	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/stats"
)

func renderOverview(report stats.Report, window, width int) string {
	if report.Stats.TotalSessions == 0 {
		return "No sessions found."
	}
	parts := []string{renderSummaryCards(report.Stats, width)}
	if len(report.Methods) > 0 {
		var buf bytes.Buffer
		if err := stats.RenderMethods(&buf, report.Methods); err == nil {
			parts = append(parts, strings.TrimRight(buf.String(), "\n"))
		}
	}
	if curves := renderCurves(report.Records, window, width); curves != "" {
		parts = append(parts, curves)
	}
	return strings.TrimRight(strings.Join(parts, "\n\n"), "\n")
}

func renderSummaryCards(st model.UserStats, width int) string {
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", st.TotalSessions)),
		metricCard("Avg WPM", fmt.Sprintf("%d", st.AverageWPM)),
		metricCard("Best WPM", fmt.Sprintf("%d", st.BestWPM)),
		metricCard("Practice", stats.FormatDuration(st.TotalPracticeTime)),
		metricCard("Streak", fmt.Sprintf("%d / %d", st.CurrentStreak, st.LongestStreak)),
		metricCard("Level", stats.LevelLabel(st.Level)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderCurves(records []model.ProgressRecord, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderCurvesWithSize(&buf, records, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Method", Width: 16},
		{Title: "Duration", Width: 9},
		{Title: "Words", Width: 7},
		{Title: "WPM", Width: 6},
		{Title: "Comp.", Width: 6},
	}
}

// historyRows lists records newest first.
func historyRows(records []model.ProgressRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range lo.Reverse(append([]model.ProgressRecord(nil), records...)) {
		rows = append(rows, table.Row{
			r.Date.Local().Format("2006-01-02 15:04"),
			r.Method,
			stats.FormatDuration(r.DurationSeconds),
			fmt.Sprintf("%d", r.WordsRead),
			fmt.Sprintf("%.0f", r.WPM),
			fmt.Sprintf("%.0f%%", r.Comprehension),
		})
	}
	return rows
}

func goalColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Goal", Width: 18},
		{Title: "Progress", Width: 22},
		{Title: "Status", Width: 10},
		{Title: "Deadline", Width: 10},
	}
}

func goalRows(list []model.Goal) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, g := range list {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", g.ID),
			goals.TypeLabel(g.Type),
			fmt.Sprintf("%.0f/%.0f %s (%.0f%%)", g.Current, g.Target, goals.Unit(g.Type), goals.ProgressPct(g)),
			string(g.Status),
			g.Deadline.Local().Format("2006-01-02"),
		})
	}
	return rows
}

func newTable(columns []table.Column) table.Model {
	t := table.New(table.WithColumns(columns), table.WithHeight(1))
	t.SetStyles(tableStyles())
	return t
}

// fitTable sizes t so its rendered view, header included, fills height rows.
func fitTable(t *table.Model, width, height int) {
	t.SetWidth(width)
	t.SetHeight(max(1, height-1))
	if extra := lipgloss.Height(t.View()) - height; extra > 0 {
		t.SetHeight(max(1, t.Height()-extra))
	}
}

const windowStep = 5

func nextCurveWindow(n int) int {
	return (n/windowStep + 1) * windowStep
}

func prevCurveWindow(n int) int {
	return max(1, (n-1)/windowStep*windowStep)
}

// frame pads or clips s to exactly width x height cells.
func frame(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = truncateLine(lines[i], width)
	}
	return lipgloss.PlaceVertical(height, lipgloss.Top,
		lipgloss.PlaceHorizontal(width, lipgloss.Left, strings.Join(lines, "\n")))
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
