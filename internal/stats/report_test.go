package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/readpace/internal/model"
)

type fakeSource struct {
	records  []model.ProgressRecord
	goals    []model.Goal
	err      error
	gotLimit int
}

func (f *fakeSource) ListProgress(_ context.Context, _ string, limit int) ([]model.ProgressRecord, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSource) ListGoals(_ context.Context, _ string) ([]model.Goal, error) {
	return f.goals, nil
}

func TestBuildReport(t *testing.T) {
	newest := record(0, 400, 60)
	middle := record(1, 300, 60)
	middle.Method = "chunking"
	oldest := record(2, 200, 60)
	src := &fakeSource{
		records: []model.ProgressRecord{newest, middle, oldest},
		goals:   []model.Goal{{ID: 1, Type: model.GoalSpeed, Target: 500}},
	}

	report, err := BuildReport(context.Background(), src, "user-1", model.StatsConfig{Method: "rsvp"}, testNow)
	require.NoError(t, err)

	assert.Equal(t, HistoryLimit, src.gotLimit)
	assert.Equal(t, 3, report.Stats.TotalSessions)
	assert.Equal(t, 300, report.Stats.AverageWPM)
	require.Len(t, report.Records, 2)
	assert.Equal(t, oldest.Date, report.Records[0].Date)
	assert.Equal(t, newest.Date, report.Records[1].Date)
	require.Len(t, report.Methods, 1)
	assert.Len(t, report.Goals, 1)
}

func TestBuildReportPropagatesErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	_, err := BuildReport(context.Background(), src, "user-1", model.StatsConfig{}, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list progress")
}

func TestFilterRecords(t *testing.T) {
	records := []model.ProgressRecord{record(0, 1, 1), record(3, 2, 1), record(1, 3, 1), record(5, 4, 1)}
	since := testNow.AddDate(0, 0, -3)

	got := FilterRecords(records, model.StatsConfig{Since: &since, Last: 2})
	require.Len(t, got, 2)
	assert.Equal(t, 3.0, got[0].WPM)
	assert.Equal(t, 1.0, got[1].WPM)

	all := FilterRecords(records, model.StatsConfig{})
	require.Len(t, all, 4)
	assert.True(t, all[0].Date.Before(all[3].Date))
	assert.Equal(t, time.UTC, all[0].Date.Location())
}
