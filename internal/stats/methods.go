package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/readpace/internal/model"
)

// MethodSummary aggregates progress for one training method.
type MethodSummary struct {
	Method        string
	Sessions      int
	WordsRead     int
	AverageWPM    float64
	Comprehension float64
}

// SummarizeMethods groups records by method, most practiced first.
func SummarizeMethods(records []model.ProgressRecord) []MethodSummary {
	groups := lo.GroupBy(records, func(r model.ProgressRecord) string {
		return r.Method
	})
	out := make([]MethodSummary, 0, len(groups))
	for method, recs := range groups {
		n := float64(len(recs))
		out = append(out, MethodSummary{
			Method:   method,
			Sessions: len(recs),
			WordsRead: lo.SumBy(recs, func(r model.ProgressRecord) int {
				return r.WordsRead
			}),
			AverageWPM: lo.SumBy(recs, func(r model.ProgressRecord) float64 {
				return r.WPM
			}) / n,
			Comprehension: lo.SumBy(recs, func(r model.ProgressRecord) float64 {
				return r.Comprehension
			}) / n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sessions == out[j].Sessions {
			return out[i].Method < out[j].Method
		}
		return out[i].Sessions > out[j].Sessions
	})
	return out
}

// RenderMethods prints the per-method breakdown.
func RenderMethods(w io.Writer, summaries []MethodSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	rows := lo.Map(summaries, func(s MethodSummary, _ int) []string {
		return []string{
			s.Method,
			fmt.Sprintf("%d", s.Sessions),
			fmt.Sprintf("%d", s.WordsRead),
			fmt.Sprintf("%.1f", s.AverageWPM),
			fmt.Sprintf("%.1f%%", s.Comprehension),
		}
	})
	cols := columns([]string{"Method", "Sessions", "Words", "Avg WPM", "Comp."}, 1, 2, 3, 4)
	return writeTable(w, "By Method", cols, rows)
}
