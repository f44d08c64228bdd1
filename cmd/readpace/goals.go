package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/readpace/internal/goals"
	"github.com/verte-zerg/readpace/internal/model"
)

const defaultGoalDays = 30

var (
	goalType     string
	goalTarget   float64
	goalDeadline string
	goalDays     int
	goalStatus   string
)

func newGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage reading goals",
		Args:  cobra.NoArgs,
		RunE:  runGoalsListCmd,
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal",
		Args:  cobra.NoArgs,
		RunE:  runGoalsAddCmd,
	}
	addCmd.Flags().StringVar(&goalType, "type", string(model.GoalSpeed), "goal type (speed, time, frequency, comprehension)")
	addCmd.Flags().Float64Var(&goalTarget, "target", 0, "target value (WPM, minutes, days or percent)")
	addCmd.Flags().StringVar(&goalDeadline, "deadline", "", "deadline (YYYY-MM-DD)")
	addCmd.Flags().IntVar(&goalDays, "days", defaultGoalDays, "deadline in days from now when --deadline is unset")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List goals with current progress",
		Args:  cobra.NoArgs,
		RunE:  runGoalsListCmd,
	}
	listCmd.Flags().StringVar(&goalStatus, "status", "", "status filter (active, completed, failed)")

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a goal's target or deadline",
		Args:  cobra.ExactArgs(1),
		RunE:  runGoalsEditCmd,
	}
	editCmd.Flags().Float64Var(&goalTarget, "target", 0, "new target value")
	editCmd.Flags().StringVar(&goalDeadline, "deadline", "", "new deadline (YYYY-MM-DD)")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE:  runGoalsRmCmd,
	}

	cmd.AddCommand(addCmd, listCmd, editCmd, rmCmd)
	return cmd
}

func runGoalsAddCmd(cmd *cobra.Command, _ []string) error {
	typ := model.GoalType(strings.ToLower(strings.TrimSpace(goalType)))
	if !typ.Valid() {
		return fmt.Errorf("unknown goal type %q", goalType)
	}
	deadline, err := resolveDeadline(goalDeadline, goalDays, time.Now())
	if err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.engine.Refresh(ctx); err != nil {
		logErrf("failed to load stats: %v\n", err)
	}
	goal, err := a.engine.CreateGoal(ctx, typ, goalTarget, deadline)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created goal %d: %s %.0f %s by %s\n",
		goal.ID, goals.TypeLabel(goal.Type), goal.Target, goals.Unit(goal.Type), goal.Deadline.Local().Format("2006-01-02"))
	return err
}

func runGoalsListCmd(cmd *cobra.Command, _ []string) error {
	status := model.GoalStatus(strings.ToLower(strings.TrimSpace(goalStatus)))
	switch status {
	case "", model.GoalActive, model.GoalCompleted, model.GoalFailed:
	default:
		return fmt.Errorf("unknown goal status %q", goalStatus)
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.engine.Refresh(context.Background()); err != nil {
		return fmt.Errorf("failed to refresh goals: %w", err)
	}
	st, _ := a.engine.Stats()
	list := a.engine.Goals()
	switch status {
	case model.GoalActive:
		list = goals.Active(list)
	case model.GoalCompleted:
		list = goals.Completed(list)
	case model.GoalFailed:
		list = goals.Failed(list)
	}
	return renderGoals(cmd.OutOrStdout(), list, st)
}

func runGoalsEditCmd(cmd *cobra.Command, args []string) error {
	id, err := parseGoalID(args[0])
	if err != nil {
		return err
	}
	var changes []goals.Change
	if cmd.Flags().Changed("target") {
		changes = append(changes, goals.SetTarget(goalTarget))
	}
	if goalDeadline != "" {
		deadline, err := parseDate(goalDeadline)
		if err != nil {
			return err
		}
		changes = append(changes, goals.SetDeadline(deadline))
	}
	if len(changes) == 0 {
		return fmt.Errorf("nothing to change: pass --target or --deadline")
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	goal, err := a.engine.UpdateGoal(context.Background(), id, changes...)
	if err != nil {
		return err
	}
	if goal == nil {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Goal %d not found, nothing changed\n", id)
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated goal %d: target %.0f %s by %s\n",
		goal.ID, goal.Target, goals.Unit(goal.Type), goal.Deadline.Local().Format("2006-01-02"))
	return err
}

func runGoalsRmCmd(cmd *cobra.Command, args []string) error {
	id, err := parseGoalID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.engine.DeleteGoal(context.Background(), id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %d\n", id)
	return err
}

func renderGoals(w io.Writer, list []model.Goal, st model.UserStats) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No goals found.")
		return err
	}
	rows := lo.Map(list, func(g model.Goal, _ int) []string {
		return []string{
			strconv.FormatInt(g.ID, 10),
			goals.TypeLabel(g.Type),
			fmt.Sprintf("%.0f/%.0f %s", g.Current, g.Target, goals.Unit(g.Type)),
			fmt.Sprintf("%.0f%%", goals.ProgressPct(g)),
			g.Deadline.Local().Format("2006-01-02"),
			string(g.Status),
			goals.Measure(g, st).Basis.String(),
		}
	})
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Goal", "Progress", "%", "Deadline", "Status", "Basis").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func resolveDeadline(value string, days int, now time.Time) (time.Time, error) {
	if value != "" {
		return parseDate(value)
	}
	if days <= 0 {
		return time.Time{}, fmt.Errorf("--days must be > 0")
	}
	return now.AddDate(0, 0, days), nil
}

// parseDate reads a local date and returns the end of that day.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed.AddDate(0, 0, 1).Add(-time.Second), nil
}

func parseGoalID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid goal id %q", value)
	}
	return id, nil
}
