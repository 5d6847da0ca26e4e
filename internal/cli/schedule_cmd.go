package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/todoer/internal/app"
	"github.com/alexanderramin/todoer/internal/cli/formatter"
	"github.com/alexanderramin/todoer/internal/contract"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/scheduler"
)

func newScheduleCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Plan and view a day's timetable",
	}
	cmd.AddCommand(
		newScheduleGenerateCmd(e),
		newScheduleShowCmd(e),
		newScheduleExplainCmd(e),
	)
	return cmd
}

func newScheduleGenerateCmd(e *env) *cobra.Command {
	var date string
	var mode modeFlag
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Place commitments and goal steps on a day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, e.now())
			if err != nil {
				return err
			}
			resp, err := e.app.PlanDay(cmd.Context(), app.PlanDayRequest{Date: day, Mode: mode.mode, DryRun: dryRun})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatGenerate(resp.Schedule, dryRun))
			if resp.ReminderErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: reminders not refreshed: %v\n", resp.ReminderErr)
			} else if len(resp.Reminders) > 0 {
				fmt.Fprintf(out, "%d reminder(s) set.\n", len(resp.Reminders))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to plan (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().Var(&mode, "mode", "Placement mode: strict or best-effort (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without storing it")
	return cmd
}

func newScheduleShowCmd(e *env) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored schedule for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, e.now())
			if err != nil {
				return err
			}
			tasks, err := e.app.Schedule.ForDate(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(day, values(tasks)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, today, tomorrow)")
	return cmd
}

func newScheduleExplainCmd(e *env) *cobra.Command {
	var date string
	var mode modeFlag

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain why goals or steps were left off a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, e.now())
			if err != nil {
				return err
			}
			req := contract.NewScheduleRequest(day)
			req.Mode = mode.mode
			resp, err := e.app.Schedule.Preview(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExplain(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to explain (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().Var(&mode, "mode", "Placement mode: strict or best-effort")
	return cmd
}

// modeFlag is a --mode value. Left unset, the configured mode applies.
type modeFlag struct {
	mode scheduler.PlacementMode
}

var _ pflag.Value = (*modeFlag)(nil)

func (f *modeFlag) String() string { return string(f.mode) }

func (f *modeFlag) Set(s string) error {
	m, err := scheduler.ParsePlacementMode(s)
	if err != nil {
		return err
	}
	f.mode = m
	return nil
}

func (f *modeFlag) Type() string { return "mode" }

func values(tasks []*domain.ScheduledTask) []domain.ScheduledTask {
	out := make([]domain.ScheduledTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *t)
	}
	return out
}
