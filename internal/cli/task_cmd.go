package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todoer/internal/cli/formatter"
	"github.com/alexanderramin/todoer/internal/contract"
)

func newTaskCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Complete, add or remove scheduled tasks",
	}
	cmd.AddCommand(
		newTaskCompleteCmd(e),
		newTaskAddCmd(e),
		newTaskDeleteCmd(e),
	)
	return cmd
}

func newTaskCompleteCmd(e *env) *cobra.Command {
	var date, proof string
	var attachments []string

	cmd := &cobra.Command{
		Use:     "complete REF",
		Aliases: []string{"done"},
		Short:   "Complete a task by its number in the schedule or its ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDay(date, e.now())
			if err != nil {
				return err
			}
			t, err := e.resolveTask(ctx, day, args[0])
			if err != nil {
				return err
			}
			resp, err := e.app.Schedule.CompleteTask(ctx, contract.CompleteTaskRequest{
				TaskID:      t.ID,
				Proof:       proof,
				Attachments: attachments,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCompletion(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day the task is on (default today)")
	cmd.Flags().StringVar(&proof, "proof", "", "Note describing what was done")
	cmd.Flags().StringArrayVar(&attachments, "attach", nil, "Attachment path or URL (repeatable)")
	return cmd
}

func newTaskAddCmd(e *env) *cobra.Command {
	var date, name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an ad-hoc task to a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, e.now())
			if err != nil {
				return err
			}
			t, err := e.app.Schedule.AddAdHoc(cmd.Context(), contract.AdHocTaskRequest{
				Date:      day,
				Name:      name,
				StartTime: start,
				EndTime:   end,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s-%s on %s\n", t.Name, t.StartTime, t.EndTime, t.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (default today)")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	for _, f := range []string{"name", "start", "end"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newTaskDeleteCmd(e *env) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "delete REF",
		Aliases: []string{"rm"},
		Short:   "Remove a task from a day's schedule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDay(date, e.now())
			if err != nil {
				return err
			}
			t, err := e.resolveTask(ctx, day, args[0])
			if err != nil {
				return err
			}
			if err := e.app.Schedule.DeleteTask(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day the task is on (default today)")
	return cmd
}
