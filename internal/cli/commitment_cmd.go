package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todoer/internal/cli/formatter"
	"github.com/alexanderramin/todoer/internal/domain"
)

func newCommitmentCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "commitment",
		Aliases: []string{"weekly"},
		Short:   "Manage fixed weekly commitments",
	}
	cmd.AddCommand(
		newCommitmentAddCmd(e),
		newCommitmentListCmd(e),
		newCommitmentRemoveCmd(e),
	)
	return cmd
}

func newCommitmentAddCmd(e *env) *cobra.Command {
	var day, name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a commitment on a weekday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := domain.ParseWeekday(day)
			if err != nil {
				return err
			}
			c := &domain.WeeklyCommitment{Name: name, Weekday: wd, StartTime: start, EndTime: end}
			if err := e.app.Commitments.Add(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s %s-%s\n", c.Name, c.Weekday, c.StartTime, c.EndTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Weekday (monday or mon)")
	cmd.Flags().StringVar(&name, "name", "", "Commitment name")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	for _, f := range []string{"day", "name", "start", "end"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newCommitmentListCmd(e *env) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List commitments by weekday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				list []*domain.WeeklyCommitment
				err  error
			)
			if day != "" {
				wd, perr := domain.ParseWeekday(day)
				if perr != nil {
					return perr
				}
				list, err = e.app.Commitments.ListByWeekday(ctx, wd)
			} else {
				list, err = e.app.Commitments.List(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No commitments found.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatCommitments(list))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Only this weekday")
	return cmd
}

func newCommitmentRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a commitment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := e.app.Commitments.List(ctx)
			if err != nil {
				return err
			}
			c, err := resolveID(args[0], list, func(c *domain.WeeklyCommitment) string { return c.ID }, "commitment")
			if err != nil {
				return err
			}
			if err := e.app.Commitments.Remove(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", c.Name, c.Weekday)
			return nil
		},
	}
}
