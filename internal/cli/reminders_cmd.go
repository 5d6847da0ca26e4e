package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todoer/internal/cli/formatter"
)

func newRemindersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Manage task reminders",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "refresh",
			Short: "Re-register reminders for today's remaining tasks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := e.app.Reminders.RefreshToday(cmd.Context(), e.now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d reminder(s) set.\n", len(list))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List pending reminders",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := e.app.Reminders.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReminders(list, e.now()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "cancel",
			Short: "Cancel every reminder",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := e.app.Reminders.CancelAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %d reminder(s).\n", n)
				return nil
			},
		},
	)
	return cmd
}
