package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todoer/internal/cli/formatter"
	"github.com/alexanderramin/todoer/internal/domain"
)

func newEventCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Track dated events such as exams and deadlines",
	}
	cmd.AddCommand(
		newEventAddCmd(e),
		newEventListCmd(e),
		newEventShowCmd(e),
		newEventUpdateCmd(e),
		newEventDeleteCmd(e),
	)
	return cmd
}

func (e *env) resolveEvent(cmd *cobra.Command, ref string) (*domain.Event, error) {
	list, err := e.app.Events.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	return resolveID(ref, list, func(ev *domain.Event) string { return ev.ID }, "event")
}

func newEventAddCmd(e *env) *cobra.Command {
	var title, date, description string
	var priority, repeat int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, e.now())
			if err != nil {
				return err
			}
			ev := &domain.Event{
				Title:       title,
				Description: description,
				Date:        day,
				Priority:    priority,
				Repetition:  repeat,
			}
			if err := e.app.Events.Create(cmd.Context(), ev); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added event %s on %s\n", ev.Title, ev.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "Notes")
	cmd.Flags().IntVar(&priority, "priority", 3, "Priority from 1 (low) to 5 (high)")
	cmd.Flags().IntVar(&repeat, "repeat", 0, "Number of repetitions")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newEventListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.app.Events.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No events found.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatEvents(list, e.now()))
			return nil
		},
	}
}

func newEventShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := e.resolveEvent(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEventDetail(ev, e.now()))
			return nil
		},
	}
}

func newEventUpdateCmd(e *env) *cobra.Command {
	var title, date, description string
	var priority, repeat int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change an event's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := e.resolveEvent(cmd, args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				ev.Title = title
			}
			if flags.Changed("date") {
				if ev.Date, err = parseDay(date, e.now()); err != nil {
					return err
				}
			}
			if flags.Changed("description") {
				ev.Description = description
			}
			if flags.Changed("priority") {
				ev.Priority = priority
			}
			if flags.Changed("repeat") {
				ev.Repetition = repeat
			}
			if err := e.app.Events.Update(cmd.Context(), ev); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %s\n", ev.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "New notes")
	cmd.Flags().IntVar(&priority, "priority", 0, "New priority (1-5)")
	cmd.Flags().IntVar(&repeat, "repeat", 0, "New repetition count")
	return cmd
}

func newEventDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := e.resolveEvent(cmd, args[0])
			if err != nil {
				return err
			}
			if err := e.app.Events.Delete(cmd.Context(), ev.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s\n", ev.Title)
			return nil
		},
	}
}
