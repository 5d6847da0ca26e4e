package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todoer/internal/cli/formatter"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/intelligence"
)

func newGoalCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals and their steps",
	}
	cmd.AddCommand(
		newGoalAddCmd(e),
		newGoalListCmd(e),
		newGoalShowCmd(e),
		newGoalUpdateCmd(e),
		newGoalDeleteCmd(e),
		newGoalCompleteStepCmd(e),
		newGoalCoachCmd(e),
	)
	return cmd
}

// parseStep reads "text:minutes". The duration is taken after the last
// colon so step text may itself contain colons.
func parseStep(s string) (domain.Step, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return domain.Step{}, fmt.Errorf("invalid step %q (want \"text:minutes\")", s)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return domain.Step{}, fmt.Errorf("invalid step duration in %q: %w", s, err)
	}
	return domain.Step{Text: strings.TrimSpace(s[:i]), DurationMin: minutes}, nil
}

func parseSteps(raw []string) ([]domain.Step, error) {
	steps := make([]domain.Step, 0, len(raw))
	for _, s := range raw {
		step, err := parseStep(s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func newGoalAddCmd(e *env) *cobra.Command {
	var (
		description, sector, when, end string
		timesPerWeek, allocation       int
		stepFlags                      []string
		useAI                          bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			endDate, err := parseDay(end, e.now())
			if err != nil {
				return err
			}
			g := &domain.Goal{
				Description:   description,
				Sector:        sector,
				PreferredTime: domain.PreferredTime(strings.ToLower(when)),
				EndDate:       endDate,
				TimesPerWeek:  timesPerWeek,
			}
			if allocation > 0 {
				g.DailyTimeAllocation = &allocation
			}
			if g.Steps, err = parseSteps(stepFlags); err != nil {
				return err
			}

			if useAI {
				if err := e.breakdown(); err != nil {
					return err
				}
				bd, err := e.app.Breakdown.Breakdown(ctx, intelligence.BreakdownRequest{
					Description:   g.Description,
					Sector:        g.Sector,
					PreferredTime: g.PreferredTime,
					EndDate:       g.EndDate,
					TimesPerWeek:  g.TimesPerWeek,
				})
				if err != nil {
					return fmt.Errorf("AI breakdown failed: %w", err)
				}
				g.Steps = append(g.Steps, bd.Steps...)
				g.HabitTips = bd.HabitTips
				g.IdentityStatement = bd.IdentityStatement
				fmt.Fprintln(out, formatter.FormatBreakdown(bd))
			}

			if err := e.app.Goals.Create(ctx, g); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created goal %s (%s, %d steps)\n", g.Description, formatter.ShortID(g.ID), len(g.Steps))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What you want to achieve")
	cmd.Flags().StringVar(&sector, "sector", "", "Life sector, e.g. Academic or Health")
	cmd.Flags().StringVar(&when, "when", string(domain.TimeAnytime), "Preferred time of day (morning, afternoon, evening, night, anytime, ...)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&timesPerWeek, "times-per-week", 7, "How many days a week to work on it (1-7)")
	cmd.Flags().IntVar(&allocation, "allocation", 0, "Daily minute budget (0 for unlimited)")
	cmd.Flags().StringArrayVar(&stepFlags, "step", nil, "Step as \"text:minutes\" (repeatable)")
	cmd.Flags().BoolVar(&useAI, "ai", false, "Generate steps with the AI coach")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newGoalListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := e.app.Goals.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(out, "No goals found.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatGoalList(goals, e.now()))
			return nil
		},
	}
}

func newGoalShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a goal with its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := e.resolveGoal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGoalDetail(g))
			return nil
		},
	}
}

func newGoalUpdateCmd(e *env) *cobra.Command {
	var (
		description, sector, when, end string
		timesPerWeek, allocation       int
		stepFlags                      []string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a goal's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := e.resolveGoal(ctx, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("description") {
				g.Description = description
			}
			if flags.Changed("sector") {
				g.Sector = sector
			}
			if flags.Changed("when") {
				g.PreferredTime = domain.PreferredTime(strings.ToLower(when))
			}
			if flags.Changed("end") {
				if g.EndDate, err = parseDay(end, e.now()); err != nil {
					return err
				}
			}
			if flags.Changed("times-per-week") {
				g.TimesPerWeek = timesPerWeek
			}
			if flags.Changed("allocation") {
				g.DailyTimeAllocation = nil
				if allocation > 0 {
					g.DailyTimeAllocation = &allocation
				}
			}
			if flags.Changed("step") {
				if g.Steps, err = parseSteps(stepFlags); err != nil {
					return err
				}
				g.Progress = g.ComputeProgress()
			}

			if err := e.app.Goals.Update(ctx, g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated goal %s\n", g.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&sector, "sector", "", "New sector")
	cmd.Flags().StringVar(&when, "when", "", "New preferred time of day")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&timesPerWeek, "times-per-week", 0, "New weekly frequency (1-7)")
	cmd.Flags().IntVar(&allocation, "allocation", 0, "New daily minute budget (0 clears it)")
	cmd.Flags().StringArrayVar(&stepFlags, "step", nil, "Replace all steps; \"text:minutes\" (repeatable)")

	return cmd
}

func newGoalDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := e.resolveGoal(ctx, args[0])
			if err != nil {
				return err
			}
			if err := e.app.Goals.Delete(ctx, g.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s\n", g.Description)
			return nil
		},
	}
}

func newGoalCompleteStepCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "complete-step ID N",
		Short: "Mark step N (1-based) of a goal as done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := e.resolveGoal(ctx, args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step number %q", args[1])
			}
			g, err = e.app.Goals.CompleteStep(ctx, g.ID, n-1)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Step %d done. %s\n", n, formatter.RenderProgress(g.Progress, 20))
			return nil
		},
	}
}

func newGoalCoachCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "coach ID",
		Short: "Refresh a goal's identity statement and habit tips with the AI coach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.breakdown(); err != nil {
				return err
			}
			ctx := cmd.Context()
			g, err := e.resolveGoal(ctx, args[0])
			if err != nil {
				return err
			}

			texts := make([]string, 0, len(g.Steps))
			for _, s := range g.Steps {
				texts = append(texts, s.Text)
			}
			g.IdentityStatement = e.app.Breakdown.IdentityStatement(ctx, g.Description, g.Sector)
			g.HabitTips = e.app.Breakdown.HabitTips(ctx, texts)
			if err := e.app.Goals.Update(ctx, g); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", formatter.Bold(g.IdentityStatement))
			for _, tip := range g.HabitTips {
				fmt.Fprintf(out, "  • %s\n", tip)
			}
			return nil
		},
	}
}
