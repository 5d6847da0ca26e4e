package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todoer/internal/app"
	"github.com/alexanderramin/todoer/internal/cli/formatter"
)

// Loader builds the App once flags are parsed. configFile is the value of
// --config and may be empty.
type Loader func(ctx context.Context, configFile string) (*app.App, error)

// env is shared by every command. app is set by the root's pre-run hook.
type env struct {
	load       Loader
	configFile string
	app        *app.App
}

// NewRootCmd creates the top-level "todoer" command and registers all
// subcommands.
func NewRootCmd(load Loader) *cobra.Command {
	e := &env{load: load}

	root := &cobra.Command{
		Use:           "todoer",
		Short:         "Daily planner for goals, habits and weekly commitments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			formatter.ConfigureColor(cmd.OutOrStdout())
			if skipsLoad(cmd) || e.app != nil {
				return nil
			}
			a, err := e.load(cmd.Context(), e.configFile)
			if err != nil {
				return err
			}
			e.app = a
			return nil
		},
	}
	root.PersistentFlags().StringVar(&e.configFile, "config", "", "config file (default ~/.todoer/config.yaml)")

	root.AddCommand(
		newInitCmd(e),
		newGoalCmd(e),
		newCommitmentCmd(e),
		newScheduleCmd(e),
		newTaskCmd(e),
		newEventCmd(e),
		newLeisureCmd(e),
		newPointsCmd(e),
		newRemindersCmd(e),
		newImportCmd(e),
		newAICmd(e),
	)
	return root
}

func skipsLoad(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return true
		}
	}
	return false
}

func (e *env) breakdown() error {
	if e.app.Breakdown == nil {
		return fmt.Errorf("AI features are disabled; set llm.enabled in the config")
	}
	return nil
}

func newInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Set up the profile and seed the leisure shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := e.app.Init.Initialize(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if resp.AlreadyInitialized {
				fmt.Fprintln(out, "Already initialized.")
				return nil
			}
			fmt.Fprintf(out, "Initialized. Seeded %d leisure items.\n", resp.SeededItems)
			return nil
		},
	}
}
