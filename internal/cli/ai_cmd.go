package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAICmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "AI coach utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Check that the configured model endpoint answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.breakdown(); err != nil {
				return err
			}
			if err := e.app.Breakdown.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("AI endpoint unreachable: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "AI endpoint is reachable.")
			return nil
		},
	})
	return cmd
}
