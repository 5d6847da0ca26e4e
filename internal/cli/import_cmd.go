package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todoer/internal/importer"
	"github.com/alexanderramin/todoer/internal/service"
)

func newImportCmd(e *env) *cobra.Command {
	var watch bool
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load goals and weekly commitments from a YAML or JSON plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			path := args[0]

			if !watch {
				res, err := e.app.Import.ImportFile(ctx, path)
				if err != nil {
					return err
				}
				printImport(out, res)
				return nil
			}

			reimport := func() {
				resp, err := e.app.Reimport(ctx, path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "import failed: %v\n", err)
					return
				}
				printImport(out, resp.Import)
				fmt.Fprintf(out, "Replanned today: %d task(s).\n", len(resp.Plan.Schedule.Tasks))
			}

			reimport()
			fmt.Fprintf(out, "Watching %s for changes (Ctrl-C to stop)...\n", path)
			return importer.Watch(ctx, path, debounce, reimport)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Re-import and replan today whenever the file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", importer.DefaultDebounce, "Quiet period after a change before re-importing")
	return cmd
}

func printImport(w io.Writer, res *service.ImportResult) {
	fmt.Fprintf(w, "Imported: %d goal(s) created, %d updated, %d commitment(s) written, %d replaced.\n",
		res.GoalsCreated, res.GoalsUpdated, res.CommitmentsWritten, res.CommitmentsRemoved)
}
