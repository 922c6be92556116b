package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calendar/internal/calendar"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete an event",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, id string, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := a.engine.Delete(ctx, calendar.ID(id)); err != nil {
		return a.reject(err)
	}
	a.logRevision(ctx)

	if opts.Format == "json" {
		return a.out.Success(map[string]string{"deleted": id})
	}
	fmt.Fprintf(a.out.Writer, "Deleted %s\n", id)
	return nil
}
