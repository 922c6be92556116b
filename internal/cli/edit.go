package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calendar/internal/calendar"
)

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &EventFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an event",
		Long: `Change the fields or the day of an existing event.

Only the flags given are changed; the rest keep their stored values.
The edited event is checked for overlaps on its (possibly new) day,
ignoring itself.

Examples:
  cal edit 01907f3c-... --start 09:30 --end 09:45
  cal edit 01907f3c-... --date 2024-06-04`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(rootOpts, flags, args[0], cmd)
		},
	}

	flags.register(cmd)

	return cmd
}

func runEdit(opts *RootOptions, flags *EventFlags, id string, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	existing, err := a.engine.Get(ctx, calendar.ID(id))
	if err != nil {
		return a.reject(err)
	}

	date, err := parseDateFlag("date", flags.Date, existing.Date)
	if err != nil {
		return err
	}

	draft := calendar.DraftFrom(existing)
	changed := cmd.Flags().Changed
	if changed("title") {
		draft.Title = flags.Title
	}
	if changed("start") {
		draft.StartTime = flags.Start
	}
	if changed("end") {
		draft.EndTime = flags.End
	}
	if changed("description") {
		draft.Description = flags.Description
	}
	if changed("color") {
		draft.Color = flags.Color
	}

	updated, err := a.engine.Update(ctx, existing.ID, date, draft)
	if err != nil {
		return a.reject(err)
	}
	a.logRevision(ctx)

	if opts.Format == "json" {
		return a.out.Success(updated)
	}
	fmt.Fprintf(a.out.Writer, "Updated %s\n", formatEvent(updated))
	return nil
}
