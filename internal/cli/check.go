package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calendar/internal/calendar"
	"github.com/roach88/calendar/internal/engine"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Date    string
	Start   string
	End     string
	Exclude string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a time slot for conflicts",
		Long: `Report the events that would overlap a time slot, without saving.

Exit codes:
  0 - Slot is free
  1 - Slot conflicts with existing events
  2 - Command error

Examples:
  cal check --date 2024-06-03 --start 09:00 --end 10:00
  cal check --date 2024-06-03 --start 09:00 --end 10:00 --exclude 01907f3c-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "day to check (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&opts.End, "end", "", "end time (HH:MM)")
	cmd.Flags().StringVar(&opts.Exclude, "exclude", "", "event id to ignore (the event being edited)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	date, err := parseDateFlag("date", opts.Date, a.today())
	if err != nil {
		return err
	}
	start, err := calendar.ParseTimeOfDay(opts.Start)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --start", err)
	}
	end, err := calendar.ParseTimeOfDay(opts.End)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --end", err)
	}
	if start >= end {
		return NewExitError(ExitCommandError, "end time must be after start time")
	}

	exclude := calendar.ID(opts.Exclude)
	conflicts, err := a.engine.CheckConflict(cmd.Context(), date, start, end, exclude)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load events", err)
	}
	if len(conflicts) > 0 {
		return a.reject(engine.NewConflictError(date, exclude, conflicts))
	}

	if opts.Format == "json" {
		return a.out.Success(map[string]interface{}{
			"date":     date.String(),
			"conflict": false,
		})
	}
	fmt.Fprintf(a.out.Writer, "No conflicts on %s %s-%s\n", date, start, end)
	return nil
}
