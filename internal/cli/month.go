package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/calendar/internal/view"
)

// MonthOptions holds flags for the month command.
type MonthOptions struct {
	*RootOptions
	Search string
}

// NewMonthCommand creates the month command.
func NewMonthCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MonthOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show a month grouped by day",
		Long: `Show every day of a month with its events.

Without an argument the current month is shown. In text output, days
without events are skipped; JSON output lists every day.

Examples:
  cal month
  cal month 2024-02 --search gym`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var month string
			if len(args) == 1 {
				month = args[0]
			}
			return runMonth(opts, month, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by title or description")

	return cmd
}

func runMonth(opts *MonthOptions, month string, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	anchor, err := parseMonthFlag(month, a.today())
	if err != nil {
		return err
	}

	events, err := a.engine.Events(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load events", err)
	}

	mv := view.Month(anchor, events, opts.Search)
	if opts.Format == "json" {
		return a.out.Success(mv)
	}

	w := a.out.Writer
	fmt.Fprintf(w, "%s %d\n", anchor.Month, anchor.Year)
	if opts.Search != "" {
		fmt.Fprintf(w, "matching %q\n", opts.Search)
	}

	shown := 0
	for _, day := range mv.Days {
		if len(day.Events) == 0 {
			continue
		}
		weekday := day.Date.Time(time.UTC).Weekday().String()[:3]
		fmt.Fprintf(w, "\n%s %02d\n", weekday, day.Date.Day)
		for _, e := range day.Events {
			fmt.Fprintf(w, "  %s-%s  %s  (%s)\n", e.StartTime, e.EndTime, e.Title, e.ID)
		}
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "No events.")
	}
	return nil
}
