package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calendar/internal/calendar"
	"github.com/roach88/calendar/internal/view"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Search string
	Month  string
	Date   string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long: `List stored events in store order.

--search keeps events whose title or description contains the term,
ignoring case. --date and --month narrow the list to one day or month.

Examples:
  cal list
  cal list --month 2024-06 --search standup
  cal list --date 2024-06-03 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by title or description")
	cmd.Flags().StringVar(&opts.Month, "month", "", "only events in this month (YYYY-MM)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "only events on this day (YYYY-MM-DD)")
	cmd.MarkFlagsMutuallyExclusive("month", "date")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	var day, month calendar.Date
	if day, err = parseDateFlag("date", opts.Date, calendar.Date{}); err != nil {
		return err
	}
	if month, err = parseMonthFlag(opts.Month, calendar.Date{}); err != nil {
		return err
	}

	events, err := a.engine.Events(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load events", err)
	}

	matched := view.Filter(events, opts.Search)
	switch {
	case !day.IsZero():
		matched = keep(matched, func(e calendar.Event) bool { return e.Date == day })
	case !month.IsZero():
		matched = keep(matched, func(e calendar.Event) bool {
			return e.Date.Year == month.Year && e.Date.Month == month.Month
		})
	}

	if opts.Format == "json" {
		return a.out.Success(matched)
	}

	w := a.out.Writer
	if len(matched) == 0 {
		fmt.Fprintln(w, "No events.")
		return nil
	}
	for _, e := range matched {
		fmt.Fprintln(w, formatEvent(e))
	}
	return nil
}

// keep returns the events for which fn is true.
func keep(events []calendar.Event, fn func(calendar.Event) bool) []calendar.Event {
	out := make([]calendar.Event, 0, len(events))
	for _, e := range events {
		if fn(e) {
			out = append(out, e)
		}
	}
	return out
}
