package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/calendar/internal/calendar"
)

// EventFlags holds the event field flags shared by add and edit.
type EventFlags struct {
	Date        string
	Title       string
	Start       string
	End         string
	Description string
	Color       string
}

func (f *EventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Date, "date", "", "event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.Title, "title", "", "event title")
	cmd.Flags().StringVar(&f.Start, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&f.End, "end", "", "end time (HH:MM)")
	cmd.Flags().StringVar(&f.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&f.Color, "color", "", "display color (#rrggbb)")
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &EventFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		Long: `Add a timed event to a day.

The event is rejected if the title is empty, if the end time is not
after the start time, or if it overlaps another event on the same day.
Events that only touch (one ends when the other starts) do not overlap.

Exit codes:
  0 - Event added
  1 - Event rejected
  2 - Command error

Examples:
  cal add --date 2024-06-03 --title Standup --start 09:00 --end 09:15
  cal add --title "Dentist" --start 14:00 --end 15:00 --color "#ef4444"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, flags, cmd)
		},
	}

	flags.register(cmd)

	return cmd
}

func runAdd(opts *RootOptions, flags *EventFlags, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	date, err := parseDateFlag("date", flags.Date, a.today())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	created, err := a.engine.Create(ctx, date, calendar.Draft{
		Title:       flags.Title,
		StartTime:   flags.Start,
		EndTime:     flags.End,
		Description: flags.Description,
		Color:       flags.Color,
	})
	if err != nil {
		return a.reject(err)
	}
	a.logRevision(ctx)

	if opts.Format == "json" {
		return a.out.Success(created)
	}
	fmt.Fprintf(a.out.Writer, "Created %s\n", formatEvent(created))
	return nil
}
