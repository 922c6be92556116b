package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/calendar/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Month string
	Dir   string
	ICS   bool
}

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Files  []string `json:"files"`
	Events int      `json:"events"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all events to a file",
		Long: `Write every stored event to calendar-events-YYYY-MM.json.

The month only names the file; the export always contains the whole
calendar. With --ics an iCalendar file is written alongside.

Examples:
  cal export
  cal export --month 2024-06 --dir ~/backups --ics`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Month, "month", "", "month used in the file name (YYYY-MM, default current)")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&opts.ICS, "ics", false, "also write an iCalendar file")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	a, err := openApp(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	month, err := parseMonthFlag(opts.Month, a.today())
	if err != nil {
		return err
	}
	dir := opts.Dir
	if dir == "" {
		dir = a.cfg.ExportDir
	}

	events, err := a.engine.Events(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load events", err)
	}

	data, err := export.JSON(events)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode events", err)
	}
	path, err := export.WriteFile(dir, export.FileName(month), data)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write export", err)
	}
	result := ExportResult{Files: []string{path}, Events: len(events)}

	if opts.ICS {
		ics := export.ICS(events, a.cfg.Location(), time.Now().UTC())
		path, err := export.WriteFile(dir, export.ICSFileName(month), ics)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write iCalendar export", err)
		}
		result.Files = append(result.Files, path)
	}

	a.logger.Info("export written", "events", result.Events, "files", len(result.Files))

	if opts.Format == "json" {
		return a.out.Success(result)
	}
	for _, f := range result.Files {
		fmt.Fprintf(a.out.Writer, "Exported %d event(s) to %s\n", result.Events, f)
	}
	return nil
}
