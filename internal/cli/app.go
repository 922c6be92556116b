package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/calendar/internal/calendar"
	"github.com/roach88/calendar/internal/config"
	"github.com/roach88/calendar/internal/engine"
	"github.com/roach88/calendar/internal/store"
)

// app is the per-command wiring of config, logger, store and engine.
type app struct {
	opts   *RootOptions
	cfg    *config.Config
	logger *slog.Logger
	out    *OutputFormatter
	db     *store.SQLite
	events *store.Events
	engine *engine.Engine
}

// loadConfig resolves the configuration once per process.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	if o.Config != nil {
		return o.Config, nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	o.Config = cfg
	return cfg, nil
}

// newLogger builds the text logger on stderr. --verbose forces debug.
func newLogger(cmd *cobra.Command, opts *RootOptions, cfg *config.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// newFormatter builds the output formatter for cmd.
func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openApp loads config, sets up logging and opens the database.
// Callers must Close the returned app.
func openApp(cmd *cobra.Command, opts *RootOptions) (*app, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd, opts, cfg)
	slog.SetDefault(logger)

	path := cfg.Database
	if opts.Database != "" {
		path = opts.Database
	}

	logger.Debug("opening database", "path", path)
	db, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	events := store.NewEvents(db, logger)
	eng := engine.New(events, opts.IDs,
		engine.WithDefaultColor(cfg.DefaultColor),
		engine.WithLogger(logger),
	)

	return &app{
		opts:   opts,
		cfg:    cfg,
		logger: logger,
		out:    newFormatter(cmd, opts),
		db:     db,
		events: events,
		engine: eng,
	}, nil
}

// Close closes the database.
func (a *app) Close() error {
	return a.db.Close()
}

// today is the current date in the configured timezone.
func (a *app) today() calendar.Date {
	return calendar.DateOf(time.Now().In(a.cfg.Location()))
}

// logRevision reports the snapshot revision after a mutation. It is only
// printed with --verbose.
func (a *app) logRevision(ctx context.Context) {
	rev, err := a.events.Revision(ctx)
	if err != nil {
		a.logger.Warn("failed to read snapshot revision", "error", err)
		return
	}
	a.out.VerboseLog("Snapshot revision %d", rev)
}

// conflictDetail is the JSON shape of a conflicting event in error details.
type conflictDetail struct {
	ID        calendar.ID `json:"id"`
	Title     string      `json:"title"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
}

// reject reports an engine error. Rejections (validation, conflict, not
// found) are printed through the formatter and exit 1; anything else is a
// command error.
func (a *app) reject(err error) error {
	var rerr *engine.Error
	if !errors.As(err, &rerr) {
		return WrapExitError(ExitCommandError, "operation failed", err)
	}

	code := "E_" + string(rerr.Code)
	var details interface{}
	switch rerr.Code {
	case engine.ErrCodeValidation:
		details = map[string]string{"field": rerr.Field}
	case engine.ErrCodeConflict:
		conflicts := make([]conflictDetail, len(rerr.Conflicts))
		for i, c := range rerr.Conflicts {
			conflicts[i] = conflictDetail{
				ID:        c.ID,
				Title:     c.Title,
				StartTime: c.StartTime.String(),
				EndTime:   c.EndTime.String(),
			}
		}
		details = map[string]interface{}{"date": rerr.Date.String(), "conflicts": conflicts}
	case engine.ErrCodeNotFound:
		details = map[string]string{"id": string(rerr.EventID)}
	}

	if ferr := a.out.Error(code, rerr.Message, details); ferr != nil {
		return ferr
	}
	if a.opts.Format != "json" && rerr.Code == engine.ErrCodeConflict {
		for _, c := range rerr.Conflicts {
			fmt.Fprintf(a.out.Writer, "  conflicts with %s\n", formatEvent(c))
		}
	}
	return NewExitError(ExitFailure, rerr.Error())
}

// formatEvent renders an event on one line for text output.
func formatEvent(e calendar.Event) string {
	return fmt.Sprintf("%s  %s  %s-%s  %s", e.ID, e.Date, e.StartTime, e.EndTime, e.Title)
}

// parseDateFlag parses a --date style value, defaulting to def when empty.
func parseDateFlag(name, value string, def calendar.Date) (calendar.Date, error) {
	if value == "" {
		return def, nil
	}
	d, err := calendar.ParseDate(value)
	if err != nil {
		return calendar.Date{}, WrapExitError(ExitCommandError, "invalid --"+name, err)
	}
	return d, nil
}

// parseMonthFlag parses a yyyy-mm value, defaulting to def when empty.
func parseMonthFlag(value string, def calendar.Date) (calendar.Date, error) {
	if value == "" {
		return def, nil
	}
	d, err := calendar.ParseMonth(value)
	if err != nil {
		return calendar.Date{}, WrapExitError(ExitCommandError, "invalid month", err)
	}
	return d, nil
}
