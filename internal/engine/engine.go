package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/calendar/internal/calendar"
)

// Store is the durable snapshot of the event collection.
type Store interface {
	// Load returns the persisted events. Absent or unreadable data yields
	// an empty collection, not an error.
	Load(ctx context.Context) ([]calendar.Event, error)

	// Save replaces the persisted collection with events.
	Save(ctx context.Context, events []calendar.Event) error
}

// Engine applies validated event mutations to a Store.
type Engine struct {
	store        Store
	ids          IDGenerator
	defaultColor string
	logger       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaultColor sets the color given to drafts submitted without one.
func WithDefaultColor(color string) Option {
	return func(e *Engine) {
		if color != "" {
			e.defaultColor = color
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine over st. A nil ids defaults to UUIDv7Generator.
func New(st Store, ids IDGenerator, opts ...Option) *Engine {
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	e := &Engine{
		store:        st,
		ids:          ids,
		defaultColor: calendar.DefaultColor,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultColor returns the color applied to drafts without one.
func (e *Engine) DefaultColor() string {
	return e.defaultColor
}

// Events returns the current collection.
func (e *Engine) Events(ctx context.Context) ([]calendar.Event, error) {
	events, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return events, nil
}

// Get returns the event with the given id.
func (e *Engine) Get(ctx context.Context, id calendar.ID) (calendar.Event, error) {
	events, err := e.Events(ctx)
	if err != nil {
		return calendar.Event{}, err
	}
	idx := indexOf(events, id)
	if idx < 0 {
		return calendar.Event{}, NewNotFoundError(id)
	}
	return events[idx], nil
}

// CheckConflict reports whether [start, end) on date would collide with a
// stored event other than excludeID. It does not validate or mutate.
func (e *Engine) CheckConflict(ctx context.Context, date calendar.Date, start, end calendar.TimeOfDay, excludeID calendar.ID) ([]calendar.Event, error) {
	events, err := e.Events(ctx)
	if err != nil {
		return nil, err
	}
	return Conflicts(start, end, events, date, excludeID), nil
}

// Create validates the draft and stores it as a new event on date.
func (e *Engine) Create(ctx context.Context, date calendar.Date, draft calendar.Draft) (calendar.Event, error) {
	out, err := e.Submit(ctx, Submission{Date: date, Draft: draft})
	return out.Event, err
}

// Update replaces the fields and date of event id with the draft.
func (e *Engine) Update(ctx context.Context, id calendar.ID, date calendar.Date, draft calendar.Draft) (calendar.Event, error) {
	out, err := e.Submit(ctx, Submission{EventID: id, Date: date, Draft: draft})
	return out.Event, err
}

// Submit runs a submission through the draft lifecycle.
//
// The returned Outcome always carries the terminal state reached. The error
// is non-nil for every state except StateCommitted; rejections are *Error
// values, anything else is a store failure.
func (e *Engine) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	events, err := e.store.Load(ctx)
	if err != nil {
		return Outcome{State: StateDraft}, fmt.Errorf("load events: %w", err)
	}

	v, err := validate(sub.Date, sub.Draft, e.defaultColor)
	if err != nil {
		e.logger.Debug("submission rejected", "state", StateInvalid, "event_id", sub.EventID, "error", err)
		return Outcome{State: StateInvalid}, err
	}

	idx := -1
	if sub.EventID != "" {
		idx = indexOf(events, sub.EventID)
		if idx < 0 {
			return Outcome{State: StateValidated}, NewNotFoundError(sub.EventID)
		}
	}

	if found := Conflicts(v.start, v.end, events, v.date, sub.EventID); len(found) > 0 {
		e.logger.Debug("submission rejected",
			"state", StateConflicted,
			"event_id", sub.EventID,
			"date", v.date.String(),
			"conflicts", len(found),
		)
		return Outcome{State: StateConflicted, Conflicts: found}, NewConflictError(v.date, sub.EventID, found)
	}

	next := slices.Clone(events)
	var stored calendar.Event
	if idx < 0 {
		stored = v.event(e.ids.Generate())
		next = append(next, stored)
	} else {
		stored = v.event(sub.EventID)
		next[idx] = stored
	}

	if err := e.store.Save(ctx, next); err != nil {
		return Outcome{State: StateValidated}, fmt.Errorf("save events: %w", err)
	}

	e.logger.Info("event committed",
		"event_id", stored.ID,
		"date", stored.Date.String(),
		"created", idx < 0,
	)
	return Outcome{State: StateCommitted, Event: stored}, nil
}

// Delete removes event id. No conflict check applies.
func (e *Engine) Delete(ctx context.Context, id calendar.ID) error {
	events, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	idx := indexOf(events, id)
	if idx < 0 {
		return NewNotFoundError(id)
	}

	next := slices.Delete(slices.Clone(events), idx, idx+1)
	if err := e.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save events: %w", err)
	}

	e.logger.Info("event deleted", "event_id", id)
	return nil
}

func indexOf(events []calendar.Event, id calendar.ID) int {
	return slices.IndexFunc(events, func(ev calendar.Event) bool {
		return ev.ID == id
	})
}
