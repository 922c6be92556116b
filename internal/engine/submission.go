package engine

import "github.com/roach88/calendar/internal/calendar"

// State is the position of a submission in the draft lifecycle.
type State string

const (
	// StateDraft is an unvalidated submission.
	StateDraft State = "draft"

	// StateInvalid is terminal: the draft failed validation.
	StateInvalid State = "invalid"

	// StateValidated means the draft passed validation and awaits the
	// conflict check.
	StateValidated State = "validated"

	// StateConflicted is terminal: the draft overlaps an existing event.
	StateConflicted State = "conflicted"

	// StateCommitted is terminal: the change was applied and saved.
	StateCommitted State = "committed"
)

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	switch s {
	case StateInvalid, StateConflicted, StateCommitted:
		return true
	}
	return false
}

// Submission is a create (EventID empty) or update request.
type Submission struct {
	// EventID is the event being edited; empty creates a new event.
	EventID calendar.ID

	// Date is the day the event should land on. It may differ from the
	// edited event's current date.
	Date calendar.Date

	// Draft holds the field values as entered.
	Draft calendar.Draft
}

// Outcome reports how far a submission got.
type Outcome struct {
	// State is the terminal state reached.
	State State

	// Event is the stored event after a commit.
	Event calendar.Event

	// Conflicts lists the overlapping events when State is StateConflicted.
	Conflicts []calendar.Event
}

// validated holds the parsed fields of a draft that passed validation.
type validated struct {
	date  calendar.Date
	draft calendar.Draft
	start calendar.TimeOfDay
	end   calendar.TimeOfDay
}

// validate performs the Draft -> Validated transition.
func validate(date calendar.Date, d calendar.Draft, defaultColor string) (validated, error) {
	d = d.Normalize()

	if date.IsZero() {
		return validated{}, NewValidationError("date", "date is required")
	}
	if d.Title == "" {
		return validated{}, NewValidationError("title", "title is required")
	}
	if d.StartTime == "" {
		return validated{}, NewValidationError("startTime", "start time is required")
	}
	if d.EndTime == "" {
		return validated{}, NewValidationError("endTime", "end time is required")
	}

	start, err := calendar.ParseTimeOfDay(d.StartTime)
	if err != nil {
		return validated{}, NewValidationError("startTime", err.Error())
	}
	end, err := calendar.ParseTimeOfDay(d.EndTime)
	if err != nil {
		return validated{}, NewValidationError("endTime", err.Error())
	}
	if start >= end {
		return validated{}, NewValidationError("endTime", "end time must be after start time")
	}

	if d.Color == "" {
		d.Color = defaultColor
	}

	return validated{date: date, draft: d, start: start, end: end}, nil
}

// event builds the stored record for id from the validated fields.
func (v validated) event(id calendar.ID) calendar.Event {
	return calendar.Event{
		ID:          id,
		Date:        v.date,
		Title:       v.draft.Title,
		StartTime:   v.start,
		EndTime:     v.end,
		Description: v.draft.Description,
		Color:       v.draft.Color,
	}
}
