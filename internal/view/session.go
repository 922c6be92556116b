package view

import (
	"context"
	"errors"

	"github.com/roach88/calendar/internal/calendar"
	"github.com/roach88/calendar/internal/engine"
)

// ErrNoSelection is returned by Session.Delete when no event is selected.
var ErrNoSelection = errors.New("no event selected")

// Mutator applies submissions and deletions. *engine.Engine implements it.
type Mutator interface {
	Submit(ctx context.Context, sub engine.Submission) (engine.Outcome, error)
	Delete(ctx context.Context, id calendar.ID) error
}

// Session is the transient state between user actions: the visible month,
// the selected day and event, the draft being edited, and the search term.
// It is never persisted.
type Session struct {
	// Month is any date inside the visible month.
	Month calendar.Date

	// Selected is the day new or edited events are submitted to.
	Selected calendar.Date

	// EventID is the event being edited; empty when adding.
	EventID calendar.ID

	// Draft is the edit buffer.
	Draft calendar.Draft

	// Search is the current filter term.
	Search string

	defaultColor string
}

// NewSession starts a session showing today's month with today selected.
func NewSession(today calendar.Date, defaultColor string) *Session {
	return &Session{
		Month:        today,
		Selected:     today,
		Draft:        calendar.NewDraft(defaultColor),
		defaultColor: defaultColor,
	}
}

// Editing reports whether the draft targets an existing event.
func (s *Session) Editing() bool {
	return s.EventID != ""
}

// SelectDay starts a new event on d with a blank draft.
func (s *Session) SelectDay(d calendar.Date) {
	s.Selected = d
	s.reset()
}

// SelectEvent starts editing e. The draft is seeded with e's fields.
func (s *Session) SelectEvent(e calendar.Event) {
	s.Selected = e.Date
	s.EventID = e.ID
	s.Draft = calendar.DraftFrom(e)
}

// NextMonth shows the following month.
func (s *Session) NextMonth() {
	s.Month = ShiftMonth(s.Month, 1)
}

// PrevMonth shows the preceding month.
func (s *Session) PrevMonth() {
	s.Month = ShiftMonth(s.Month, -1)
}

// SetSearch changes the filter term.
func (s *Session) SetSearch(term string) {
	s.Search = term
}

// View projects events into the visible month under the current search.
func (s *Session) View(events []calendar.Event) MonthView {
	return Month(s.Month, events, s.Search)
}

// Submit sends the draft to m for the selected day. On commit the draft and
// event selection reset; on rejection they are left for the user to fix.
func (s *Session) Submit(ctx context.Context, m Mutator) (engine.Outcome, error) {
	out, err := m.Submit(ctx, engine.Submission{
		EventID: s.EventID,
		Date:    s.Selected,
		Draft:   s.Draft,
	})
	if err != nil {
		return out, err
	}
	s.reset()
	return out, nil
}

// Delete removes the selected event and resets the draft.
func (s *Session) Delete(ctx context.Context, m Mutator) error {
	if !s.Editing() {
		return ErrNoSelection
	}
	if err := m.Delete(ctx, s.EventID); err != nil {
		return err
	}
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.EventID = ""
	s.Draft = calendar.NewDraft(s.defaultColor)
}
