// Package testutil provides fixture builders shared by package tests.
package testutil

import (
	"github.com/roach88/calendar/internal/calendar"
)

// Date parses a "2006-01-02" date and panics on bad input.
func Date(s string) calendar.Date {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Event builds a stored event with the default color and no description.
//
//	testutil.Event("1", "2024-06-01", "09:00", "10:00")
func Event(id, date, start, end string, opts ...EventOption) calendar.Event {
	e := calendar.Event{
		ID:        calendar.ID(id),
		Date:      Date(date),
		Title:     "Event " + id,
		StartTime: calendar.MustTimeOfDay(start),
		EndTime:   calendar.MustTimeOfDay(end),
		Color:     calendar.DefaultColor,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// EventOption customizes a fixture event.
type EventOption func(*calendar.Event)

// Title sets the event title.
func Title(title string) EventOption {
	return func(e *calendar.Event) { e.Title = title }
}

// Description sets the event description.
func Description(desc string) EventOption {
	return func(e *calendar.Event) { e.Description = desc }
}

// Color sets the event color.
func Color(color string) EventOption {
	return func(e *calendar.Event) { e.Color = color }
}

// Draft builds a draft with the given title and times.
func Draft(title, start, end string) calendar.Draft {
	return calendar.Draft{
		Title:     title,
		StartTime: start,
		EndTime:   end,
	}
}
