package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/calendar/internal/calendar"
)

// Filter returns the events whose title or description contains term,
// ignoring case. An empty term returns all events. The input is not
// modified; the result is a new slice.
func Filter(events []calendar.Event, term string) []calendar.Event {
	out := make([]calendar.Event, 0, len(events))
	if term == "" {
		return append(out, events...)
	}

	// A Caser keeps state between calls and is not safe for concurrent use.
	fold := cases.Fold()
	needle := fold.String(term)
	for _, e := range events {
		if strings.Contains(fold.String(e.Title), needle) || strings.Contains(fold.String(e.Description), needle) {
			out = append(out, e)
		}
	}
	return out
}
