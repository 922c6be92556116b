package engine

import "github.com/roach88/calendar/internal/calendar"

// HasTimeConflict reports whether [start, end) overlaps any event stored on
// date on, ignoring the event excludeID (the one being edited; empty when
// creating).
//
// Events on other dates never conflict. Callers must validate start < end
// first; an inverted interval overlaps nothing.
func HasTimeConflict(start, end calendar.TimeOfDay, existing []calendar.Event, on calendar.Date, excludeID calendar.ID) bool {
	for _, e := range existing {
		if conflicts(e, start, end, on, excludeID) {
			return true
		}
	}
	return false
}

// Conflicts returns the events HasTimeConflict would match, in store order.
// Returns nil if there are none.
func Conflicts(start, end calendar.TimeOfDay, existing []calendar.Event, on calendar.Date, excludeID calendar.ID) []calendar.Event {
	var out []calendar.Event
	for _, e := range existing {
		if conflicts(e, start, end, on, excludeID) {
			out = append(out, e)
		}
	}
	return out
}

func conflicts(e calendar.Event, start, end calendar.TimeOfDay, on calendar.Date, excludeID calendar.ID) bool {
	if excludeID != "" && e.ID == excludeID {
		return false
	}
	if e.Date != on {
		return false
	}
	return e.Overlaps(start, end)
}
