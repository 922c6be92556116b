package view

import (
	"time"

	"github.com/roach88/calendar/internal/calendar"
)

// Day is one cell of the month grid.
type Day struct {
	Date   calendar.Date    `json:"date"`
	Events []calendar.Event `json:"events"`
}

// MonthView is the filtered month grid.
type MonthView struct {
	Month  string `json:"month"`
	Search string `json:"search,omitempty"`
	Days   []Day  `json:"days"`
}

// DaysInMonth returns every day of anchor's month in ascending order.
func DaysInMonth(anchor calendar.Date) []calendar.Date {
	first := anchor.FirstOfMonth()
	n := first.DaysInMonth()
	days := make([]calendar.Date, n)
	for i := range days {
		days[i] = calendar.Date{Year: first.Year, Month: first.Month, Day: i + 1}
	}
	return days
}

// GroupByDay pairs each day with the events dated exactly on it, keeping
// the events' relative order. Events on days not listed are dropped.
func GroupByDay(days []calendar.Date, events []calendar.Event) []Day {
	byDate := make(map[calendar.Date][]calendar.Event, len(days))
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	out := make([]Day, len(days))
	for i, d := range days {
		evs := byDate[d]
		if evs == nil {
			evs = []calendar.Event{}
		}
		out[i] = Day{Date: d, Events: evs}
	}
	return out
}

// ShiftMonth moves anchor by n months. The day is clamped to the length of
// the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func ShiftMonth(anchor calendar.Date, n int) calendar.Date {
	first := time.Date(anchor.Year, anchor.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	target := calendar.DateOf(first)
	target.Day = min(anchor.Day, target.DaysInMonth())
	return target
}

// Month builds the grid for anchor's month from the events matching term.
func Month(anchor calendar.Date, events []calendar.Event, term string) MonthView {
	return MonthView{
		Month:  anchor.MonthString(),
		Search: term,
		Days:   GroupByDay(DaysInMonth(anchor), Filter(events, term)),
	}
}
