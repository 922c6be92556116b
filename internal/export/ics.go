package export

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/roach88/calendar/internal/calendar"
)

// ProductID identifies this program in exported calendars.
const ProductID = "-//roach88//cal//EN"

// ICS serializes events as an iCalendar document with one VEVENT per event.
// Dates and times are interpreted in loc (UTC when nil). stamp is written as
// every event's DTSTAMP.
func ICS(events []calendar.Event, loc *time.Location, stamp time.Time) []byte {
	if loc == nil {
		loc = time.UTC
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, e := range events {
		ve := cal.AddEvent(string(e.ID))
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.StartTime.On(e.Date, loc))
		ve.SetEndAt(e.EndTime.On(e.Date, loc))
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Color != "" {
			ve.SetProperty(ical.ComponentPropertyColor, e.Color)
		}
	}

	return []byte(cal.Serialize())
}
