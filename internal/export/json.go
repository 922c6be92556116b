package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/calendar/internal/calendar"
)

// FileName returns the JSON export name for month, e.g.
// "calendar-events-2024-06.json". Only year and month of the date are used.
func FileName(month calendar.Date) string {
	return fmt.Sprintf("calendar-events-%s.json", month.MonthString())
}

// ICSFileName is FileName for the iCalendar export.
func ICSFileName(month calendar.Date) string {
	return fmt.Sprintf("calendar-events-%s.ics", month.MonthString())
}

// JSON serializes events as a 2-space indented array. An empty or nil
// collection yields "[]".
func JSON(events []calendar.Event) ([]byte, error) {
	if events == nil {
		events = []calendar.Event{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return nil, fmt.Errorf("encode events: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
