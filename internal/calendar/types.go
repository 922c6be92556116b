package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultColor is the color given to events submitted without one.
const DefaultColor = "#4f46e5"

// ID identifies an event for the lifetime of the store.
// Ids are opaque; callers must not derive meaning from their contents.
type ID string

// UnmarshalJSON accepts both string ids and the numeric ids written by
// older snapshots.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("event id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("event id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Event is a titled time interval on a single calendar day.
type Event struct {
	ID          ID        `json:"id"`
	Date        Date      `json:"date"`
	Title       string    `json:"title"`
	StartTime   TimeOfDay `json:"startTime"`
	EndTime     TimeOfDay `json:"endTime"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
}

// Overlaps reports whether e's interval intersects [start, end).
// Adjacent intervals, where one ends exactly when the other starts, do not
// overlap.
func (e Event) Overlaps(start, end TimeOfDay) bool {
	return start < e.EndTime && e.StartTime < end
}

// Draft holds the user-editable fields of an event exactly as entered.
// Times are kept as text so that a missing or malformed value can be
// reported instead of silently becoming midnight.
type Draft struct {
	Title       string `json:"title" yaml:"title"`
	StartTime   string `json:"startTime" yaml:"start"`
	EndTime     string `json:"endTime" yaml:"end"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"`
}

// NewDraft returns an empty draft carrying the given color,
// or DefaultColor when color is empty.
func NewDraft(color string) Draft {
	if color == "" {
		color = DefaultColor
	}
	return Draft{Color: color}
}

// DraftFrom seeds a draft with an existing event's fields, for editing.
func DraftFrom(e Event) Draft {
	return Draft{
		Title:       e.Title,
		StartTime:   e.StartTime.String(),
		EndTime:     e.EndTime.String(),
		Description: e.Description,
		Color:       e.Color,
	}
}

// Normalize trims surrounding whitespace and applies Unicode NFC to the
// free-text fields.
func (d Draft) Normalize() Draft {
	return Draft{
		Title:       normalizeText(d.Title),
		StartTime:   strings.TrimSpace(d.StartTime),
		EndTime:     strings.TrimSpace(d.EndTime),
		Description: normalizeText(d.Description),
		Color:       strings.TrimSpace(d.Color),
	}
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
