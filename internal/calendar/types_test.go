package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_JSONShape(t *testing.T) {
	e := Event{
		ID:        "evt-1",
		Date:      Date{Year: 2024, Month: time.June, Day: 1},
		Title:     "Standup",
		StartTime: MustTimeOfDay("09:00"),
		EndTime:   MustTimeOfDay("09:15"),
		Color:     DefaultColor,
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "evt-1",
		"date": "2024-06-01",
		"title": "Standup",
		"startTime": "09:00",
		"endTime": "09:15",
		"description": "",
		"color": "#4f46e5"
	}`, string(data))
}

func TestEvent_DecodesLegacyNumericID(t *testing.T) {
	legacy := `{"id":1717228800000,"date":"2024-06-01","title":"Lunch",
		"startTime":"12:00","endTime":"13:00","description":"","color":"#4f46e5"}`

	var e Event
	require.NoError(t, json.Unmarshal([]byte(legacy), &e))
	assert.Equal(t, ID("1717228800000"), e.ID)
	assert.Equal(t, MustTimeOfDay("12:00"), e.StartTime)
}

func TestID_RejectsGarbage(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestEvent_Overlaps(t *testing.T) {
	e := Event{StartTime: MustTimeOfDay("09:00"), EndTime: MustTimeOfDay("10:00")}

	assert.True(t, e.Overlaps(MustTimeOfDay("09:30"), MustTimeOfDay("10:30")))
	assert.True(t, e.Overlaps(MustTimeOfDay("08:00"), MustTimeOfDay("11:00")))
	assert.True(t, e.Overlaps(MustTimeOfDay("09:15"), MustTimeOfDay("09:45")))
	assert.False(t, e.Overlaps(MustTimeOfDay("10:00"), MustTimeOfDay("11:00")))
	assert.False(t, e.Overlaps(MustTimeOfDay("08:00"), MustTimeOfDay("09:00")))
}

func TestDraft_Normalize(t *testing.T) {
	// "é" as e + combining acute accent.
	d := Draft{
		Title:       "  Cafe\u0301 meetup ",
		StartTime:   " 09:00",
		EndTime:     "10:00 ",
		Description: "\tnotes\n",
		Color:       " #ff0000 ",
	}.Normalize()

	assert.Equal(t, "Caf\u00e9 meetup", d.Title)
	assert.Equal(t, "09:00", d.StartTime)
	assert.Equal(t, "10:00", d.EndTime)
	assert.Equal(t, "notes", d.Description)
	assert.Equal(t, "#ff0000", d.Color)
}

func TestNewDraft(t *testing.T) {
	assert.Equal(t, DefaultColor, NewDraft("").Color)
	assert.Equal(t, "#123456", NewDraft("#123456").Color)
}

func TestDraftFrom(t *testing.T) {
	e := Event{
		ID:          "evt-1",
		Title:       "Review",
		StartTime:   MustTimeOfDay("14:00"),
		EndTime:     MustTimeOfDay("15:30"),
		Description: "quarterly",
		Color:       "#00ff00",
	}
	assert.Equal(t, Draft{
		Title:       "Review",
		StartTime:   "14:00",
		EndTime:     "15:30",
		Description: "quarterly",
		Color:       "#00ff00",
	}, DraftFrom(e))
}
