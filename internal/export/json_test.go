package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calendar/internal/calendar"
	"github.com/roach88/calendar/internal/testutil"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "calendar-events-2024-06.json", FileName(testutil.Date("2024-06-17")))
	assert.Equal(t, "calendar-events-2025-01.json", FileName(testutil.Date("2025-01-01")))
	assert.Equal(t, "calendar-events-2025-01.ics", ICSFileName(testutil.Date("2025-01-31")))
}

func TestJSON_Empty(t *testing.T) {
	for _, events := range [][]calendar.Event{nil, {}} {
		data, err := JSON(events)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	}
}

func TestJSON_Format(t *testing.T) {
	events := []calendar.Event{
		testutil.Event("1", "2024-06-03", "09:00", "09:15",
			testutil.Title("Standup <daily>"),
			testutil.Description("room & call"),
		),
	}

	data, err := JSON(events)
	require.NoError(t, err)

	want := `[
  {
    "id": "1",
    "date": "2024-06-03",
    "title": "Standup <daily>",
    "startTime": "09:00",
    "endTime": "09:15",
    "description": "room & call",
    "color": "#4f46e5"
  }
]`
	assert.Equal(t, want, string(data))
}

func TestJSON_RoundTrip(t *testing.T) {
	events := []calendar.Event{
		testutil.Event("a", "2024-06-03", "09:00", "10:00"),
		testutil.Event("b", "2024-06-04", "13:30", "14:00", testutil.Color("#ff0000")),
		testutil.Event("c", "2024-07-01", "08:00", "08:45", testutil.Description("x")),
	}

	data, err := JSON(events)
	require.NoError(t, err)

	var got []calendar.Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, events, got)
}
