package store

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calendar/internal/calendar"
)

func sampleEvents() []calendar.Event {
	day := calendar.Date{Year: 2024, Month: time.June, Day: 1}
	return []calendar.Event{
		{
			ID:        "1",
			Date:      day,
			Title:     "Standup",
			StartTime: calendar.MustTimeOfDay("09:00"),
			EndTime:   calendar.MustTimeOfDay("10:00"),
			Color:     calendar.DefaultColor,
		},
		{
			ID:          "2",
			Date:        day,
			Title:       "Design <review> & lunch",
			StartTime:   calendar.MustTimeOfDay("12:00"),
			EndTime:     calendar.MustTimeOfDay("13:30"),
			Description: "bring notes",
			Color:       "#ff0000",
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEvents_LoadAbsent(t *testing.T) {
	s := NewEvents(NewMemory(), quietLogger())

	events, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEvents_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	backends := map[string]KV{
		"memory": NewMemory(),
		"sqlite": createTestSQLite(t),
	}

	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			s := NewEvents(kv, quietLogger())
			require.NoError(t, s.Save(ctx, sampleEvents()))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleEvents(), got)

			rev, err := s.Revision(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), rev)
		})
	}
}

func TestEvents_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewEvents(NewMemory(), quietLogger())

	require.NoError(t, s.Save(ctx, sampleEvents()))
	require.NoError(t, s.Save(ctx, sampleEvents()[:1]))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, calendar.ID("1"), got[0].ID)
}

func TestEvents_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	s := NewEvents(kv, quietLogger())

	require.NoError(t, s.Save(ctx, nil))

	raw, ok, err := kv.Get(ctx, EventsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestEvents_StoredTextIsNotHTMLEscaped(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	s := NewEvents(kv, quietLogger())

	require.NoError(t, s.Save(ctx, sampleEvents()))

	raw, _, err := kv.Get(ctx, EventsKey)
	require.NoError(t, err)
	assert.Contains(t, raw, "Design <review> & lunch")
}

func TestEvents_CorruptSnapshotFailsSoft(t *testing.T) {
	corrupt := []string{
		"",
		"{not json",
		`{"id":"1"}`,
		`[{"id":"1","date":"yesterday","title":"x","startTime":"09:00","endTime":"10:00"}]`,
		`[{"id":"1","date":"2024-06-01","title":"x","startTime":"nine","endTime":"10:00"}]`,
	}

	for _, raw := range corrupt {
		t.Run(raw, func(t *testing.T) {
			ctx := context.Background()
			kv := NewMemory()
			require.NoError(t, kv.Put(ctx, EventsKey, raw))

			var logs bytes.Buffer
			s := NewEvents(kv, slog.New(slog.NewTextHandler(&logs, nil)))

			events, err := s.Load(ctx)
			require.NoError(t, err)
			assert.NotNil(t, events)
			assert.Empty(t, events)
			assert.Contains(t, logs.String(), "discarding unreadable event snapshot")
		})
	}
}

func TestEvents_OneBadRecordIsReplacedOnSave(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	raw := `[{"id":"1","date":"2024-06-01","title":"ok","startTime":"09:00","endTime":"10:00"},` +
		`{"id":"2","date":"2024-06-01","title":"bad","startTime":"nine","endTime":"10:00"}]`
	require.NoError(t, kv.Put(ctx, EventsKey, raw))

	var logs bytes.Buffer
	s := NewEvents(kv, slog.New(slog.NewTextHandler(&logs, nil)))

	events, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Contains(t, logs.String(), "it will be replaced on next save")

	require.NoError(t, s.Save(ctx, sampleEvents()[:1]))
	stored, ok, err := kv.Get(ctx, EventsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, stored, `"title":"bad"`)
	assert.NotContains(t, stored, `"title":"ok"`)

	events, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Standup", events[0].Title)
}

func TestEvents_NullSnapshotIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.Put(ctx, EventsKey, "null"))

	events, err := NewEvents(kv, quietLogger()).Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEvents_LoadsLegacySnapshot(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	legacy := `[{"id":1717228800000,"date":"2024-06-01","title":"Lunch","startTime":"12:00","endTime":"13:00","description":"","color":"#4f46e5"}]`
	require.NoError(t, kv.Put(ctx, EventsKey, legacy))

	events, err := NewEvents(kv, quietLogger()).Load(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, calendar.ID("1717228800000"), events[0].ID)
	assert.Equal(t, "Lunch", events[0].Title)
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Put(context.Context, string, string) error         { return f.err }
func (f failingKV) Revision(context.Context, string) (int64, error)   { return 0, f.err }

func TestEvents_BackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	s := NewEvents(failingKV{err: io.ErrUnexpectedEOF}, quietLogger())

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "load events")

	err = s.Save(ctx, sampleEvents())
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "save events")
}
