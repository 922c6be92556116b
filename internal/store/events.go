package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roach88/calendar/internal/calendar"
)

// EventsKey is the key holding the event snapshot.
const EventsKey = "calendarEvents"

// Events persists the event collection as a JSON snapshot in a KV.
type Events struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// NewEvents wraps kv. A nil logger defaults to slog.Default().
func NewEvents(kv KV, logger *slog.Logger) *Events {
	if logger == nil {
		logger = slog.Default()
	}
	return &Events{kv: kv, key: EventsKey, logger: logger}
}

// Load returns the stored events, or an empty collection when the snapshot
// is absent or unparsable. The returned slice is never nil. An unparsable
// snapshot is not repaired; the next Save overwrites it.
func (s *Events) Load(ctx context.Context) ([]calendar.Event, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	if !ok {
		return []calendar.Event{}, nil
	}

	// One bad record rejects the whole array.
	events, err := unmarshalEvents(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable event snapshot; it will be replaced on next save",
			"key", s.key,
			"bytes", len(raw),
			"error", err,
		)
		return []calendar.Event{}, nil
	}
	return events, nil
}

// Save replaces the stored snapshot with events.
func (s *Events) Save(ctx context.Context, events []calendar.Event) error {
	data, err := marshalEvents(events)
	if err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	s.logger.Debug("event snapshot saved", "key", s.key, "events", len(events))
	return nil
}

// Revision returns how many snapshots have been saved.
func (s *Events) Revision(ctx context.Context) (int64, error) {
	return s.kv.Revision(ctx, s.key)
}

// marshalEvents encodes events as a compact JSON array.
// HTML escaping is disabled so stored text matches what was entered.
func marshalEvents(events []calendar.Event) (string, error) {
	if events == nil {
		events = []calendar.Event{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(events); err != nil {
		return "", fmt.Errorf("marshal events: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// unmarshalEvents parses a stored snapshot.
func unmarshalEvents(data string) ([]calendar.Event, error) {
	var events []calendar.Event
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, fmt.Errorf("unmarshal events: %w", err)
	}
	if events == nil {
		events = []calendar.Event{}
	}
	return events, nil
}
