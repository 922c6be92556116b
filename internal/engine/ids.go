package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/calendar/internal/calendar"
)

// IDGenerator produces event ids. Implementations must never return an id
// twice, including ids of events that have since been deleted.
type IDGenerator interface {
	Generate() calendar.ID
}

// UUIDv7Generator generates time-sortable UUIDv7 event ids.
//
// UUIDv7 embeds a millisecond timestamp in the most significant bits, so ids
// sort by creation time much like the widget's original Date.now() ids, but
// without colliding when two events are created in the same millisecond.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() calendar.ID {
	return calendar.ID(uuid.Must(uuid.NewV7()).String())
}

// FixedGenerator returns predetermined ids for testing.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []calendar.ID
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
//
//	gen := NewFixedGenerator("1", "2")
//	gen.Generate() // "1"
//	gen.Generate() // "2"
//	gen.Generate() // panic: all ids exhausted
func NewFixedGenerator(ids ...calendar.ID) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
//
// Panics if all ids have been consumed, which means the test created more
// events than it planned for.
func (g *FixedGenerator) Generate() calendar.ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
