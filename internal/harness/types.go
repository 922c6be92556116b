package harness

import (
	"github.com/roach88/calendar/internal/calendar"
)

// TraceEvent records one flow step and the outcome it reached.
type TraceEvent struct {
	Seq       int64         `json:"seq"`
	Op        string        `json:"op"`
	EventID   calendar.ID   `json:"event_id,omitempty"`
	Date      string        `json:"date,omitempty"`
	State     string        `json:"state"`
	Field     string        `json:"field,omitempty"`
	Conflicts []calendar.ID `json:"conflicts,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Events is the final stored collection.
	Events []calendar.Event `json:"events"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Events: []calendar.Event{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends ev with the next sequence number.
func (r *Result) AddTrace(ev TraceEvent) {
	ev.Seq = int64(len(r.Trace) + 1)
	r.Trace = append(r.Trace, ev)
}
