package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/calendar/internal/calendar"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", ev.Seq, ev.Op, ev.EventID, ev.State)
		}
	}

	return buf.String()
}

// assertEventCount checks the size of the final collection.
func assertEventCount(events []calendar.Event, assertion Assertion) error {
	if len(events) != assertion.Count {
		return &AssertionError{
			Type:     AssertEventCount,
			Expected: fmt.Sprintf("%d events", assertion.Count),
			Actual:   fmt.Sprintf("%d events", len(events)),
		}
	}
	return nil
}

// assertEventExists checks that the event is stored and that the expected
// fields match (subset semantics).
func assertEventExists(events []calendar.Event, assertion Assertion) error {
	idx := slices.IndexFunc(events, func(e calendar.Event) bool {
		return e.ID == calendar.ID(assertion.ID)
	})
	if idx < 0 {
		return &AssertionError{
			Type:     AssertEventExists,
			Expected: fmt.Sprintf("event %s", assertion.ID),
			Actual:   "not stored",
		}
	}

	actual := eventFields(events[idx])

	// Sort keys for deterministic messages
	keys := make([]string, 0, len(assertion.Expect))
	for k := range assertion.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		want := assertion.Expect[key]
		got, ok := actual[key]
		if !ok {
			return &AssertionError{
				Type:     AssertEventExists,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   fmt.Sprintf("event fields are %s", strings.Join(fieldNames, ", ")),
			}
		}
		if got != want {
			return &AssertionError{
				Type:     AssertEventExists,
				Expected: fmt.Sprintf("event %s field %q = %q", assertion.ID, key, want),
				Actual:   fmt.Sprintf("field %q = %q", key, got),
			}
		}
	}
	return nil
}

var fieldNames = []string{"date", "title", "startTime", "endTime", "description", "color"}

func eventFields(e calendar.Event) map[string]string {
	return map[string]string{
		"date":        e.Date.String(),
		"title":       e.Title,
		"startTime":   e.StartTime.String(),
		"endTime":     e.EndTime.String(),
		"description": e.Description,
		"color":       e.Color,
	}
}

// assertEventAbsent checks that the event is not stored.
func assertEventAbsent(events []calendar.Event, assertion Assertion) error {
	for _, e := range events {
		if e.ID == calendar.ID(assertion.ID) {
			return &AssertionError{
				Type:     AssertEventAbsent,
				Expected: fmt.Sprintf("no event %s", assertion.ID),
				Actual:   fmt.Sprintf("stored on %s", e.Date),
			}
		}
	}
	return nil
}

// assertNoOverlaps checks that no two stored events on the same day overlap.
func assertNoOverlaps(events []calendar.Event) error {
	for i, a := range events {
		for _, b := range events[i+1:] {
			if a.Date == b.Date && b.Overlaps(a.StartTime, a.EndTime) {
				return &AssertionError{
					Type:     AssertNoOverlaps,
					Expected: "no overlapping events",
					Actual: fmt.Sprintf("%s (%s-%s) overlaps %s (%s-%s) on %s",
						a.ID, a.StartTime, a.EndTime, b.ID, b.StartTime, b.EndTime, a.Date),
				}
			}
		}
	}
	return nil
}

func traceMatches(ev TraceEvent, assertion Assertion) bool {
	if ev.Op != assertion.Op {
		return false
	}
	if assertion.State != "" && ev.State != assertion.State {
		return false
	}
	if assertion.ID != "" && ev.EventID != calendar.ID(assertion.ID) {
		return false
	}
	return true
}

// assertTraceContains checks that some flow step matches.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, ev := range trace {
		if traceMatches(ev, assertion) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describeStep(assertion),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceCount checks that exactly Count flow steps match.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, ev := range trace {
		if traceMatches(ev, assertion) {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, describeStep(assertion)),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

func describeStep(a Assertion) string {
	s := a.Op
	if a.ID != "" {
		s += " " + a.ID
	}
	if a.State != "" {
		s += " -> " + a.State
	}
	return s
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertEventCount:
			err = assertEventCount(result.Events, assertion)
		case AssertEventExists:
			err = assertEventExists(result.Events, assertion)
		case AssertEventAbsent:
			err = assertEventAbsent(result.Events, assertion)
		case AssertNoOverlaps:
			err = assertNoOverlaps(result.Events)
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}
