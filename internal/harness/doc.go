// Package harness runs calendar scenarios as executable contract tests.
//
// A scenario seeds a fresh in-memory SQLite store, drives the real engine
// through a flow of create, update and delete steps, and then checks the
// trace of outcomes and the final event collection.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: move_into_busy_day
//	description: "Moving an event onto a day where it overlaps is rejected"
//	ids: [evt-1, evt-2, evt-3]
//	setup:
//	  - date: "2024-06-01"
//	    title: Standup
//	    start: "09:00"
//	    end: "09:15"
//	flow:
//	  - op: create
//	    date: "2024-06-02"
//	    title: Review
//	    start: "09:00"
//	    end: "10:00"
//	    expect: committed
//	  - op: update
//	    id: evt-2
//	    date: "2024-06-01"
//	    title: Review
//	    start: "09:10"
//	    end: "10:00"
//	    expect: conflicted
//	assertions:
//	  - type: event_count
//	    count: 2
//	  - type: event_exists
//	    id: evt-2
//	    expect: { date: "2024-06-02" }
//
// Quote dates and times; unquoted YAML dates are timestamps.
//
// # Assertion Types
//
//   - event_count: the final collection holds exactly count events
//   - event_exists: event id is stored, with the expect fields (subset match)
//   - event_absent: event id is not stored
//   - no_overlaps: no two stored events on the same day overlap
//   - trace_contains: a flow step with op (and optionally state, id) ran
//   - trace_count: exactly count flow steps match op (and state)
//
// # Deterministic Testing
//
// Ids come from a fixed generator, either the scenario's ids list or
// evt-1, evt-2, ... by default, so traces are stable across runs and can be
// compared against golden files with RunWithGolden.
package harness
