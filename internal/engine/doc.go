// Package engine implements conflict detection and the create/update/delete
// rules for calendar events.
//
// ARCHITECTURE:
//
// Every mutation is a single synchronous call bracketed by an explicit load
// and save of the full event collection:
//
//  1. Load the snapshot from the Store
//  2. Validate the draft (Draft -> Validated, or Invalid)
//  3. Check the target date for overlaps (Validated -> Conflicted)
//  4. Apply the change and Save the snapshot (Validated -> Committed)
//
// A committed change is durable before the call returns. A rejected change
// leaves the store untouched. The engine keeps no selection or draft state
// between calls; callers pass the target date, the draft, and the id of the
// event being edited explicitly.
//
// CONCURRENCY:
//
// The engine assumes a single writer. Two engines sharing one Store can
// interleave their load/save pairs and lose an update.
//
// CONFLICT RULE:
//
// Two events conflict iff they share a date and their half-open intervals
// overlap: s1 < e2 && s2 < e1. The date compared is always the candidate's
// own target date.
package engine
