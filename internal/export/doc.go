// Package export renders the event collection to files a user can keep:
// a pretty-printed JSON snapshot and an iCalendar feed.
//
// Exports are read-only projections. They always contain every stored
// event regardless of any active search, and never touch the store.
package export
