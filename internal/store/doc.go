// Package store provides durable snapshot persistence for calendar events.
//
// The whole event collection lives under a single key ("calendarEvents") of
// a key-value backend as one JSON array, rewritten on every change. There is
// no incremental log and no partial write.
//
// # Read Semantics
//
// Load never fails because of the stored data itself: an absent key, an
// empty value, or a value that does not parse as an event array all yield an
// empty collection. Unparsable data is logged at WARN and replaced by the
// next Save. Only backend failures (I/O, locked database) are returned.
//
// # Backends
//
//   - SQLite: a single-table database (kv) opened with WAL mode, one
//     connection, and user_version migrations
//   - Memory: a map, for tests and embedding
package store
