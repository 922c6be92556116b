// Package calendar defines the event data model shared by every other
// package: the persisted Event record, the Draft a caller submits, and the
// civil Date and TimeOfDay value types used to place events on a day.
//
// # Persisted Format
//
// Events serialize to the same JSON shape the original browser widget kept
// in local storage:
//
//	{"id":"...","date":"2024-06-01","title":"Standup","startTime":"09:00",
//	 "endTime":"09:15","description":"","color":"#4f46e5"}
//
// Dates use the "2006-01-02" layout. Times of day use "15:04", or "15:04:05"
// when seconds are present. Legacy numeric ids decode into their decimal
// string form.
//
// # Time Model
//
// Dates and times of day carry no location. An event occupies the half-open
// interval [StartTime, EndTime) on its Date; conversion to an instant only
// happens at the export boundary.
package calendar
