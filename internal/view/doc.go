// Package view holds the read-only projections a presentation layer renders
// (search filter, month grid, per-day grouping) and Session, the transient
// selection and draft state that the widget kept between user actions.
//
// Nothing here writes to the store directly. Session forwards submissions
// and deletions to an engine and resets itself after a commit.
//
// Session is for interactive front ends that embed the engine. The cal
// command runs one operation per process, so it calls the engine directly
// and keeps no session.
package view
