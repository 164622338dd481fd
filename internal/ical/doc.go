// Package ical renders RTM tasks as RFC 5545 VTODO components.
//
// Output is deterministic: a task always produces the same lines in the
// same order, so repeated conversions of one export are byte-identical.
//
// Properties are written in this order, each only when its source value is
// present:
//
//	UID, RELATED-TO, SUMMARY, PRIORITY, DUE, DTSTART, STATUS, COMPLETED,
//	CREATED, LAST-MODIFIED, RRULE, URL, CATEGORIES, DESCRIPTION,
//	X-RTM-POSTPONE-COUNT, X-RTM-SOURCE
//
// Times are written as floating local times (no UTC designator, no TZID),
// in the converter's location. Lines are never folded.
package ical
