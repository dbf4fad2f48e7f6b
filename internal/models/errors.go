package models

import "fmt"

// The four failure kinds the engine reports. Callers match them with
// errors.As and map each kind to its own message and exit code; the engine
// never wraps one kind inside another.

// ValidationError signals malformed input: an end before a start, an
// inverted date range, an edit with no fields.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// InvalidStateError signals an operation attempted from a timer state that
// does not permit it.
type InvalidStateError struct {
	Op    string
	Date  string
	State EntryState
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s on %s: timer is %s", e.Op, e.Date, e.State)
}

// ConflictError signals a violation of the one-open-entry-per-date policy or
// a leave commit colliding with existing leave records.
type ConflictError struct {
	Date   string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Date, e.Reason)
}

// NotFoundError signals an operation targeting a date with no matching record.
type NotFoundError struct {
	Date string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entry found for %s", e.Date)
}
