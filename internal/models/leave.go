package models

import "time"

type LeaveType string

const (
	LeaveVacation LeaveType = "vacation"
	LeaveSick     LeaveType = "sick"
)

// ValidLeaveType reports whether t is one of the known leave types.
func ValidLeaveType(t LeaveType) bool {
	return t == LeaveVacation || t == LeaveSick
}

// LeaveDay is one working day of leave. Leave requests spanning a range are
// expanded into individual LeaveDay records; weekends are excluded at
// creation time, so a stored LeaveDay never falls on a Saturday or Sunday.
type LeaveDay struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD, unique
	Type        LeaveType `json:"leave_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
