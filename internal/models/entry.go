package models

import "time"

// EntryState is the explicit timer state derived from an entry's fields.
// Idle is the state of a date with no open entry and is never held by an
// entry itself.
type EntryState int

const (
	StateIdle EntryState = iota
	StateRunning
	StatePaused
	StateEnded
)

func (s EntryState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// TimeEntry is one tracked work session on a calendar day. A date may carry
// several entries, but at most one of them is open (IsActive) at a time.
type TimeEntry struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"` // YYYY-MM-DD
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	PauseSeconds   int64      `json:"pause_seconds"` // finalized pause total
	PauseStartedAt *time.Time `json:"pause_started_at,omitempty"`
	IsActive       bool       `json:"is_active"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// State reports the entry's timer state. PauseStartedAt is non-nil iff the
// entry is currently paused.
func (e TimeEntry) State() EntryState {
	if !e.IsActive {
		return StateEnded
	}
	if e.PauseStartedAt != nil {
		return StatePaused
	}
	return StateRunning
}

// DurationHours is the net worked time of an ended entry:
// (end − start − finalized pauses) in hours, clamped to zero.
// For open entries use LiveDurationHours.
func (e TimeEntry) DurationHours() float64 {
	if e.EndTime == nil {
		return 0
	}
	return netHours(e.StartTime, *e.EndTime, e.PauseSeconds)
}

// LiveDurationHours is the "worked so far" figure for display: the same
// formula with now in place of the end time. An in-progress pause does not
// count as worked time, so a paused entry is measured up to the moment the
// pause began.
func (e TimeEntry) LiveDurationHours(now time.Time) float64 {
	if e.EndTime != nil {
		return e.DurationHours()
	}
	end := now
	if e.PauseStartedAt != nil && e.PauseStartedAt.Before(end) {
		end = *e.PauseStartedAt
	}
	return netHours(e.StartTime, end, e.PauseSeconds)
}

// Elapsed is the wall-clock time since the session began, including any
// in-progress pause. Used for session-length alerts, not for accounting.
func (e TimeEntry) Elapsed(now time.Time) time.Duration {
	if e.EndTime != nil {
		return e.EndTime.Sub(e.StartTime)
	}
	return now.Sub(e.StartTime)
}

func netHours(start, end time.Time, pauseSeconds int64) float64 {
	net := end.Sub(start).Seconds() - float64(pauseSeconds)
	if net < 0 {
		net = 0
	}
	return net / 3600
}
