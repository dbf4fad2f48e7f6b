package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/storage"
)

// Tracker is the timer state machine for the daily work clock. State is
// derived from the date's stored entries: the open entry (if any) carries
// Running or Paused, a date with only ended entries is Ended, a date with
// none is Idle.
type Tracker struct {
	store storage.Provider
	clock clock.Clock
}

func New(store storage.Provider, clk clock.Clock) *Tracker {
	return &Tracker{store: store, clock: clk}
}

// DayStatus is the live view of one date's timer.
type DayStatus struct {
	Date        string
	State       models.EntryState
	Open        *models.TimeEntry
	Entries     []models.TimeEntry
	WorkedHours float64       // ended durations plus the open entry's live figure
	Elapsed     time.Duration // wall clock of the open session, pause included
}

// EditOptions are the mutable fields of an ended entry. Nil means unchanged.
type EditOptions struct {
	NewStart       *time.Time
	NewEnd         *time.Time
	NewDescription *string
}

// Start opens a new entry for the date. The date must be Idle: an open entry
// or an already-completed one both refuse with a conflict (use Edit to adjust
// a finished day, Continue to add another session to it).
func (t *Tracker) Start(date string, at time.Time, description string) (models.TimeEntry, error) {
	if _, err := clock.ParseDate(date); err != nil {
		return models.TimeEntry{}, &models.ValidationError{Reason: "date must be YYYY-MM-DD: " + date}
	}

	entries, err := t.store.EntriesForDate(date)
	if err != nil {
		return models.TimeEntry{}, err
	}
	for _, e := range entries {
		if e.IsActive {
			return models.TimeEntry{}, &models.ConflictError{
				Date:   date,
				Reason: "an open entry already exists (state " + e.State().String() + ")",
			}
		}
	}
	if len(entries) > 0 {
		return models.TimeEntry{}, &models.ConflictError{
			Date:   date,
			Reason: "a completed entry already exists; use edit, or continue to add a session",
		}
	}

	return t.createEntry(date, at, description)
}

// Continue adds another open entry to a date whose sessions have all ended.
// This is how resuming after a stop works: the day keeps its finished
// entries and a fresh one starts now; totals sum across all of them.
func (t *Tracker) Continue(date string, description string) (models.TimeEntry, error) {
	entries, err := t.store.EntriesForDate(date)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if len(entries) == 0 {
		return models.TimeEntry{}, &models.NotFoundError{Date: date}
	}
	for _, e := range entries {
		if e.IsActive {
			return models.TimeEntry{}, &models.ConflictError{
				Date:   date,
				Reason: "an open entry already exists (state " + e.State().String() + ")",
			}
		}
	}

	if description == "" {
		description = entries[len(entries)-1].Description
	}
	return t.createEntry(date, t.clock.Now(), description)
}

func (t *Tracker) createEntry(date string, at time.Time, description string) (models.TimeEntry, error) {
	now := t.clock.Now()
	entry := models.TimeEntry{
		ID:          uuid.New().String(),
		Date:        date,
		StartTime:   at,
		IsActive:    true,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.store.SaveEntry(entry); err != nil {
		return models.TimeEntry{}, err
	}
	return entry, nil
}

// Pause suspends the running entry. Only Running permits it.
func (t *Tracker) Pause(date string) (models.TimeEntry, error) {
	open, err := t.store.FindOpenEntry(date)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if open == nil {
		state, err := t.closedDayState(date)
		if err != nil {
			return models.TimeEntry{}, err
		}
		return models.TimeEntry{}, &models.InvalidStateError{Op: "pause", Date: date, State: state}
	}
	if open.State() == models.StatePaused {
		return models.TimeEntry{}, &models.InvalidStateError{Op: "pause", Date: date, State: models.StatePaused}
	}

	now := t.clock.Now()
	open.PauseStartedAt = &now
	open.UpdatedAt = now
	if err := t.store.SaveEntry(*open); err != nil {
		return models.TimeEntry{}, err
	}
	return *open, nil
}

// Resume folds the elapsed pause into the entry's finalized pause total and
// puts it back in Running. Only Paused permits it.
func (t *Tracker) Resume(date string) (models.TimeEntry, error) {
	open, err := t.store.FindOpenEntry(date)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if open == nil {
		state, err := t.closedDayState(date)
		if err != nil {
			return models.TimeEntry{}, err
		}
		return models.TimeEntry{}, &models.InvalidStateError{Op: "resume", Date: date, State: state}
	}
	if open.State() != models.StatePaused {
		return models.TimeEntry{}, &models.InvalidStateError{Op: "resume", Date: date, State: open.State()}
	}

	now := t.clock.Now()
	elapsed := int64(now.Sub(*open.PauseStartedAt).Seconds())
	if elapsed > 0 {
		open.PauseSeconds += elapsed
	}
	open.PauseStartedAt = nil
	open.UpdatedAt = now
	if err := t.store.SaveEntry(*open); err != nil {
		return models.TimeEntry{}, err
	}
	return *open, nil
}

// Stop ends the open entry at the given time, finalizing a still-open pause
// first. A date with only ended entries refuses; a date with no entries at
// all is a not-found.
func (t *Tracker) Stop(date string, at time.Time) (models.TimeEntry, error) {
	open, err := t.store.FindOpenEntry(date)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if open == nil {
		entries, err := t.store.EntriesForDate(date)
		if err != nil {
			return models.TimeEntry{}, err
		}
		if len(entries) == 0 {
			return models.TimeEntry{}, &models.NotFoundError{Date: date}
		}
		return models.TimeEntry{}, &models.InvalidStateError{Op: "stop", Date: date, State: models.StateEnded}
	}

	if at.Before(open.StartTime) {
		return models.TimeEntry{}, &models.ValidationError{
			Reason: "end time " + at.Format("15:04") + " is before start time " + open.StartTime.Format("15:04"),
		}
	}

	if open.PauseStartedAt != nil {
		elapsed := int64(at.Sub(*open.PauseStartedAt).Seconds())
		if elapsed > 0 {
			open.PauseSeconds += elapsed
		}
		open.PauseStartedAt = nil
	}

	end := at
	open.EndTime = &end
	open.IsActive = false
	open.UpdatedAt = t.clock.Now()
	if err := t.store.SaveEntry(*open); err != nil {
		return models.TimeEntry{}, err
	}
	return *open, nil
}

// Edit mutates the most recent ended entry of the date. The date itself is
// immutable; an open entry must be stopped first.
func (t *Tracker) Edit(date string, opts EditOptions) (models.TimeEntry, error) {
	if opts.NewStart == nil && opts.NewEnd == nil && opts.NewDescription == nil {
		return models.TimeEntry{}, &models.ValidationError{Reason: "edit requires at least one field"}
	}

	open, err := t.store.FindOpenEntry(date)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if open != nil {
		return models.TimeEntry{}, &models.InvalidStateError{Op: "edit", Date: date, State: open.State()}
	}

	entries, err := t.store.EntriesForDate(date)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if len(entries) == 0 {
		return models.TimeEntry{}, &models.NotFoundError{Date: date}
	}

	// Entries come back ordered by start time; edit the latest session.
	entry := entries[len(entries)-1]

	if opts.NewStart != nil {
		entry.StartTime = *opts.NewStart
	}
	if opts.NewEnd != nil {
		end := *opts.NewEnd
		entry.EndTime = &end
	}
	if opts.NewDescription != nil {
		entry.Description = *opts.NewDescription
	}

	if entry.EndTime != nil && entry.EndTime.Before(entry.StartTime) {
		return models.TimeEntry{}, &models.ValidationError{
			Reason: "end time " + entry.EndTime.Format("15:04") + " is before start time " + entry.StartTime.Format("15:04"),
		}
	}

	entry.UpdatedAt = t.clock.Now()
	if err := t.store.SaveEntry(entry); err != nil {
		return models.TimeEntry{}, err
	}
	return entry, nil
}

// Delete removes all entries of the date.
func (t *Tracker) Delete(date string) (int, error) {
	n, err := t.store.DeleteEntries(date)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, &models.NotFoundError{Date: date}
	}
	return n, nil
}

// Status reports the date's derived state and live worked total.
func (t *Tracker) Status(date string) (DayStatus, error) {
	entries, err := t.store.EntriesForDate(date)
	if err != nil {
		return DayStatus{}, err
	}

	now := t.clock.Now()
	status := DayStatus{Date: date, State: models.StateIdle, Entries: entries}

	for i := range entries {
		e := entries[i]
		status.WorkedHours += e.LiveDurationHours(now)
		if e.IsActive {
			status.Open = &entries[i]
			status.State = e.State()
			status.Elapsed = e.Elapsed(now)
		}
	}
	if status.Open == nil && len(entries) > 0 {
		status.State = models.StateEnded
	}

	return status, nil
}

// closedDayState distinguishes Idle (no entries) from Ended (finished
// entries only) when there is no open entry to carry the state.
func (t *Tracker) closedDayState(date string) (models.EntryState, error) {
	entries, err := t.store.EntriesForDate(date)
	if err != nil {
		return models.StateIdle, err
	}
	if len(entries) > 0 {
		return models.StateEnded, nil
	}
	return models.StateIdle, nil
}
