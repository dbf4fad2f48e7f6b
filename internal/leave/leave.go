// Package leave expands a leave request's date range into individual
// working-day records. Expansion is a side-effect-free preview; committing
// the preview persists all records at once or none of them.
package leave

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/storage"
)

// Preview is the staged result of expanding a request. WorkingDays can be
// zero when the whole range falls on a weekend; the caller decides whether
// that is worth committing.
type Preview struct {
	StartDate    string
	EndDate      string
	Records      []models.LeaveDay
	TotalDays    int
	WorkingDays  int
	WeekendDays  int
	WorkingHours float64
}

// Expand stages one LeaveDay per working day (Mon-Fri) in the inclusive
// range. Weekends are excluded here, at creation time, not hidden later.
func Expand(start, end time.Time, leaveType models.LeaveType, description string, settings storage.Settings, now time.Time) (Preview, error) {
	if !models.ValidLeaveType(leaveType) {
		return Preview{}, &models.ValidationError{Reason: "unknown leave type: " + string(leaveType)}
	}
	if start.After(end) {
		return Preview{}, &models.ValidationError{
			Reason: "start date " + clock.DateOf(start) + " is after end date " + clock.DateOf(end),
		}
	}

	p := Preview{
		StartDate: clock.DateOf(start),
		EndDate:   clock.DateOf(end),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		p.TotalDays++
		if clock.IsWeekend(d) {
			p.WeekendDays++
			continue
		}
		p.WorkingDays++
		p.Records = append(p.Records, models.LeaveDay{
			ID:          uuid.New().String(),
			Date:        clock.DateOf(d),
			Type:        leaveType,
			Description: description,
			CreatedAt:   now,
		})
	}

	p.WorkingHours = float64(p.WorkingDays) * settings.StandardHoursPerDay
	return p, nil
}

// Manager commits previews against the store.
type Manager struct {
	store storage.Provider
}

func NewManager(store storage.Provider) *Manager {
	return &Manager{store: store}
}

// Commit persists every staged record, all-or-nothing. Any date in the range
// that already has a leave record of any type fails the whole request and
// leaves the store unchanged.
func (m *Manager) Commit(p Preview) error {
	if len(p.Records) == 0 {
		return &models.ValidationError{Reason: "nothing to commit: range contains no working days"}
	}

	existing, err := m.store.LeaveDaysInRange(p.StartDate, p.EndDate)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return &models.ConflictError{
			Date:   existing[0].Date,
			Reason: "leave already recorded in " + p.StartDate + "..." + p.EndDate,
		}
	}

	// The store's unique date constraint backs this up transactionally in
	// case records appeared between the check and the write.
	return m.store.SaveLeaveDays(p.Records)
}

// Counts tallies leave days by type.
type Counts struct {
	Vacation int
	Sick     int
	Total    int
}

// CountByType tallies a set of leave records.
func CountByType(days []models.LeaveDay) Counts {
	var c Counts
	for _, d := range days {
		switch d.Type {
		case models.LeaveVacation:
			c.Vacation++
		case models.LeaveSick:
			c.Sick++
		}
		c.Total++
	}
	return c
}
