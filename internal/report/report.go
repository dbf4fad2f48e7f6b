// Package report composes entry and leave data into week and month
// summaries. Open entries count live when the period includes today;
// historical periods only count ended entries.
package report

import (
	"time"

	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/leave"
	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/overtime"
	"github.com/julianstephens/timeclock/internal/storage"
)

type Aggregator struct {
	store storage.Provider
	clock clock.Clock
}

func New(store storage.Provider, clk clock.Clock) *Aggregator {
	return &Aggregator{store: store, clock: clk}
}

type WeeklySummary struct {
	StartDate   string
	EndDate     string
	TotalHours  float64
	Overtime    float64
	WorkingDays int // distinct dates with at least one entry
	Entries     []models.TimeEntry
}

type MonthlySummary struct {
	StartDate   string
	EndDate     string
	TotalHours  float64
	Overtime    float64
	WorkingDays int
	Entries     []models.TimeEntry
	LeaveDays   leave.Counts
}

// Weekly summarizes the Monday-to-Sunday week containing ref.
func (a *Aggregator) Weekly(ref time.Time, settings storage.Settings) (WeeklySummary, error) {
	monday, sunday := clock.WeekBounds(ref)
	start, end := clock.DateOf(monday), clock.DateOf(sunday)

	entries, err := a.store.EntriesInRange(start, end)
	if err != nil {
		return WeeklySummary{}, err
	}

	total := a.periodTotal(entries, start, end)
	calc := overtime.NewCalculator(settings)

	return WeeklySummary{
		StartDate:   start,
		EndDate:     end,
		TotalHours:  total,
		Overtime:    calc.Weekly(total),
		WorkingDays: distinctDates(entries),
		Entries:     entries,
	}, nil
}

// Monthly summarizes the calendar month containing ref, with leave-day
// counts. The overtime figure follows settings.MonthlyOvertimeMode.
func (a *Aggregator) Monthly(ref time.Time, settings storage.Settings) (MonthlySummary, error) {
	first, last := clock.MonthBounds(ref)
	start, end := clock.DateOf(first), clock.DateOf(last)

	entries, err := a.store.EntriesInRange(start, end)
	if err != nil {
		return MonthlySummary{}, err
	}
	leaveDays, err := a.store.LeaveDaysInRange(start, end)
	if err != nil {
		return MonthlySummary{}, err
	}

	total := a.periodTotal(entries, start, end)
	workingDays := distinctDates(entries)
	calc := overtime.NewCalculator(settings)

	var ot float64
	switch settings.MonthlyOvertimeMode {
	case storage.MonthlyOvertimeThreshold:
		ot = total - float64(workingDays)*settings.StandardHoursPerDay
		if ot < 0 {
			ot = 0
		}
	default: // daily_sum
		ot = calc.SumDailyOvertime(a.periodDayTotals(entries, start, end))
	}

	return MonthlySummary{
		StartDate:   start,
		EndDate:     end,
		TotalHours:  total,
		Overtime:    ot,
		WorkingDays: workingDays,
		Entries:     entries,
		LeaveDays:   leave.CountByType(leaveDays),
	}, nil
}

// periodTotal sums worked hours, live when the period is still current.
func (a *Aggregator) periodTotal(entries []models.TimeEntry, start, end string) float64 {
	now := a.clock.Now()
	if a.isCurrent(start, end) {
		return overtime.TotalHoursLive(entries, now)
	}
	return overtime.TotalHours(entries)
}

func (a *Aggregator) periodDayTotals(entries []models.TimeEntry, start, end string) map[string]float64 {
	now := a.clock.Now()
	if a.isCurrent(start, end) {
		return overtime.DailyTotalsLive(entries, now)
	}
	return overtime.DailyTotals(entries)
}

func (a *Aggregator) isCurrent(start, end string) bool {
	today := clock.DateOf(a.clock.Now())
	return today >= start && today <= end
}

func distinctDates(entries []models.TimeEntry) int {
	seen := make(map[string]struct{})
	for _, e := range entries {
		seen[e.Date] = struct{}{}
	}
	return len(seen)
}
