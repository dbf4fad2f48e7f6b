// Package overtime derives daily and weekly overtime from worked hours and
// the configured standard-hours settings. Settings are passed in explicitly
// so the same entries can be evaluated under different baselines.
package overtime

import (
	"time"

	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/storage"
)

type Calculator struct {
	Settings storage.Settings
}

func NewCalculator(s storage.Settings) Calculator {
	return Calculator{Settings: s}
}

// Daily is the overtime of one day's total: hours beyond the daily standard,
// never negative.
func (c Calculator) Daily(dayHours float64) float64 {
	ot := dayHours - c.Settings.StandardHoursPerDay
	if ot < 0 {
		return 0
	}
	return ot
}

// Weekly is the overtime of a Monday-to-Sunday week's total.
func (c Calculator) Weekly(weekHours float64) float64 {
	ot := weekHours - c.Settings.WeeklyHours
	if ot < 0 {
		return 0
	}
	return ot
}

// SumDailyOvertime adds up per-day overtime across a set of daily totals.
// This is the monthly overtime figure in daily_sum mode.
func (c Calculator) SumDailyOvertime(dayTotals map[string]float64) float64 {
	var sum float64
	for _, hours := range dayTotals {
		sum += c.Daily(hours)
	}
	return sum
}

// TotalHours sums the durations of ended entries. Open entries count zero:
// this is the finalized-report view.
func TotalHours(entries []models.TimeEntry) float64 {
	var sum float64
	for _, e := range entries {
		if e.State() == models.StateEnded {
			sum += e.DurationHours()
		}
	}
	return sum
}

// TotalHoursLive sums all entries, open ones at their worked-so-far figure.
// This is the live-dashboard view.
func TotalHoursLive(entries []models.TimeEntry, now time.Time) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.LiveDurationHours(now)
	}
	return sum
}

// DailyTotals groups ended entries' hours by date. A date holds the sum of
// all its sessions.
func DailyTotals(entries []models.TimeEntry) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		if e.State() == models.StateEnded {
			totals[e.Date] += e.DurationHours()
		}
	}
	return totals
}

// DailyTotalsLive groups all entries' hours by date, open ones live.
func DailyTotalsLive(entries []models.TimeEntry, now time.Time) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		totals[e.Date] += e.LiveDurationHours(now)
	}
	return totals
}
