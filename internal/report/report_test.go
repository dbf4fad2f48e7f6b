package report

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/leave"
	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/storage"
	"github.com/julianstephens/timeclock/internal/tracker"
)

// stepClock is a mutable test clock.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	return c.t
}

func newTestAggregator(t *testing.T) (*Aggregator, *tracker.Tracker, *stepClock, storage.Provider) {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clk := &stepClock{t: time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)}
	return New(store, clk), tracker.New(store, clk), clk, store
}

func workDay(t *testing.T, tr *tracker.Tracker, date string, startHour, endHour int) {
	t.Helper()
	d, err := clock.ParseDate(date)
	if err != nil {
		t.Fatalf("bad test date %s: %v", date, err)
	}
	if _, err := tr.Start(date, d.Add(time.Duration(startHour)*time.Hour), ""); err != nil {
		t.Fatalf("Start %s: %v", date, err)
	}
	if _, err := tr.Stop(date, d.Add(time.Duration(endHour)*time.Hour)); err != nil {
		t.Fatalf("Stop %s: %v", date, err)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWeeklySummary(t *testing.T) {
	// Week of Mon 2026-01-12: 8+9+8.5+8+8.5 = 42h against a 40h week.
	agg, tr, clk, _ := newTestAggregator(t)
	clk.t = time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC) // after the week

	workDay(t, tr, "2026-01-12", 9, 17)
	workDay(t, tr, "2026-01-13", 8, 17)
	workDay(t, tr, "2026-01-14", 8, 16) // 8h
	workDay(t, tr, "2026-01-15", 9, 17)
	workDay(t, tr, "2026-01-16", 8, 17) // 9h

	// Nudge Wednesday and Friday to the half-hour figures via edit.
	halfPast := time.Date(2026, time.January, 14, 16, 30, 0, 0, time.UTC)
	if _, err := tr.Edit("2026-01-14", tracker.EditOptions{NewEnd: &halfPast}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	friEnd := time.Date(2026, time.January, 16, 16, 30, 0, 0, time.UTC)
	if _, err := tr.Edit("2026-01-16", tracker.EditOptions{NewEnd: &friEnd}); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	sum, err := agg.Weekly(time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC), storage.DefaultSettings())
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}

	if sum.StartDate != "2026-01-12" || sum.EndDate != "2026-01-18" {
		t.Errorf("bounds = %s..%s", sum.StartDate, sum.EndDate)
	}
	if !almostEqual(sum.TotalHours, 42.0) {
		t.Errorf("TotalHours = %v, want 42.0", sum.TotalHours)
	}
	if !almostEqual(sum.Overtime, 2.0) {
		t.Errorf("Overtime = %v, want 2.0", sum.Overtime)
	}
	if sum.WorkingDays != 5 {
		t.Errorf("WorkingDays = %d, want 5", sum.WorkingDays)
	}
	if len(sum.Entries) != 5 {
		t.Errorf("Entries = %d, want 5", len(sum.Entries))
	}
}

func TestWeeklyExcludesNeighboringWeeks(t *testing.T) {
	agg, tr, clk, _ := newTestAggregator(t)
	clk.t = time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)

	workDay(t, tr, "2026-01-09", 9, 17) // Friday of the previous week
	workDay(t, tr, "2026-01-12", 9, 17) // Monday
	workDay(t, tr, "2026-01-19", 9, 17) // Monday of the next week

	sum, err := agg.Weekly(time.Date(2026, time.January, 12, 12, 0, 0, 0, time.UTC), storage.DefaultSettings())
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}
	if len(sum.Entries) != 1 || !almostEqual(sum.TotalHours, 8.0) {
		t.Errorf("entries = %d, total = %v; want 1 and 8.0", len(sum.Entries), sum.TotalHours)
	}
}

func TestWeeklyCountsOpenEntryLiveWhenCurrent(t *testing.T) {
	agg, tr, clk, _ := newTestAggregator(t)

	// Today is Tuesday 2026-01-13 with a session open since 09:00.
	clk.t = time.Date(2026, time.January, 13, 12, 0, 0, 0, time.UTC)
	workDay(t, tr, "2026-01-12", 9, 17)
	if _, err := tr.Start("2026-01-13", time.Date(2026, time.January, 13, 9, 0, 0, 0, time.UTC), ""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	sum, err := agg.Weekly(clk.t, storage.DefaultSettings())
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}
	// 8h finished Monday plus 3h live today.
	if !almostEqual(sum.TotalHours, 11.0) {
		t.Errorf("TotalHours = %v, want 11.0", sum.TotalHours)
	}

	// Once the week is in the past, the still-open entry counts zero.
	clk.t = time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)
	sum, err = agg.Weekly(time.Date(2026, time.January, 13, 12, 0, 0, 0, time.UTC), storage.DefaultSettings())
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}
	if !almostEqual(sum.TotalHours, 8.0) {
		t.Errorf("historical TotalHours = %v, want 8.0", sum.TotalHours)
	}
}

func TestMonthlySummaryDailySum(t *testing.T) {
	agg, tr, clk, store := newTestAggregator(t)
	clk.t = time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)

	workDay(t, tr, "2026-01-12", 9, 18) // 9h, +1
	workDay(t, tr, "2026-01-13", 9, 15) // 6h, under: no offset
	workDay(t, tr, "2026-01-14", 9, 17) // 8h, 0

	mgr := leave.NewManager(store)
	p, err := leave.Expand(
		time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC),
		models.LeaveVacation, "", storage.DefaultSettings(), clk.t)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if err := mgr.Commit(p); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	sick, err := leave.Expand(
		time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC),
		models.LeaveSick, "", storage.DefaultSettings(), clk.t)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if err := mgr.Commit(sick); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	sum, err := agg.Monthly(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), storage.DefaultSettings())
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}

	if sum.StartDate != "2026-01-01" || sum.EndDate != "2026-01-31" {
		t.Errorf("bounds = %s..%s", sum.StartDate, sum.EndDate)
	}
	if !almostEqual(sum.TotalHours, 23.0) {
		t.Errorf("TotalHours = %v, want 23.0", sum.TotalHours)
	}
	if !almostEqual(sum.Overtime, 1.0) {
		t.Errorf("Overtime = %v, want 1.0 (per-day, shortfalls ignored)", sum.Overtime)
	}
	if sum.WorkingDays != 3 {
		t.Errorf("WorkingDays = %d, want 3", sum.WorkingDays)
	}
	if sum.LeaveDays.Vacation != 2 || sum.LeaveDays.Sick != 1 || sum.LeaveDays.Total != 3 {
		t.Errorf("LeaveDays = %+v, want 2 vacation / 1 sick", sum.LeaveDays)
	}
}

func TestMonthlyThresholdMode(t *testing.T) {
	agg, tr, clk, _ := newTestAggregator(t)
	clk.t = time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)

	workDay(t, tr, "2026-01-12", 9, 18) // 9h
	workDay(t, tr, "2026-01-13", 9, 15) // 6h

	s := storage.DefaultSettings()
	s.MonthlyOvertimeMode = storage.MonthlyOvertimeThreshold

	sum, err := agg.Monthly(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), s)
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	// 15h against 2*8h: shortfalls DO offset in threshold mode, clamped at 0.
	if !almostEqual(sum.Overtime, 0) {
		t.Errorf("threshold Overtime = %v, want 0", sum.Overtime)
	}

	// With one more long day it goes positive: 9+6+10 = 25 vs 24.
	workDay(t, tr, "2026-01-14", 8, 18)
	sum, err = agg.Monthly(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), s)
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	if !almostEqual(sum.Overtime, 1.0) {
		t.Errorf("threshold Overtime = %v, want 1.0", sum.Overtime)
	}
}

func TestEmptyPeriods(t *testing.T) {
	agg, _, clk, _ := newTestAggregator(t)
	clk.t = time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)

	week, err := agg.Weekly(time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), storage.DefaultSettings())
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}
	if week.TotalHours != 0 || week.Overtime != 0 || week.WorkingDays != 0 {
		t.Errorf("empty week = %+v", week)
	}

	month, err := agg.Monthly(time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), storage.DefaultSettings())
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	if month.TotalHours != 0 || month.LeaveDays.Total != 0 {
		t.Errorf("empty month = %+v", month)
	}
}
