package overtime

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/storage"
)

func TestDailyOvertime(t *testing.T) {
	calc := NewCalculator(storage.DefaultSettings())

	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{"exactly standard", 8.0, 0},
		{"one over", 9.0, 1.0},
		{"under standard clamps to zero", 6.5, 0},
		{"half hour over", 8.5, 0.5},
		{"empty day", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.Daily(tt.hours); got != tt.want {
				t.Errorf("Daily(%v) = %v, want %v", tt.hours, got, tt.want)
			}
		})
	}
}

func TestWeeklyOvertime(t *testing.T) {
	calc := NewCalculator(storage.DefaultSettings())

	if got := calc.Weekly(42.0); got != 2.0 {
		t.Errorf("Weekly(42) = %v, want 2.0", got)
	}
	if got := calc.Weekly(38.0); got != 0 {
		t.Errorf("Weekly(38) = %v, want 0 (never negative)", got)
	}
}

func TestCustomBaseline(t *testing.T) {
	s := storage.DefaultSettings()
	s.StandardHoursPerDay = 6
	s.WeeklyHours = 30
	calc := NewCalculator(s)

	if got := calc.Daily(8.0); got != 2.0 {
		t.Errorf("Daily(8) with 6h standard = %v, want 2.0", got)
	}
	if got := calc.Weekly(31.0); got != 1.0 {
		t.Errorf("Weekly(31) with 30h week = %v, want 1.0", got)
	}
}

func TestSumDailyOvertime(t *testing.T) {
	calc := NewCalculator(storage.DefaultSettings())

	// Days under the standard must not offset days over it.
	totals := map[string]float64{
		"2026-01-12": 9.0, // +1
		"2026-01-13": 6.0, // 0, not -2
		"2026-01-14": 8.5, // +0.5
	}
	if got := calc.SumDailyOvertime(totals); got != 1.5 {
		t.Errorf("SumDailyOvertime = %v, want 1.5", got)
	}

	if got := calc.SumDailyOvertime(nil); got != 0 {
		t.Errorf("SumDailyOvertime(nil) = %v, want 0", got)
	}
}

func entry(date string, start, end time.Time, pauseSeconds int64, active bool) models.TimeEntry {
	e := models.TimeEntry{
		ID:           "test-" + date,
		Date:         date,
		StartTime:    start,
		PauseSeconds: pauseSeconds,
		IsActive:     active,
	}
	if !active {
		e.EndTime = &end
	}
	return e
}

func TestTotalHoursCountsEndedOnly(t *testing.T) {
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	entries := []models.TimeEntry{
		entry("2026-01-12", day.Add(9*time.Hour), day.Add(17*time.Hour), 0, false),
		entry("2026-01-13", day.Add(33*time.Hour), time.Time{}, 0, true), // still open
	}

	if got := TotalHours(entries); got != 8.0 {
		t.Errorf("TotalHours = %v, want 8.0", got)
	}

	// Live view also counts the open entry's worked-so-far.
	now := day.Add(35 * time.Hour) // 2h into the open session
	if got := TotalHoursLive(entries, now); got != 10.0 {
		t.Errorf("TotalHoursLive = %v, want 10.0", got)
	}
}

func TestDailyTotalsGroupSessions(t *testing.T) {
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	entries := []models.TimeEntry{
		entry("2026-01-12", day.Add(8*time.Hour), day.Add(12*time.Hour), 0, false),
		entry("2026-01-12", day.Add(13*time.Hour), day.Add(17*time.Hour), 0, false),
		entry("2026-01-13", day.Add(33*time.Hour), day.Add(42*time.Hour), 3600, false),
	}

	totals := DailyTotals(entries)
	if got := totals["2026-01-12"]; got != 8.0 {
		t.Errorf("totals[2026-01-12] = %v, want 8.0", got)
	}
	if got := totals["2026-01-13"]; got != 8.0 {
		t.Errorf("totals[2026-01-13] = %v, want 8.0 (9h minus 1h pause)", got)
	}
}

func TestPauseNeverProducesNegativeHours(t *testing.T) {
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	// Pause longer than the session itself.
	e := entry("2026-01-12", day.Add(9*time.Hour), day.Add(10*time.Hour), 7200, false)

	if got := e.DurationHours(); got != 0 {
		t.Errorf("DurationHours = %v, want 0", got)
	}
	if got := TotalHours([]models.TimeEntry{e}); math.Signbit(got) {
		t.Errorf("TotalHours went negative: %v", got)
	}
}
