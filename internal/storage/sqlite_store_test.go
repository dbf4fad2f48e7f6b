package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timeclock/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEntry(date string, active bool) models.TimeEntry {
	start := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	e := models.TimeEntry{
		ID:        uuid.New().String(),
		Date:      date,
		StartTime: start,
		IsActive:  active,
		CreatedAt: start,
		UpdatedAt: start,
	}
	if !active {
		end := start.Add(8 * time.Hour)
		e.EndTime = &end
	}
	return e
}

func TestInitOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "timeclock.db")
	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	var version int
	if err := s.GetDB().QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("user_version = %d, want %d", version, SchemaVersion)
	}

	// Init again must be a no-op, not an error.
	if err := s.migrate(); err != nil {
		t.Errorf("repeat migrate failed: %v", err)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); err == nil {
		t.Fatal("expected error loading uninitialized store")
	}
}

func TestLoadExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeclock.db")
	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.SaveEntry(testEntry("2026-01-12", false)); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	s.Close()

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.EntriesForDate("2026-01-12")
	if err != nil {
		t.Fatalf("EntriesForDate failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}
}

func TestSettingsSeededWithDefaults(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults %+v", got, DefaultSettings())
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := Settings{
		StandardHoursPerDay:  7.5,
		WeeklyHours:          37.5,
		PauseDurationMinutes: 45,
		AutoEnd:              true,
		MonthlyOvertimeMode:  MonthlyOvertimeThreshold,
	}
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := testEntry("2026-01-12", false)
	want.PauseSeconds = 3600
	want.Description = "deep work"
	pauseAt := want.StartTime.Add(3 * time.Hour)
	want.PauseStartedAt = &pauseAt

	if err := s.SaveEntry(want); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	entries, err := s.EntriesForDate("2026-01-12")
	if err != nil {
		t.Fatalf("EntriesForDate failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	got := entries[0]
	if got.ID != want.ID || got.Date != want.Date || got.PauseSeconds != 3600 ||
		got.Description != "deep work" || got.IsActive {
		t.Errorf("entry = %+v", got)
	}
	if !got.StartTime.Equal(want.StartTime) {
		t.Errorf("StartTime = %v, want %v", got.StartTime, want.StartTime)
	}
	if got.EndTime == nil || !got.EndTime.Equal(*want.EndTime) {
		t.Errorf("EndTime = %v, want %v", got.EndTime, want.EndTime)
	}
	if got.PauseStartedAt == nil || !got.PauseStartedAt.Equal(pauseAt) {
		t.Errorf("PauseStartedAt = %v", got.PauseStartedAt)
	}
}

func TestSaveEntryUpdatesInPlace(t *testing.T) {
	s := newTestStore(t)

	e := testEntry("2026-01-12", true)
	if err := s.SaveEntry(e); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	end := e.StartTime.Add(8 * time.Hour)
	e.EndTime = &end
	e.IsActive = false
	if err := s.SaveEntry(e); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	entries, _ := s.EntriesForDate("2026-01-12")
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 (update, not insert)", len(entries))
	}
	if entries[0].IsActive {
		t.Error("entry still active after update")
	}
}

func TestSingleOpenEntryPerDate(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveEntry(testEntry("2026-01-12", true)); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	// A second open entry for the same date must hit the unique index.
	if err := s.SaveEntry(testEntry("2026-01-12", true)); err == nil {
		t.Fatal("expected unique-index violation for second open entry")
	}

	// Ended entries for the same date are fine, as is an open one elsewhere.
	if err := s.SaveEntry(testEntry("2026-01-12", false)); err != nil {
		t.Errorf("ended entry rejected: %v", err)
	}
	if err := s.SaveEntry(testEntry("2026-01-13", true)); err != nil {
		t.Errorf("open entry on other date rejected: %v", err)
	}
}

func TestFindOpenEntry(t *testing.T) {
	s := newTestStore(t)

	open, err := s.FindOpenEntry("2026-01-12")
	if err != nil {
		t.Fatalf("FindOpenEntry failed: %v", err)
	}
	if open != nil {
		t.Errorf("expected nil for empty date, got %+v", open)
	}

	e := testEntry("2026-01-12", true)
	if err := s.SaveEntry(e); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	open, err = s.FindOpenEntry("2026-01-12")
	if err != nil {
		t.Fatalf("FindOpenEntry failed: %v", err)
	}
	if open == nil || open.ID != e.ID {
		t.Errorf("open = %+v, want entry %s", open, e.ID)
	}
}

func TestEntriesInRange(t *testing.T) {
	s := newTestStore(t)

	for _, date := range []string{"2026-01-11", "2026-01-12", "2026-01-14", "2026-01-19"} {
		if err := s.SaveEntry(testEntry(date, false)); err != nil {
			t.Fatalf("SaveEntry %s failed: %v", date, err)
		}
	}

	entries, err := s.EntriesInRange("2026-01-12", "2026-01-18")
	if err != nil {
		t.Fatalf("EntriesInRange failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (bounds inclusive)", len(entries))
	}
	if entries[0].Date != "2026-01-12" || entries[1].Date != "2026-01-14" {
		t.Errorf("dates = %s, %s", entries[0].Date, entries[1].Date)
	}
}

func TestDeleteEntries(t *testing.T) {
	s := newTestStore(t)

	s.SaveEntry(testEntry("2026-01-12", false))
	s.SaveEntry(testEntry("2026-01-12", true))
	s.SaveEntry(testEntry("2026-01-13", false))

	n, err := s.DeleteEntries("2026-01-12")
	if err != nil {
		t.Fatalf("DeleteEntries failed: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}

	remaining, _ := s.EntriesInRange("2026-01-01", "2026-01-31")
	if len(remaining) != 1 || remaining[0].Date != "2026-01-13" {
		t.Errorf("remaining = %+v", remaining)
	}

	n, err = s.DeleteEntries("2026-01-12")
	if err != nil {
		t.Fatalf("repeat DeleteEntries failed: %v", err)
	}
	if n != 0 {
		t.Errorf("deleted = %d, want 0", n)
	}
}

func TestSaveLeaveDaysBatchIsAtomic(t *testing.T) {
	s := newTestStore(t)

	existing := models.LeaveDay{
		ID: uuid.New().String(), Date: "2026-01-14",
		Type: models.LeaveSick, CreatedAt: time.Now(),
	}
	if err := s.SaveLeaveDays([]models.LeaveDay{existing}); err != nil {
		t.Fatalf("SaveLeaveDays failed: %v", err)
	}

	// Batch containing a duplicate date: the whole batch must roll back.
	batch := []models.LeaveDay{
		{ID: uuid.New().String(), Date: "2026-01-12", Type: models.LeaveVacation, CreatedAt: time.Now()},
		{ID: uuid.New().String(), Date: "2026-01-13", Type: models.LeaveVacation, CreatedAt: time.Now()},
		{ID: uuid.New().String(), Date: "2026-01-14", Type: models.LeaveVacation, CreatedAt: time.Now()},
	}
	if err := s.SaveLeaveDays(batch); err == nil {
		t.Fatal("expected duplicate-date error")
	}

	days, err := s.LeaveDaysInRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("LeaveDaysInRange failed: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("days = %d, want 1 (batch rolled back)", len(days))
	}
	if days[0].Type != models.LeaveSick {
		t.Errorf("surviving record = %+v", days[0])
	}
}

func TestLeaveDaysInRangeOrdering(t *testing.T) {
	s := newTestStore(t)

	batch := []models.LeaveDay{
		{ID: uuid.New().String(), Date: "2026-01-16", Type: models.LeaveVacation, CreatedAt: time.Now()},
		{ID: uuid.New().String(), Date: "2026-01-12", Type: models.LeaveVacation, CreatedAt: time.Now()},
	}
	if err := s.SaveLeaveDays(batch); err != nil {
		t.Fatalf("SaveLeaveDays failed: %v", err)
	}

	days, _ := s.LeaveDaysInRange("2026-01-01", "2026-01-31")
	if len(days) != 2 || days[0].Date != "2026-01-12" || days[1].Date != "2026-01-16" {
		t.Errorf("days = %+v, want sorted by date", days)
	}
}
