package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timeclock/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	s := NewJSONStore(filepath.Join(t.TempDir(), "timeclock.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestJSONInitRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeclock.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Fatal("expected error initializing over existing file")
	}
}

func TestJSONLoadRequiresInit(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); err == nil {
		t.Fatal("expected error loading uninitialized store")
	}
}

func TestJSONPersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeclock.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	e := testEntry("2026-01-12", false)
	if err := s.SaveEntry(e); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	settings := DefaultSettings()
	settings.WeeklyHours = 35
	if err := s.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entries, err := reopened.EntriesForDate("2026-01-12")
	if err != nil {
		t.Fatalf("EntriesForDate failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != e.ID {
		t.Errorf("entries = %+v", entries)
	}
	got, _ := reopened.GetSettings()
	if got.WeeklyHours != 35 {
		t.Errorf("WeeklyHours = %v, want 35", got.WeeklyHours)
	}
}

func TestJSONSingleOpenEntryPerDate(t *testing.T) {
	s := newTestJSONStore(t)

	if err := s.SaveEntry(testEntry("2026-01-12", true)); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if err := s.SaveEntry(testEntry("2026-01-12", true)); err == nil {
		t.Fatal("expected error for second open entry on the same date")
	}
	if err := s.SaveEntry(testEntry("2026-01-12", false)); err != nil {
		t.Errorf("ended entry rejected: %v", err)
	}
}

func TestJSONEntriesInRangeSorted(t *testing.T) {
	s := newTestJSONStore(t)

	for _, date := range []string{"2026-01-14", "2026-01-12", "2026-01-19"} {
		if err := s.SaveEntry(testEntry(date, false)); err != nil {
			t.Fatalf("SaveEntry failed: %v", err)
		}
	}

	entries, err := s.EntriesInRange("2026-01-12", "2026-01-18")
	if err != nil {
		t.Fatalf("EntriesInRange failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Date != "2026-01-12" || entries[1].Date != "2026-01-14" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestJSONSaveLeaveDaysAllOrNothing(t *testing.T) {
	s := newTestJSONStore(t)

	existing := []models.LeaveDay{
		{ID: uuid.New().String(), Date: "2026-01-14", Type: models.LeaveSick, CreatedAt: time.Now()},
	}
	if err := s.SaveLeaveDays(existing); err != nil {
		t.Fatalf("SaveLeaveDays failed: %v", err)
	}

	batch := []models.LeaveDay{
		{ID: uuid.New().String(), Date: "2026-01-13", Type: models.LeaveVacation, CreatedAt: time.Now()},
		{ID: uuid.New().String(), Date: "2026-01-14", Type: models.LeaveVacation, CreatedAt: time.Now()},
	}
	if err := s.SaveLeaveDays(batch); err == nil {
		t.Fatal("expected duplicate-date error")
	}

	days, _ := s.LeaveDaysInRange("2026-01-01", "2026-01-31")
	if len(days) != 1 || days[0].Type != models.LeaveSick {
		t.Errorf("days = %+v, want only the original sick day", days)
	}
}
