package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/timeclock/internal/models"
)

type Store struct {
	Version   int                         `json:"version"`
	Settings  Settings                    `json:"settings"`
	Entries   map[string]models.TimeEntry `json:"entries"`    // keyed by entry ID
	LeaveDays map[string]models.LeaveDay  `json:"leave_days"` // keyed by date
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:   1,
		Settings:  DefaultSettings(),
		Entries:   make(map[string]models.TimeEntry),
		LeaveDays: make(map[string]models.LeaveDay),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'timeclock init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Entries == nil {
		s.store.Entries = make(map[string]models.TimeEntry)
	}
	if s.store.LeaveDays == nil {
		s.store.LeaveDays = make(map[string]models.LeaveDay)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) FindOpenEntry(date string) (*models.TimeEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	for _, entry := range s.store.Entries {
		if entry.Date == date && entry.IsActive {
			e := entry
			return &e, nil
		}
	}
	return nil, nil
}

func (s *JSONStore) EntriesForDate(date string) ([]models.TimeEntry, error) {
	return s.EntriesInRange(date, date)
}

func (s *JSONStore) EntriesInRange(start, end string) ([]models.TimeEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var entries []models.TimeEntry
	for _, entry := range s.store.Entries {
		if entry.Date >= start && entry.Date <= end {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].StartTime.Before(entries[j].StartTime)
	})

	return entries, nil
}

func (s *JSONStore) SaveEntry(entry models.TimeEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Mirror the SQLite partial unique index: at most one open entry per date.
	if entry.IsActive {
		for id, existing := range s.store.Entries {
			if id != entry.ID && existing.Date == entry.Date && existing.IsActive {
				return fmt.Errorf("open entry already exists for date %s", entry.Date)
			}
		}
	}

	s.store.Entries[entry.ID] = entry
	return s.save()
}

func (s *JSONStore) DeleteEntries(date string) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	deleted := 0
	for id, entry := range s.store.Entries {
		if entry.Date == date {
			delete(s.store.Entries, id)
			deleted++
		}
	}

	if deleted == 0 {
		return 0, nil
	}
	return deleted, s.save()
}

func (s *JSONStore) LeaveDaysInRange(start, end string) ([]models.LeaveDay, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var days []models.LeaveDay
	for _, d := range s.store.LeaveDays {
		if d.Date >= start && d.Date <= end {
			days = append(days, d)
		}
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days, nil
}

func (s *JSONStore) SaveLeaveDays(records []models.LeaveDay) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// All-or-nothing: reject the whole batch before touching the map.
	for _, d := range records {
		if _, exists := s.store.LeaveDays[d.Date]; exists {
			return fmt.Errorf("leave day already exists for date %s", d.Date)
		}
	}

	for _, d := range records {
		s.store.LeaveDays[d.Date] = d
	}
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
