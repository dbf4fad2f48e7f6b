package storage

import "github.com/julianstephens/timeclock/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Time entries
	FindOpenEntry(date string) (*models.TimeEntry, error)
	EntriesForDate(date string) ([]models.TimeEntry, error)
	EntriesInRange(start, end string) ([]models.TimeEntry, error)
	SaveEntry(models.TimeEntry) error
	DeleteEntries(date string) (int, error)

	// Leave days
	LeaveDaysInRange(start, end string) ([]models.LeaveDay, error)
	SaveLeaveDays([]models.LeaveDay) error // atomic batch

	// Utils
	GetConfigPath() string
}
