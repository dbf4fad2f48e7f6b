package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/timeclock/internal/models"
)

// SchemaVersion is the schema generation this build reads and writes.
const SchemaVersion = 1

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

// NewMemory creates an initialized in-memory store for testing.
func NewMemory() (*SQLiteStore, error) {
	s := NewSQLiteStore(":memory:")
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Init() error {
	if s.path != ":memory:" {
		dir := filepath.Dir(s.path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return s.seedDefaultSettings()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if s.path != ":memory:" {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'timeclock init' first")
		}
	}

	if err := s.open(); err != nil {
		return err
	}

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", version, SchemaVersion)
	}
	if version < SchemaVersion {
		if err := s.migrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= SchemaVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion))
	return err
}

func (s *SQLiteStore) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS time_entries (
		id               TEXT PRIMARY KEY,
		date             TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		pause_seconds    INTEGER NOT NULL DEFAULT 0,
		pause_started_at TEXT,
		is_active        INTEGER NOT NULL DEFAULT 0,
		description      TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_date ON time_entries(date);

	-- At most one open entry per date, enforced by the storage layer.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_open
		ON time_entries(date) WHERE is_active = 1;

	CREATE TABLE IF NOT EXISTS leave_days (
		id          TEXT PRIMARY KEY,
		date        TEXT NOT NULL UNIQUE,
		leave_type  TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLiteStore) seedDefaultSettings() error {
	def := DefaultSettings()
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO settings (key, value) VALUES
			('standard_hours_per_day', ?),
			('weekly_hours', ?),
			('pause_duration_minutes', ?),
			('auto_end', ?),
			('monthly_overtime_mode', ?)`,
		formatFloat(def.StandardHoursPerDay),
		formatFloat(def.WeeklyHours),
		strconv.Itoa(def.PauseDurationMinutes),
		strconv.FormatBool(def.AutoEnd),
		def.MonthlyOvertimeMode,
	)
	return err
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "standard_hours_per_day":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				settings.StandardHoursPerDay = f
			}
		case "weekly_hours":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				settings.WeeklyHours = f
			}
		case "pause_duration_minutes":
			if n, err := strconv.Atoi(value); err == nil {
				settings.PauseDurationMinutes = n
			}
		case "auto_end":
			if b, err := strconv.ParseBool(value); err == nil {
				settings.AutoEnd = b
			}
		case "monthly_overtime_mode":
			if value == MonthlyOvertimeDailySum || value == MonthlyOvertimeThreshold {
				settings.MonthlyOvertimeMode = value
			}
		}
	}

	return settings, rows.Err()
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	pairs := [][2]string{
		{"standard_hours_per_day", formatFloat(settings.StandardHoursPerDay)},
		{"weekly_hours", formatFloat(settings.WeeklyHours)},
		{"pause_duration_minutes", strconv.Itoa(settings.PauseDurationMinutes)},
		{"auto_end", strconv.FormatBool(settings.AutoEnd)},
		{"monthly_overtime_mode", settings.MonthlyOvertimeMode},
	}
	for _, p := range pairs {
		if _, err := stmt.Exec(p[0], p[1]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const entryColumns = `id, date, start_time, end_time, pause_seconds, pause_started_at, is_active, description, created_at, updated_at`

func (s *SQLiteStore) FindOpenEntry(date string) (*models.TimeEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+entryColumns+` FROM time_entries WHERE date = ? AND is_active = 1`, date)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find open entry for %s: %w", date, err)
	}
	return &entry, nil
}

func (s *SQLiteStore) EntriesForDate(date string) ([]models.TimeEntry, error) {
	return s.queryEntries(
		`SELECT `+entryColumns+` FROM time_entries WHERE date = ? ORDER BY start_time`, date)
}

func (s *SQLiteStore) EntriesInRange(start, end string) ([]models.TimeEntry, error) {
	return s.queryEntries(
		`SELECT `+entryColumns+` FROM time_entries WHERE date >= ? AND date <= ? ORDER BY date, start_time`,
		start, end)
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]models.TimeEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) SaveEntry(entry models.TimeEntry) error {
	var endTime, pauseStartedAt sql.NullString
	if entry.EndTime != nil {
		endTime = sql.NullString{String: entry.EndTime.UTC().Format(time.RFC3339), Valid: true}
	}
	if entry.PauseStartedAt != nil {
		pauseStartedAt = sql.NullString{String: entry.PauseStartedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO time_entries (
			id, date, start_time, end_time, pause_seconds, pause_started_at,
			is_active, description, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			pause_seconds = excluded.pause_seconds,
			pause_started_at = excluded.pause_started_at,
			is_active = excluded.is_active,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		entry.ID, entry.Date,
		entry.StartTime.UTC().Format(time.RFC3339), endTime,
		entry.PauseSeconds, pauseStartedAt,
		entry.IsActive, entry.Description,
		entry.CreatedAt.UTC().Format(time.RFC3339),
		entry.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteEntries(date string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM time_entries WHERE date = ?`, date)
	if err != nil {
		return 0, fmt.Errorf("delete entries for %s: %w", date, err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SQLiteStore) LeaveDaysInRange(start, end string) ([]models.LeaveDay, error) {
	rows, err := s.db.Query(`
		SELECT id, date, leave_type, description, created_at
		FROM leave_days WHERE date >= ? AND date <= ? ORDER BY date`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("query leave days: %w", err)
	}
	defer rows.Close()

	var days []models.LeaveDay
	for rows.Next() {
		var d models.LeaveDay
		var leaveType, createdAt string
		if err := rows.Scan(&d.ID, &d.Date, &leaveType, &d.Description, &createdAt); err != nil {
			return nil, err
		}
		d.Type = models.LeaveType(leaveType)
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		days = append(days, d)
	}
	return days, rows.Err()
}

// SaveLeaveDays persists the batch in one transaction. A duplicate date in
// the store fails the whole batch and nothing is written.
func (s *SQLiteStore) SaveLeaveDays(records []models.LeaveDay) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO leave_days (id, date, leave_type, description, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range records {
		if _, err := stmt.Exec(
			d.ID, d.Date, string(d.Type), d.Description,
			d.CreatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("save leave day %s: %w", d.Date, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.TimeEntry, error) {
	var e models.TimeEntry
	var startTime, createdAt, updatedAt string
	var endTime, pauseStartedAt sql.NullString

	err := row.Scan(
		&e.ID, &e.Date, &startTime, &endTime, &e.PauseSeconds, &pauseStartedAt,
		&e.IsActive, &e.Description, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.TimeEntry{}, err
	}

	e.StartTime, _ = time.Parse(time.RFC3339, startTime)
	if endTime.Valid {
		t, _ := time.Parse(time.RFC3339, endTime.String)
		e.EndTime = &t
	}
	if pauseStartedAt.Valid {
		t, _ := time.Parse(time.RFC3339, pauseStartedAt.String)
		e.PauseStartedAt = &t
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return e, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
