package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/timeclock/internal/backup"
	"github.com/julianstephens/timeclock/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Open-entry integrity
	if dbReachable {
		if err := checkOpenEntries(ctx); err != nil {
			fmt.Printf("❌ Open-entry integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Open-entry integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Open-entry integrity: SKIPPED (database not reachable)\n")
	}

	// Check 4: Settings readable
	if dbReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (database not reachable)\n")
	}

	// Check 5: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 6: Concurrent processes (warning only)
	if err := checkConcurrentProcesses(); err != nil {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	// Check 7: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// JSON store doesn't have a schema version
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > storage.SchemaVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", version, storage.SchemaVersion)
	}
	if version < storage.SchemaVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", version, storage.SchemaVersion)
	}
	return nil
}

// checkOpenEntries verifies that no date holds more than one open entry.
// The SQLite backend enforces this with a unique index; this catches data
// written by other backends or older versions.
func checkOpenEntries(ctx *Context) error {
	entries, err := ctx.Store.EntriesInRange("0000-01-01", "9999-12-31")
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}

	openByDate := make(map[string]int)
	for _, e := range entries {
		if e.IsActive {
			openByDate[e.Date]++
		}
		if e.IsActive && e.EndTime != nil {
			return fmt.Errorf("entry %s is marked active but has an end time", e.ID)
		}
	}
	for date, n := range openByDate {
		if n > 1 {
			return fmt.Errorf("date %s has %d open entries, expected at most 1", date, n)
		}
	}
	return nil
}

func checkSettings(ctx *Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'timeclock backup create'")
	}
	return nil
}

// checkConcurrentProcesses warns if another timeclock instance is running;
// two writers can trip over the SQLite busy timeout.
func checkConcurrentProcesses() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	var others []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == "timeclock" {
			others = append(others, p.Pid())
		}
	}
	if len(others) > 0 {
		return fmt.Errorf("found %d other running timeclock processes: %v", len(others), others)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		// Might be intentional, so just note it
		fmt.Printf("   Note: timezone is UTC\n")
	}
	return nil
}
