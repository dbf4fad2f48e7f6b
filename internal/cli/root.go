package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/timeclock/internal/backup"
	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/storage"
)

type Context struct {
	Store storage.Provider
	Clock clock.Clock
}

// Exit codes, so scripts can tell a typo from a state problem.
const (
	ExitInternal     = 1
	ExitValidation   = 2
	ExitInvalidState = 3
	ExitConflict     = 4
	ExitNotFound     = 5
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var (
		verr *models.ValidationError
		serr *models.InvalidStateError
		cerr *models.ConflictError
		nerr *models.NotFoundError
	)
	switch {
	case err == nil:
		return 0
	case errors.As(err, &verr):
		return ExitValidation
	case errors.As(err, &serr):
		return ExitInvalidState
	case errors.As(err, &cerr):
		return ExitConflict
	case errors.As(err, &nerr):
		return ExitNotFound
	default:
		return ExitInternal
	}
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Don't interrupt the user's workflow over a failed safety net.
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}

// resolveDate turns a date argument into a YYYY-MM-DD string. "today" and
// "yesterday" are accepted as shorthands.
func (c *Context) resolveDate(arg string) (string, error) {
	now := c.Clock.Now()
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return clock.DateOf(now), nil
	case "yesterday":
		return clock.DateOf(now.AddDate(0, 0, -1)), nil
	}
	if _, err := clock.ParseDate(arg); err != nil {
		return "", &models.ValidationError{Reason: fmt.Sprintf("invalid date %q, use YYYY-MM-DD", arg)}
	}
	return arg, nil
}

// resolveTime combines a date with an optional HH:MM argument. An empty
// argument means "now".
func (c *Context) resolveTime(date, arg string) (time.Time, error) {
	if strings.TrimSpace(arg) == "" {
		return c.Clock.Now(), nil
	}

	day, err := clock.ParseDate(date)
	if err != nil {
		return time.Time{}, &models.ValidationError{Reason: fmt.Sprintf("invalid date %q, use YYYY-MM-DD", date)}
	}

	parts := strings.Split(arg, ":")
	if len(parts) != 2 {
		return time.Time{}, &models.ValidationError{Reason: fmt.Sprintf("invalid time %q, use HH:MM", arg)}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, &models.ValidationError{Reason: fmt.Sprintf("invalid hour in %q", arg)}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, &models.ValidationError{Reason: fmt.Sprintf("invalid minute in %q", arg)}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local), nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64) + "h"
}

func formatClock(t time.Time) string {
	return t.Local().Format("15:04")
}
