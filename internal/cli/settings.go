package cli

import (
	"fmt"

	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/storage"
)

type SettingsCmd struct {
	StandardHours float64 `help:"Standard working hours per day."`
	WeeklyHours   float64 `help:"Standard working hours per week."`
	PauseMinutes  int     `help:"Default pause duration in minutes."`
	OvertimeMode  string  `help:"Monthly overtime mode: daily_sum or threshold."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	changed := false
	if c.StandardHours > 0 {
		settings.StandardHoursPerDay = c.StandardHours
		changed = true
	}
	if c.WeeklyHours > 0 {
		settings.WeeklyHours = c.WeeklyHours
		changed = true
	}
	if c.PauseMinutes > 0 {
		settings.PauseDurationMinutes = c.PauseMinutes
		changed = true
	}
	if c.OvertimeMode != "" {
		if c.OvertimeMode != storage.MonthlyOvertimeDailySum && c.OvertimeMode != storage.MonthlyOvertimeThreshold {
			return &models.ValidationError{Reason: "overtime mode must be daily_sum or threshold"}
		}
		settings.MonthlyOvertimeMode = c.OvertimeMode
		changed = true
	}

	if changed {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Println("Settings updated.")
		fmt.Println()
	}

	fmt.Printf("Standard hours/day:    %s\n", formatHours(settings.StandardHoursPerDay))
	fmt.Printf("Weekly hours:          %s\n", formatHours(settings.WeeklyHours))
	fmt.Printf("Pause duration:        %dm\n", settings.PauseDurationMinutes)
	fmt.Printf("Monthly overtime mode: %s\n", settings.MonthlyOvertimeMode)
	return nil
}
