package storage

// Settings are the configured working-time baselines. They are read from the
// key/value settings table with defaults applied for absent keys, and passed
// explicitly into the overtime, leave and report calculations.
type Settings struct {
	StandardHoursPerDay  float64 `json:"standard_hours_per_day"`
	WeeklyHours          float64 `json:"weekly_hours"`
	PauseDurationMinutes int     `json:"pause_duration_minutes"` // advisory only
	AutoEnd              bool    `json:"auto_end"`
	MonthlyOvertimeMode  string  `json:"monthly_overtime_mode"`
}

// Monthly overtime modes. daily_sum adds up per-entry daily overtime;
// threshold compares the month total against workingDays * standard hours.
const (
	MonthlyOvertimeDailySum  = "daily_sum"
	MonthlyOvertimeThreshold = "threshold"
)

func DefaultSettings() Settings {
	return Settings{
		StandardHoursPerDay:  8,
		WeeklyHours:          40,
		PauseDurationMinutes: 30,
		AutoEnd:              false,
		MonthlyOvertimeMode:  MonthlyOvertimeDailySum,
	}
}
