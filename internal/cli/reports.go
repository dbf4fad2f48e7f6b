package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/report"
)

type WeekCmd struct {
	Date string `help:"Any date inside the week (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *WeekCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ref, err := refDate(ctx, c.Date)
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	agg := report.New(ctx.Store, ctx.Clock)
	sum, err := agg.Weekly(ref, settings)
	if err != nil {
		return err
	}

	fmt.Printf("Week %s to %s\n\n", sum.StartDate, sum.EndDate)
	printDayLines(sum.Entries, ctx.Clock.Now())
	fmt.Printf("\nTotal:    %s (%d working days)\n", formatHours(sum.TotalHours), sum.WorkingDays)
	fmt.Printf("Overtime: %s (vs %s week)\n", formatHours(sum.Overtime), formatHours(settings.WeeklyHours))
	return nil
}

type MonthCmd struct {
	Date string `help:"Any date inside the month (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *MonthCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ref, err := refDate(ctx, c.Date)
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	agg := report.New(ctx.Store, ctx.Clock)
	sum, err := agg.Monthly(ref, settings)
	if err != nil {
		return err
	}

	fmt.Printf("Month %s to %s\n\n", sum.StartDate, sum.EndDate)
	fmt.Printf("Total:    %s (%d working days)\n", formatHours(sum.TotalHours), sum.WorkingDays)
	fmt.Printf("Overtime: %s\n", formatHours(sum.Overtime))
	if sum.LeaveDays.Total > 0 {
		fmt.Printf("Leave:    %d days (%d vacation, %d sick)\n",
			sum.LeaveDays.Total, sum.LeaveDays.Vacation, sum.LeaveDays.Sick)
	}
	return nil
}

func refDate(ctx *Context, arg string) (time.Time, error) {
	date, err := ctx.resolveDate(arg)
	if err != nil {
		return time.Time{}, err
	}
	return clock.ParseDate(date)
}

// printDayLines prints one line per date with its summed hours and state.
func printDayLines(entries []models.TimeEntry, now time.Time) {
	totals := make(map[string]float64)
	byDate := make(map[string][]models.TimeEntry)
	for _, e := range entries {
		totals[e.Date] += e.LiveDurationHours(now)
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	dates := make([]string, 0, len(totals))
	for d := range totals {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		fmt.Printf("  %s  %-7s  [%s]\n", d, formatHours(totals[d]), summarizeState(byDate[d]))
	}
}
