package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/tracker"
)

type EditCmd struct {
	Date        string `arg:"" help:"Date to edit (YYYY-MM-DD or 'today')."`
	Start       string `help:"New start time as HH:MM."`
	End         string `help:"New end time as HH:MM."`
	Description string `short:"d" help:"New description."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	var opts tracker.EditOptions
	if c.Start != "" {
		t, err := ctx.resolveTime(date, c.Start)
		if err != nil {
			return err
		}
		opts.NewStart = &t
	}
	if c.End != "" {
		t, err := ctx.resolveTime(date, c.End)
		if err != nil {
			return err
		}
		opts.NewEnd = &t
	}
	if c.Description != "" {
		opts.NewDescription = &c.Description
	}

	tr := tracker.New(ctx.Store, ctx.Clock)
	entry, err := tr.Edit(date, opts)
	if err != nil {
		return err
	}

	end := "-"
	if entry.EndTime != nil {
		end = formatClock(*entry.EndTime)
	}
	fmt.Printf("Updated %s: %s-%s (%s)\n", entry.Date, formatClock(entry.StartTime), end, formatHours(entry.DurationHours()))
	return nil
}

type DeleteCmd struct {
	Date  string `arg:"" help:"Date to delete (YYYY-MM-DD or 'today')."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete all entries for %s? [y/N]: ", date)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	tr := tracker.New(ctx.Store, ctx.Clock)
	n, err := tr.Delete(date)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d entries for %s\n", n, date)
	return nil
}

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	entries, err := ctx.Store.EntriesForDate(date)
	if err != nil {
		return err
	}
	leaveDays, err := ctx.Store.LeaveDaysInRange(date, date)
	if err != nil {
		return err
	}

	fmt.Printf("Entries for %s:\n\n", date)

	if len(entries) == 0 && len(leaveDays) == 0 {
		fmt.Println("  No entries")
		return nil
	}

	now := ctx.Clock.Now()
	var total float64
	for _, e := range entries {
		end := "     "
		if e.EndTime != nil {
			end = formatClock(*e.EndTime)
		}
		total += e.LiveDurationHours(now)

		line := fmt.Sprintf("%s-%s  %-7s  [%s]", formatClock(e.StartTime), end,
			formatHours(e.LiveDurationHours(now)), e.State())
		if e.Description != "" {
			line += "  " + e.Description
		}
		fmt.Println(line)
	}
	for _, d := range leaveDays {
		line := fmt.Sprintf("leave: %s", d.Type)
		if d.Description != "" {
			line += "  " + d.Description
		}
		fmt.Println(line)
	}

	if len(entries) > 0 {
		fmt.Printf("\nTotal: %s\n", formatHours(total))
	}
	return nil
}

// summarizeState folds a day's entries into the short badge shown in lists.
func summarizeState(entries []models.TimeEntry) models.EntryState {
	state := models.StateIdle
	var latest time.Time
	for _, e := range entries {
		if e.IsActive {
			return e.State()
		}
		if e.StartTime.After(latest) {
			latest = e.StartTime
			state = models.StateEnded
		}
	}
	return state
}
