package cli

import (
	"fmt"

	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/leave"
	"github.com/julianstephens/timeclock/internal/models"
)

type LeaveCmd struct {
	Add  LeaveAddCmd  `cmd:"" help:"Record leave for a date range."`
	List LeaveListCmd `cmd:"" help:"List recorded leave days."`
}

type LeaveAddCmd struct {
	Type        string `arg:"" enum:"vacation,sick" help:"Leave type (vacation or sick)."`
	From        string `arg:"" help:"First day (YYYY-MM-DD or 'today')."`
	To          string `arg:"" optional:"" help:"Last day, inclusive. Defaults to the first day."`
	Description string `short:"d" help:"Optional note."`
	Yes         bool   `short:"y" help:"Skip the preview confirmation."`
}

func (c *LeaveAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	fromStr, err := ctx.resolveDate(c.From)
	if err != nil {
		return err
	}
	toStr := fromStr
	if c.To != "" {
		if toStr, err = ctx.resolveDate(c.To); err != nil {
			return err
		}
	}

	from, err := clock.ParseDate(fromStr)
	if err != nil {
		return err
	}
	to, err := clock.ParseDate(toStr)
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	preview, err := leave.Expand(from, to, models.LeaveType(c.Type), c.Description, settings, ctx.Clock.Now())
	if err != nil {
		return err
	}

	fmt.Printf("%s leave %s to %s:\n", c.Type, preview.StartDate, preview.EndDate)
	fmt.Printf("  %d working days (%d weekend days skipped), %s\n",
		preview.WorkingDays, preview.WeekendDays, formatHours(preview.WorkingHours))

	if preview.WorkingDays == 0 {
		fmt.Println("Nothing to record: the range only contains weekend days.")
		return nil
	}

	if !c.Yes {
		fmt.Print("Record? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	mgr := leave.NewManager(ctx.Store)
	if err := mgr.Commit(preview); err != nil {
		return err
	}

	fmt.Printf("Recorded %d leave days\n", preview.WorkingDays)
	return nil
}

type LeaveListCmd struct {
	From string `help:"Start of the range (YYYY-MM-DD)." default:""`
	To   string `help:"End of the range (YYYY-MM-DD)." default:""`
}

func (c *LeaveListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Default to the current year.
	now := ctx.Clock.Now()
	from := fmt.Sprintf("%04d-01-01", now.Year())
	to := fmt.Sprintf("%04d-12-31", now.Year())
	var err error
	if c.From != "" {
		if from, err = ctx.resolveDate(c.From); err != nil {
			return err
		}
	}
	if c.To != "" {
		if to, err = ctx.resolveDate(c.To); err != nil {
			return err
		}
	}

	days, err := ctx.Store.LeaveDaysInRange(from, to)
	if err != nil {
		return err
	}

	if len(days) == 0 {
		fmt.Printf("No leave recorded between %s and %s\n", from, to)
		return nil
	}

	for _, d := range days {
		line := fmt.Sprintf("  %s  %-8s", d.Date, d.Type)
		if d.Description != "" {
			line += "  " + d.Description
		}
		fmt.Println(line)
	}

	counts := leave.CountByType(days)
	fmt.Printf("\n%d days total (%d vacation, %d sick)\n", counts.Total, counts.Vacation, counts.Sick)
	return nil
}
