package cli

import (
	"fmt"

	"github.com/julianstephens/timeclock/internal/models"
	"github.com/julianstephens/timeclock/internal/tracker"
)

type StartCmd struct {
	Date        string `help:"Date to start (YYYY-MM-DD or 'today')." default:"today"`
	At          string `help:"Start time as HH:MM. Defaults to now."`
	Description string `short:"d" help:"What you are working on."`
}

func (c *StartCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}
	at, err := ctx.resolveTime(date, c.At)
	if err != nil {
		return err
	}

	tr := tracker.New(ctx.Store, ctx.Clock)
	entry, err := tr.Start(date, at, c.Description)
	if err != nil {
		return err
	}

	fmt.Printf("Started tracking %s at %s\n", entry.Date, formatClock(entry.StartTime))
	return nil
}

type StopCmd struct {
	Date string `help:"Date to stop (YYYY-MM-DD or 'today')." default:"today"`
	At   string `help:"End time as HH:MM. Defaults to now."`
}

func (c *StopCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}
	at, err := ctx.resolveTime(date, c.At)
	if err != nil {
		return err
	}

	tr := tracker.New(ctx.Store, ctx.Clock)
	entry, err := tr.Stop(date, at)
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	status, err := tr.Status(date)
	if err != nil {
		return err
	}
	overtime := status.WorkedHours - settings.StandardHoursPerDay
	if overtime < 0 {
		overtime = 0
	}

	fmt.Printf("Stopped tracking %s at %s\n", entry.Date, formatClock(*entry.EndTime))
	fmt.Printf("  Worked:   %s\n", formatHours(status.WorkedHours))
	fmt.Printf("  Overtime: %s\n", formatHours(overtime))
	return nil
}

type PauseCmd struct {
	Date string `help:"Date to pause (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *PauseCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	tr := tracker.New(ctx.Store, ctx.Clock)
	entry, err := tr.Pause(date)
	if err != nil {
		return err
	}

	fmt.Printf("Paused %s at %s\n", entry.Date, formatClock(*entry.PauseStartedAt))
	return nil
}

type ResumeCmd struct {
	Date string `help:"Date to resume (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ResumeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	tr := tracker.New(ctx.Store, ctx.Clock)
	entry, err := tr.Resume(date)
	if err != nil {
		return err
	}

	fmt.Printf("Resumed %s (%s paused so far)\n", entry.Date, formatSeconds(entry.PauseSeconds))
	return nil
}

type ContinueCmd struct {
	Date        string `help:"Date to continue (YYYY-MM-DD or 'today')." default:"today"`
	Description string `short:"d" help:"Description for the new session. Defaults to the previous one."`
}

func (c *ContinueCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	tr := tracker.New(ctx.Store, ctx.Clock)
	entry, err := tr.Continue(date, c.Description)
	if err != nil {
		return err
	}

	fmt.Printf("Continued tracking %s at %s\n", entry.Date, formatClock(entry.StartTime))
	return nil
}

type StatusCmd struct {
	Date string `help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	tr := tracker.New(ctx.Store, ctx.Clock)
	status, err := tr.Status(date)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", status.Date, status.State)
	if status.State == models.StateIdle {
		return nil
	}

	fmt.Printf("  Worked: %s\n", formatHours(status.WorkedHours))
	if status.Open != nil {
		fmt.Printf("  Since:  %s\n", formatClock(status.Open.StartTime))
		if status.Open.PauseSeconds > 0 || status.Open.State() == models.StatePaused {
			fmt.Printf("  Paused: %s\n", formatSeconds(status.Open.PauseSeconds))
		}
	}
	if len(status.Entries) > 1 {
		fmt.Printf("  Sessions: %d\n", len(status.Entries))
	}
	return nil
}

func formatSeconds(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
