package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/timeclock/internal/cli"
	"github.com/julianstephens/timeclock/internal/clock"
	"github.com/julianstephens/timeclock/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/timeclock/timeclock.db"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize timeclock storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Start    cli.StartCmd    `cmd:"" help:"Start tracking a day."`
	Stop     cli.StopCmd     `cmd:"" help:"Stop tracking and show the day's total."`
	Pause    cli.PauseCmd    `cmd:"" help:"Pause the running timer."`
	Resume   cli.ResumeCmd   `cmd:"" help:"Resume a paused timer."`
	Continue cli.ContinueCmd `cmd:"" help:"Start another session on a finished day."`
	Status   cli.StatusCmd   `cmd:"" help:"Show the current timer state."`
	Day      cli.DayCmd      `cmd:"" help:"Show entries for a day."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit a finished entry."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a day's entries."`
	Week     cli.WeekCmd     `cmd:"" help:"Weekly summary with overtime."`
	Month    cli.MonthCmd    `cmd:"" help:"Monthly summary with overtime and leave."`
	Leave    cli.LeaveCmd    `cmd:"" help:"Manage vacation and sick days."`
	Settings cli.SettingsCmd `cmd:"" help:"View or change settings."`
	Export   cli.ExportCmd   `cmd:"" help:"Export entries to CSV or JSON."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("timeclock"),
		kong.Description("Personal work-time tracker with overtime and leave accounting"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Clock: clock.System(),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
