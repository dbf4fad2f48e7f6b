package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/timeclock/internal/export"
	"github.com/julianstephens/timeclock/internal/models"
)

type ExportCmd struct {
	Output string `arg:"" help:"Output file. The extension picks the format (.csv or .json)."`
	From   string `help:"Start of the range (YYYY-MM-DD)." default:""`
	To     string `help:"End of the range (YYYY-MM-DD)." default:""`
	Leave  bool   `help:"Export leave days instead of time entries (CSV only)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Default to everything.
	from, to := "0000-01-01", "9999-12-31"
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

	switch {
	case strings.HasSuffix(c.Output, ".csv") && c.Leave:
		days, err := ctx.Store.LeaveDaysInRange(from, to)
		if err != nil {
			return err
		}
		if err := export.LeaveToCSV(days, c.Output); err != nil {
			return err
		}
		fmt.Printf("Exported %d leave days to %s\n", len(days), c.Output)

	case strings.HasSuffix(c.Output, ".csv"):
		entries, err := ctx.Store.EntriesInRange(from, to)
		if err != nil {
			return err
		}
		if err := export.ToCSV(entries, c.Output); err != nil {
			return err
		}
		fmt.Printf("Exported %d entries to %s\n", len(entries), c.Output)

	case strings.HasSuffix(c.Output, ".json"):
		entries, err := ctx.Store.EntriesInRange(from, to)
		if err != nil {
			return err
		}
		days, err := ctx.Store.LeaveDaysInRange(from, to)
		if err != nil {
			return err
		}
		if err := export.ToJSON(entries, days, c.Output); err != nil {
			return err
		}
		fmt.Printf("Exported %d entries and %d leave days to %s\n", len(entries), len(days), c.Output)

	default:
		return &models.ValidationError{Reason: "output file must end in .csv or .json"}
	}

	return nil
}
