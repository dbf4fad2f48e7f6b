package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/timeclock/internal/models"
)

func ToCSV(entries []models.TimeEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Start", "End", "Pause (s)", "Pause", "Hours", "State", "Description"}); err != nil {
		return err
	}

	for _, e := range entries {
		endStr := ""
		if e.EndTime != nil {
			endStr = e.EndTime.Local().Format(time.RFC3339)
		}

		row := []string{
			e.Date,
			e.StartTime.Local().Format(time.RFC3339),
			endStr,
			fmt.Sprintf("%d", e.PauseSeconds),
			formatDuration(e.PauseSeconds),
			fmt.Sprintf("%.2f", e.DurationHours()),
			e.State().String(),
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func LeaveToCSV(days []models.LeaveDay, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Type", "Description"}); err != nil {
		return err
	}
	for _, d := range days {
		if err := w.Write([]string{d.Date, string(d.Type), d.Description}); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
